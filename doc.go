// Package signoff signs pending payouts, salary runs and invoices in a
// back-office payment portal on behalf of one user.
//
// A run bootstraps an anonymous portal session, logs in, then walks the
// categories in order.  Every category lists its items, keeps the ones still
// waiting for a signature and authorizes them:
//
//	cfg, _ := signoff.LoadConfig(ctx, "signoff.yaml")
//	cfg.ApplyEnv()
//	srv, _ := signoff.New(cfg)
//	report, err := srv.Run(ctx)
//
// The policy mode selects whether items are signed (auto), confirmed one by
// one (ask) or only reported (report).
package signoff
