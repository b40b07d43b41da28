package signoff

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/viant/signoff/internal/clock"
	"github.com/viant/signoff/internal/idgen"
	"github.com/viant/signoff/internal/logger"
	"github.com/viant/signoff/metrics"
	"github.com/viant/signoff/model"
	"github.com/viant/signoff/policy"
	"github.com/viant/signoff/portal"
	"github.com/viant/signoff/progress"
	"github.com/viant/signoff/service/approval"
	"github.com/viant/signoff/service/approval/memory"
	"github.com/viant/signoff/service/credential"
	"github.com/viant/signoff/service/workflow"
	"github.com/viant/signoff/tracing"
)

const serviceName = "signoff"

// Version is reported in traces.
const Version = "1.0.0"

// Report summarises a run.  A failed run still returns the report up to the
// failing stage.
type Report struct {
	RunID      string               `json:"runId"`
	StartedAt  time.Time            `json:"startedAt"`
	FinishedAt time.Time            `json:"finishedAt"`
	Results    []*workflow.Result   `json:"results"`
	Decisions  []*approval.Decision `json:"decisions"`
}

// Result returns the result for category or nil.
func (r *Report) Result(category model.Category) *workflow.Result {
	for _, result := range r.Results {
		if result.Category == category.String() {
			return result
		}
	}
	return nil
}

// Service runs the sign-off pipeline.
type Service struct {
	config      *Config
	logger      *slog.Logger
	httpClient  *http.Client
	credentials credential.Source
	ask         policy.AskFunc
	recorder    *metrics.Recorder
	ledger      approval.Service
	client      *portal.Client
}

// New validates config and creates the service.
func New(config *Config, options ...Option) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	ret := &Service{config: config}
	for _, option := range options {
		option(ret)
	}
	if ret.logger == nil {
		ret.logger = logger.New(config.Logging.Level, config.Logging.Format, nil)
	}
	if ret.credentials == nil {
		ret.credentials = config.credentialSource()
	}
	if ret.recorder == nil {
		ret.recorder = metrics.New()
	}
	if config.Tracing.Enabled {
		if err := tracing.Init(serviceName, Version, config.Tracing.OutputFile); err != nil {
			return nil, fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	clientOptions := []portal.Option{portal.WithRecorder(ret.recorder), portal.WithLogger(ret.logger)}
	if ret.httpClient != nil {
		clientOptions = append(clientOptions, portal.WithHTTPClient(ret.httpClient))
	}
	ret.client = portal.New(config.Portal, clientOptions...)
	return ret, nil
}

// Run bootstraps a session, logs in and processes payouts, salaries and
// invoices in that order.  The first failure aborts the run; the returned
// error is a *StageError.
func (s *Service) Run(ctx context.Context) (report *Report, err error) {
	report = &Report{RunID: idgen.New(), StartedAt: clock.Now()}
	log := s.logger.With("runId", report.RunID)
	ctx, tracker := progress.WithNewTracker(ctx, report.RunID, func(p progress.Progress) {
		log.Debug("progress", "eligible", p.Eligible, "running", p.Running, "submitted", p.Submitted,
			"skipped", p.Skipped, "declined", p.Declined, "failed", p.Failed)
	})
	aPolicy := policy.FromConfig(&s.config.Policy)
	aPolicy.Ask = s.ask
	ctx = policy.WithPolicy(ctx, aPolicy)
	ledger := s.ledger
	if ledger == nil {
		ledger = memory.New()
	}

	ctx, span := tracing.StartSpan(ctx, "signoff.run", tracing.KindInternal)
	span.WithAttributes(map[string]string{"run.id": report.RunID, "run.mode": aPolicy.EffectiveMode()})
	defer func() {
		report.FinishedAt = clock.Now()
		var decisionsErr error
		if report.Decisions, decisionsErr = ledger.Decisions(context.WithoutCancel(ctx), approval.Filter{RunID: report.RunID}); decisionsErr != nil {
			log.Warn("failed to read decisions", "error", decisionsErr)
		}
		tracing.EndSpan(span, err)
		if pushErr := s.recorder.Push(context.WithoutCancel(ctx), s.config.Metrics.PushURL, s.config.Metrics.Job, map[string]string{"run": report.RunID}); pushErr != nil {
			log.Warn("metrics push failed", "error", pushErr)
		}
		snapshot := tracker.Snapshot()
		attrs := []any{"elapsed", report.FinishedAt.Sub(report.StartedAt), "submitted", snapshot.Submitted, "skipped", snapshot.Skipped}
		for _, result := range report.Results {
			attrs = append(attrs, result.Category, result.Count())
		}
		for outcome, count := range approval.Tally(report.Decisions) {
			attrs = append(attrs, "outcome."+string(outcome), count)
		}
		if err != nil {
			log.Error("failed", append(attrs, "error", err)...)
			return
		}
		log.Info("finished", attrs...)
	}()

	var session *model.Session
	if err = s.stage(ctx, StageBootstrap, func(ctx context.Context) (err error) {
		session, err = s.client.Bootstrap(ctx)
		return err
	}); err != nil {
		return report, err
	}
	log.Debug("session acquired", "cookie", session.Name)

	if err = s.stage(ctx, StageAuthenticate, func(ctx context.Context) error {
		credentials, err := s.credentials.Credentials(ctx)
		if err != nil {
			return err
		}
		log.Debug("logging in", "credentials", credentials)
		session, err = s.client.Login(ctx, session, credentials)
		return err
	}); err != nil {
		return report, err
	}
	log.Info("authenticated")

	engine := workflow.New(
		workflow.WithRunID(report.RunID),
		workflow.WithLedger(ledger),
		workflow.WithLogger(log),
		workflow.WithRecorder(s.recorder),
		workflow.WithMaxConcurrency(s.config.Workflow.MaxConcurrency),
	)
	conn := s.client.Conn(session)
	runners := map[model.Category]func(ctx context.Context) (*workflow.Result, error){
		model.CategoryPayouts: func(ctx context.Context) (*workflow.Result, error) {
			return workflow.Run(ctx, engine, workflow.NewPayouts(conn, s.config.Identity.DisplayName))
		},
		model.CategorySalaries: func(ctx context.Context) (*workflow.Result, error) {
			return workflow.Run(ctx, engine, workflow.NewSalaries(conn))
		},
		model.CategoryInvoices: func(ctx context.Context) (*workflow.Result, error) {
			return workflow.Run(ctx, engine, workflow.NewInvoices(conn))
		},
	}
	for _, category := range model.Categories() {
		run := runners[category]
		if err = s.stage(ctx, category.String(), func(ctx context.Context) error {
			result, err := run(ctx)
			if result != nil {
				report.Results = append(report.Results, result)
			}
			return err
		}); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (s *Service) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := tracing.StartSpan(ctx, "stage."+name, tracing.KindInternal)
	started := time.Now()
	err := fn(ctx)
	s.recorder.Stage(name, err, time.Since(started))
	tracing.EndSpan(span, err)
	if err != nil {
		return &StageError{Stage: name, Err: err}
	}
	return nil
}
