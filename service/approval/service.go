package approval

import (
	"context"
)

// Service defines the decision ledger.  A ledger may be shared by several
// runs; request ids are unique per run so runs never see each other's entries.
type Service interface {
	// RequestApproval registers r; a request id can be registered only once.
	RequestApproval(ctx context.Context, r *Request) error
	ListPending(ctx context.Context, filter Filter) ([]*Request, error)
	Decide(ctx context.Context, id string, outcome Outcome, reason string) (*Decision, error)
	Decisions(ctx context.Context, filter Filter) ([]*Decision, error)
}
