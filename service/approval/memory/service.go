package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/viant/signoff/internal/clock"
	"github.com/viant/signoff/service/approval"
	"github.com/viant/signoff/service/dao"
	"github.com/viant/signoff/service/dao/store"
)

const (
	runParameter      = "RunID"
	categoryParameter = "Category"
)

type service struct {
	mu     sync.Mutex // serialises RequestApproval and Decide
	reqDAO dao.Service[string, approval.Request]
	decDAO dao.Service[string, approval.Decision]
}

// key selectors – grab ID field
func reqKey(r *approval.Request) string  { return r.ID }
func decKey(d *approval.Decision) string { return d.ID }

func matchRequest(r *approval.Request, parameter *dao.Parameter) bool {
	switch parameter.Name {
	case runParameter:
		return parameter.Matches(r.RunID)
	case categoryParameter:
		return parameter.Matches(r.Category)
	}
	return true
}

func matchDecision(d *approval.Decision, parameter *dao.Parameter) bool {
	switch parameter.Name {
	case runParameter:
		return parameter.Matches(d.RunID)
	case categoryParameter:
		return parameter.Matches(d.Category)
	}
	return true
}

// New returns an in-memory ledger.
func New() approval.Service {
	return &service{
		reqDAO: store.NewMemoryStore[string, approval.Request](reqKey).WithMatcher(matchRequest),
		decDAO: store.NewMemoryStore[string, approval.Decision](decKey).WithMatcher(matchDecision),
	}
}

func filterParameters(filter approval.Filter) []*dao.Parameter {
	var ret []*dao.Parameter
	if filter.RunID != "" {
		ret = append(ret, dao.NewParameter(runParameter, filter.RunID))
	}
	if filter.Category != "" {
		ret = append(ret, dao.NewParameter(categoryParameter, filter.Category))
	}
	return ret
}

func (s *service) RequestApproval(ctx context.Context, r *approval.Request) error {
	if r == nil {
		return errors.New("invalid request")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = clock.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.reqDAO.Load(ctx, r.ID); err == nil {
		return fmt.Errorf("%w: %s", approval.ErrDuplicate, r.ID)
	}
	return s.reqDAO.Save(ctx, r)
}

func (s *service) ListPending(ctx context.Context, filter approval.Filter) ([]*approval.Request, error) {
	all, err := s.reqDAO.List(ctx, filterParameters(filter)...)
	if err != nil {
		return nil, err
	}
	pending := make([]*approval.Request, 0, len(all))
	for _, r := range all {
		if _, err := s.decDAO.Load(ctx, r.ID); errors.Is(err, dao.ErrNotFound) {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

func (s *service) Decide(ctx context.Context, id string, outcome approval.Outcome, reason string) (*approval.Decision, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	request, err := s.reqDAO.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", approval.ErrNotFound, id)
	}
	if _, err := s.decDAO.Load(ctx, id); err == nil {
		return nil, fmt.Errorf("%w: %s", approval.ErrAlreadyDecided, id)
	}
	d := &approval.Decision{
		ID:        id,
		RunID:     request.RunID,
		Category:  request.Category,
		ItemID:    request.ItemID,
		Outcome:   outcome,
		Reason:    reason,
		DecidedAt: clock.Now(),
	}
	if err := s.decDAO.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) Decisions(ctx context.Context, filter approval.Filter) ([]*approval.Decision, error) {
	return s.decDAO.List(ctx, filterParameters(filter)...)
}

var _ approval.Service = (*service)(nil)
