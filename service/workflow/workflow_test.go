package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/signoff/internal/logger"
	"github.com/viant/signoff/model"
	"github.com/viant/signoff/policy"
	"github.com/viant/signoff/progress"
	"github.com/viant/signoff/service/approval"
	"github.com/viant/signoff/service/approval/memory"
)

const identity = "Ada Lovelace"

type fakePortal struct {
	mu         sync.Mutex
	payouts    []*model.Payout
	details    map[string]*model.PayoutDetail
	failOn     string
	delay      time.Duration
	authorized map[string]model.AllocationVat
	salaries   []*model.SalarySummary
	batches    [][]model.ID
	invoices   []*model.Invoice
	listErr    error
	fetched    map[string]int
}

func (f *fakePortal) Payouts(ctx context.Context) ([]*model.Payout, error) {
	return f.payouts, f.listErr
}

func (f *fakePortal) Payout(ctx context.Context, id model.ID) (*model.PayoutDetail, error) {
	f.mu.Lock()
	if f.fetched == nil {
		f.fetched = map[string]int{}
	}
	f.fetched[id.String()]++
	f.mu.Unlock()
	if detail, ok := f.details[id.String()]; ok {
		return detail, nil
	}
	return &model.PayoutDetail{Subject: "payout " + id.String(), Allocations: []model.Allocation{{ID: model.NewID("1"), Tax: json.RawMessage("5")}}}, nil
}

func (f *fakePortal) AuthorizePayout(ctx context.Context, id model.ID, vat model.AllocationVat) error {
	if id.String() == f.failOn {
		return errors.New("503 Service Unavailable")
	}
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.delay):
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.authorized == nil {
		f.authorized = map[string]model.AllocationVat{}
	}
	f.authorized[id.String()] = vat
	return nil
}

func (f *fakePortal) Salaries(ctx context.Context) ([]*model.SalarySummary, error) {
	return f.salaries, f.listErr
}

func (f *fakePortal) AuthorizeSalaries(ctx context.Context, ids []model.ID) error {
	f.batches = append(f.batches, ids)
	return nil
}

func (f *fakePortal) Invoices(ctx context.Context) ([]*model.Invoice, error) {
	return f.invoices, f.listErr
}

func (f *fakePortal) authorizedIDs() []string {
	var ret []string
	for id := range f.authorized {
		ret = append(ret, id)
	}
	sort.Strings(ret)
	return ret
}

func payout(id int64, status model.Status) *model.Payout {
	return &model.Payout{ID: model.NumericID(id), Authorized: status}
}

func newEngine() *Engine {
	return New(WithLogger(logger.Discard()))
}

func TestRun_Payouts(t *testing.T) {
	type testCase struct {
		name       string
		portal     *fakePortal
		authorized []string
		count      int
		submitted  int
		skipped    int
	}

	tests := []testCase{
		{
			name:       "authorized payouts are never sent",
			portal:     &fakePortal{payouts: []*model.Payout{payout(1, model.StatusAuthorized), payout(2, model.StatusPartial), payout(3, model.StatusNone)}},
			authorized: []string{"2", "3"},
			count:      2,
			submitted:  2,
		},
		{
			name: "already signed payout is skipped but counted",
			portal: &fakePortal{
				payouts: []*model.Payout{payout(4, model.StatusPartial)},
				details: map[string]*model.PayoutDetail{"4": {Subject: "Rent", Authorizers: []model.Authorizer{{Name: identity}}}},
			},
			count:   1,
			skipped: 1,
		},
		{
			name: "signed by someone else",
			portal: &fakePortal{
				payouts: []*model.Payout{payout(5, model.StatusPartial)},
				details: map[string]*model.PayoutDetail{"5": {Subject: "Rent", Authorizers: []model.Authorizer{{Name: "Grace Hopper"}}}},
			},
			authorized: []string{"5"},
			count:      1,
			submitted:  1,
		},
		{
			name:   "unknown status is ignored",
			portal: &fakePortal{payouts: []*model.Payout{payout(6, model.StatusUnknown)}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Run(context.Background(), newEngine(), NewPayouts(tc.portal, identity))
			assert.NoError(t, err)
			assert.Equal(t, tc.authorized, tc.portal.authorizedIDs())
			assert.Equal(t, tc.count, result.Count())
			assert.Equal(t, tc.submitted, result.Submitted)
			assert.Equal(t, tc.skipped, result.Skipped)
		})
	}
}

func TestRun_Payouts_StatusLiterals(t *testing.T) {
	var payouts []*model.Payout
	err := json.Unmarshal([]byte(`[{"id":1,"authorized":"PARTIAL"},{"id":2,"authorized":" False "},{"id":3,"authorized":"partial"}]`), &payouts)
	assert.NoError(t, err)
	portal := &fakePortal{payouts: payouts}
	result, err := Run(context.Background(), newEngine(), NewPayouts(portal, identity))
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Listed)
	assert.Equal(t, 1, result.Eligible)
	assert.Equal(t, []string{"3"}, portal.authorizedIDs())
}

func TestRun_Payouts_AskChecksSignatureFirst(t *testing.T) {
	portal := &fakePortal{
		payouts: []*model.Payout{payout(1, model.StatusPartial), payout(2, model.StatusPartial)},
		details: map[string]*model.PayoutDetail{"2": {Subject: "Power", Authorizers: []model.Authorizer{{Name: identity}}}},
	}
	var asked []string
	ctx := policy.WithPolicy(context.Background(), &policy.Policy{Mode: policy.ModeAsk, Ask: func(ctx context.Context, category, item string, p *policy.Policy) bool {
		asked = append(asked, item)
		return true
	}})
	engine := newEngine()
	result, err := Run(ctx, engine, NewPayouts(portal, identity))
	assert.NoError(t, err)
	assert.Equal(t, []string{"1"}, asked)
	assert.Equal(t, []string{"1"}, portal.authorizedIDs())
	assert.Equal(t, map[string]int{"1": 1, "2": 1}, portal.fetched)
	assert.Equal(t, Result{Category: "payouts", Listed: 2, Eligible: 2, Submitted: 1, Skipped: 1}, *result)

	decisions, _ := engine.Ledger().Decisions(context.Background(), approval.Filter{RunID: engine.RunID()})
	assert.Equal(t, map[approval.Outcome]int{approval.OutcomeSubmitted: 1, approval.OutcomeSkipped: 1}, approval.Tally(decisions))
}

func TestRun_SharedLedger(t *testing.T) {
	ledger := memory.New()
	first := New(WithLogger(logger.Discard()), WithLedger(ledger), WithRunID("run-1"))
	_, err := Run(context.Background(), first, NewPayouts(&fakePortal{payouts: []*model.Payout{payout(1, model.StatusPartial)}}, identity))
	assert.NoError(t, err)

	second := New(WithLogger(logger.Discard()), WithLedger(ledger), WithRunID("run-2"))
	_, err = Run(context.Background(), second, NewPayouts(&fakePortal{payouts: []*model.Payout{payout(1, model.StatusPartial)}, failOn: "1"}, identity))
	assert.Error(t, err)

	type testCase struct {
		runID    string
		expected map[approval.Outcome]int
	}
	for _, tc := range []testCase{
		{runID: "run-1", expected: map[approval.Outcome]int{approval.OutcomeSubmitted: 1}},
		{runID: "run-2", expected: map[approval.Outcome]int{approval.OutcomeFailed: 1}},
	} {
		decisions, err := ledger.Decisions(context.Background(), approval.Filter{RunID: tc.runID})
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, approval.Tally(decisions), tc.runID)
	}
}

func TestRun_Payouts_AllocationVat(t *testing.T) {
	portal := &fakePortal{
		payouts: []*model.Payout{payout(7, model.StatusPartial)},
		details: map[string]*model.PayoutDetail{"7": {Allocations: []model.Allocation{
			{ID: model.NewID("1"), Tax: json.RawMessage("5")},
			{ID: model.NewID("2"), Tax: json.RawMessage("7")},
		}}},
	}
	_, err := Run(context.Background(), newEngine(), NewPayouts(portal, identity))
	assert.NoError(t, err)
	assert.Equal(t, model.AllocationVat{1: json.RawMessage("5"), 2: json.RawMessage("7")}, portal.authorized["7"])
}

func TestRun_Payouts_FailureAborts(t *testing.T) {
	portal := &fakePortal{
		payouts: []*model.Payout{payout(1, model.StatusPartial), payout(2, model.StatusPartial), payout(3, model.StatusNone)},
		failOn:  "2",
		delay:   200 * time.Millisecond,
	}
	engine := newEngine()
	started := time.Now()
	result, err := Run(context.Background(), engine, NewPayouts(portal, identity))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "payouts 2")
	assert.Less(t, time.Since(started), 2*time.Second)
	assert.Equal(t, 3, result.Eligible)
	assert.Equal(t, 0, result.Submitted)

	decisions, _ := engine.Ledger().Decisions(context.Background(), approval.Filter{Category: "payouts"})
	assert.Equal(t, map[approval.Outcome]int{approval.OutcomeFailed: 3}, approval.Tally(decisions))
}

func TestRun_Payouts_Bounded(t *testing.T) {
	var payouts []*model.Payout
	for i := int64(1); i <= 10; i++ {
		payouts = append(payouts, payout(i, model.StatusPartial))
	}
	portal := &fakePortal{payouts: payouts}
	ctx, tracker := progress.WithNewTracker(context.Background(), "run", nil)
	result, err := Run(ctx, New(WithLogger(logger.Discard()), WithMaxConcurrency(2)), NewPayouts(portal, identity))
	assert.NoError(t, err)
	assert.Equal(t, 10, result.Submitted)
	snapshot := tracker.Snapshot()
	assert.Equal(t, 10, snapshot.Submitted)
	assert.Equal(t, 0, snapshot.Running)
}

func TestRun_Salaries(t *testing.T) {
	type testCase struct {
		name      string
		salaries  []*model.SalarySummary
		batches   [][]model.ID
		submitted int
	}

	tests := []testCase{
		{
			name: "partial ids in source order",
			salaries: []*model.SalarySummary{
				{SalaryID: model.NumericID(9), Status: model.StatusPartial},
				{SalaryID: model.NumericID(3), Status: model.StatusAuthorized},
				{SalaryID: model.NumericID(5), Status: model.StatusPartial},
				{SalaryID: model.NumericID(1), Status: model.StatusNone},
			},
			batches:   [][]model.ID{{model.NumericID(9), model.NumericID(5)}},
			submitted: 2,
		},
		{
			name:     "nothing eligible sends nothing",
			salaries: []*model.SalarySummary{{SalaryID: model.NumericID(3), Status: model.StatusAuthorized}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			portal := &fakePortal{salaries: tc.salaries}
			result, err := Run(context.Background(), newEngine(), NewSalaries(portal))
			assert.NoError(t, err)
			assert.Equal(t, tc.batches, portal.batches)
			assert.Equal(t, tc.submitted, result.Submitted)
			assert.Equal(t, tc.submitted, result.Count())
		})
	}
}

func TestRun_Invoices(t *testing.T) {
	portal := &fakePortal{invoices: []*model.Invoice{
		{ID: model.NumericID(1), PartiallyAuthorized: true},
		{ID: model.NumericID(2)},
		{ID: model.NumericID(3), PartiallyAuthorized: true, CompanyName: "ACME"},
	}}
	engine := newEngine()
	result, err := Run(context.Background(), engine, NewInvoices(portal))
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Listed)
	assert.Equal(t, 2, result.Count())
	assert.Equal(t, 2, result.Reported)
	assert.Equal(t, 0, result.Submitted)

	pending, _ := engine.Ledger().ListPending(context.Background(), approval.Filter{})
	assert.Empty(t, pending)
}

func TestRun_Policy(t *testing.T) {
	payouts := func() *fakePortal {
		return &fakePortal{payouts: []*model.Payout{payout(1, model.StatusPartial), payout(2, model.StatusNone)}}
	}

	type testCase struct {
		name       string
		policy     *policy.Policy
		authorized []string
		result     Result
	}

	tests := []testCase{
		{
			name:   "report mode sends nothing",
			policy: &policy.Policy{Mode: policy.ModeReport},
			result: Result{Category: "payouts", Listed: 2, Eligible: 2, Reported: 2},
		},
		{
			name:   "blocked category is not listed",
			policy: &policy.Policy{BlockList: []string{"payouts"}},
			result: Result{Category: "payouts", Disabled: true},
		},
		{
			name: "declined items are not sent",
			policy: &policy.Policy{Mode: policy.ModeAsk, Ask: func(ctx context.Context, category, item string, p *policy.Policy) bool {
				return item == "1"
			}},
			authorized: []string{"1"},
			result:     Result{Category: "payouts", Listed: 2, Eligible: 2, Submitted: 1, Declined: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			portal := payouts()
			ctx := policy.WithPolicy(context.Background(), tc.policy)
			result, err := Run(ctx, newEngine(), NewPayouts(portal, identity))
			assert.NoError(t, err)
			assert.Equal(t, tc.authorized, portal.authorizedIDs())
			assert.Equal(t, tc.result, *result)
		})
	}
}

func TestRun_ListError(t *testing.T) {
	portal := &fakePortal{listErr: errors.New("401 Unauthorized")}
	_, err := Run(context.Background(), newEngine(), NewInvoices(portal))
	assert.ErrorContains(t, err, "failed to list invoices")
}
