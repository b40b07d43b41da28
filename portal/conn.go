package portal

import (
	"context"
	"fmt"
	"net/http"

	"github.com/viant/signoff/model"
)

type envelope[T any] struct {
	Data T `json:"data"`
}

type payoutList struct {
	Payouts []*model.Payout `json:"payouts"`
}

type salaryList struct {
	SalariesSummary []*model.SalarySummary `json:"salariesSummary"`
}

// Conn is a client bound to an authenticated session.
type Conn struct {
	client  *Client
	session *model.Session
}

// Conn binds the client to session.
func (c *Client) Conn(session *model.Session) *Conn {
	return &Conn{client: c, session: session}
}

func get[T any](ctx context.Context, c *Conn, route, path string) (T, error) {
	var ret envelope[T]
	err := c.client.call(ctx, &Request{Method: http.MethodGet, Route: route, Path: path, Session: c.session}, &ret)
	return ret.Data, err
}

// Payouts lists payouts.
func (c *Conn) Payouts(ctx context.Context) ([]*model.Payout, error) {
	list, err := get[payoutList](ctx, c, RoutePayouts, RoutePayouts)
	return list.Payouts, err
}

// Payout loads the payout detail including authorizers and allocations.
func (c *Conn) Payout(ctx context.Context, id model.ID) (*model.PayoutDetail, error) {
	detail, err := get[*model.PayoutDetail](ctx, c, RoutePayout, expand(RoutePayout, id))
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("payout %s: empty detail", id)
	}
	return detail, nil
}

// AuthorizePayout signs a payout with its allocation tax breakdown.
func (c *Conn) AuthorizePayout(ctx context.Context, id model.ID, vat model.AllocationVat) error {
	return c.client.call(ctx, &Request{
		Method:  http.MethodPut,
		Route:   RoutePayoutAuthorize,
		Path:    expand(RoutePayoutAuthorize, id),
		Session: c.session,
		Body:    &model.PayoutAuthorization{AllocationsVat: vat},
	}, nil)
}

// Salaries lists salary run summaries.
func (c *Conn) Salaries(ctx context.Context) ([]*model.SalarySummary, error) {
	list, err := get[salaryList](ctx, c, RouteSalaries, RouteSalaries)
	return list.SalariesSummary, err
}

// AuthorizeSalaries signs all supplied salary runs in one request.
func (c *Conn) AuthorizeSalaries(ctx context.Context, ids []model.ID) error {
	if ids == nil {
		ids = []model.ID{}
	}
	return c.client.call(ctx, &Request{
		Method:  http.MethodPost,
		Route:   RouteSalaryAuthorize,
		Path:    RouteSalaryAuthorize,
		Session: c.session,
		Body:    ids,
	}, nil)
}

// Invoices lists invoices.
func (c *Conn) Invoices(ctx context.Context) ([]*model.Invoice, error) {
	return get[[]*model.Invoice](ctx, c, RouteInvoices, RouteInvoices)
}
