package workflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/signoff/model"
)

// PayoutPortal is the portal surface used by the payout workflow.
type PayoutPortal interface {
	Payouts(ctx context.Context) ([]*model.Payout, error)
	Payout(ctx context.Context, id model.ID) (*model.PayoutDetail, error)
	AuthorizePayout(ctx context.Context, id model.ID, vat model.AllocationVat) error
}

// NewPayouts returns the payout workflow signing as identity (the portal
// display name of the authenticated user).
func NewPayouts(portal PayoutPortal, identity string) *Workflow[model.Payout] {
	var details sync.Map // payout id -> *model.PayoutDetail fetched by check
	check := func(ctx context.Context, p *model.Payout) (*model.PayoutDetail, error) {
		var detail *model.PayoutDetail
		if cached, ok := details.Load(p.ID.String()); ok {
			detail = cached.(*model.PayoutDetail)
		} else {
			fetched, err := portal.Payout(ctx, p.ID)
			if err != nil {
				return nil, err
			}
			detail = fetched
			details.Store(p.ID.String(), detail)
		}
		if detail.AuthorizedBy(identity) {
			return nil, Skip(fmt.Sprintf("%s is already authorized by you", detail.Subject))
		}
		return detail, nil
	}
	return &Workflow[model.Payout]{
		Category: model.CategoryPayouts,
		List:     portal.Payouts,
		Eligible: func(p *model.Payout) bool {
			return p.Authorized == model.StatusPartial || p.Authorized == model.StatusNone
		},
		Key:   func(p *model.Payout) string { return p.ID.String() },
		Label: func(p *model.Payout) string { return p.Subject },
		Check: func(ctx context.Context, p *model.Payout) error {
			_, err := check(ctx, p)
			return err
		},
		Authorize: func(ctx context.Context, p *model.Payout) error {
			detail, err := check(ctx, p)
			if err != nil {
				return err
			}
			vat, err := model.NewAllocationVat(detail.Allocations)
			if err != nil {
				return err
			}
			return portal.AuthorizePayout(ctx, p.ID, vat)
		},
	}
}
