package workflow

import (
	"context"

	"github.com/viant/signoff/model"
)

// SalaryPortal is the portal surface used by the salary workflow.
type SalaryPortal interface {
	Salaries(ctx context.Context) ([]*model.SalarySummary, error)
	AuthorizeSalaries(ctx context.Context, ids []model.ID) error
}

// NewSalaries returns the salary workflow.  Partially signed runs are
// authorized together with one request listing their ids in source order.
func NewSalaries(portal SalaryPortal) *Workflow[model.SalarySummary] {
	return &Workflow[model.SalarySummary]{
		Category: model.CategorySalaries,
		List:     portal.Salaries,
		Eligible: func(s *model.SalarySummary) bool { return s.Status == model.StatusPartial },
		Key:      func(s *model.SalarySummary) string { return s.SalaryID.String() },
		Label:    func(s *model.SalarySummary) string { return s.Period },
		AuthorizeBatch: func(ctx context.Context, salaries []*model.SalarySummary) error {
			ids := make([]model.ID, 0, len(salaries))
			for _, salary := range salaries {
				ids = append(ids, salary.SalaryID)
			}
			return portal.AuthorizeSalaries(ctx, ids)
		},
	}
}
