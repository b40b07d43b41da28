package workflow

import (
	"context"
	"strings"

	"github.com/viant/signoff/model"
)

// InvoicePortal is the portal surface used by the invoice workflow.
type InvoicePortal interface {
	Invoices(ctx context.Context) ([]*model.Invoice, error)
}

// NewInvoices returns the read-only invoice workflow: partially signed
// invoices are counted and reported, nothing is sent.
func NewInvoices(portal InvoicePortal) *Workflow[model.Invoice] {
	return &Workflow[model.Invoice]{
		Category: model.CategoryInvoices,
		List:     portal.Invoices,
		Eligible: func(i *model.Invoice) bool { return bool(i.PartiallyAuthorized) },
		Key:      func(i *model.Invoice) string { return i.ID.String() },
		Label: func(i *model.Invoice) string {
			return strings.TrimSpace(i.CompanyName + " " + i.InvoiceNo.String())
		},
	}
}
