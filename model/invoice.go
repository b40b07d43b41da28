package model

import "encoding/json"

// AuthorizedBy identifies a user that signed an invoice.
type AuthorizedBy struct {
	UserID   ID     `json:"userId"`
	UserName string `json:"userName"`
}

// Invoice is a supplier invoice as listed by the portal.
type Invoice struct {
	ID                  ID              `json:"id"`
	InvoiceNo           ID              `json:"InvoiceNo"`
	InvoiceDate         string          `json:"InvoiceDate,omitempty"`
	DueDate             string          `json:"DueDate,omitempty"`
	CompanyName         string          `json:"companyName"`
	TotalInclTax        json.RawMessage `json:"TotalInclTax,omitempty"`
	Currency            string          `json:"Currency,omitempty"`
	PartiallyAuthorized Flag            `json:"partiallyAuthorized"`
	InvoiceStatus       string          `json:"invoiceStatus,omitempty"`
	AuthorizedBy        []AuthorizedBy  `json:"authorizedBy,omitempty"`
}
