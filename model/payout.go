package model

import (
	"encoding/json"
	"fmt"

	"github.com/viant/toolbox"
)

// Payout is an outbound payment as returned by the payout list.
type Payout struct {
	ID         ID              `json:"id"`
	Authorized Status          `json:"authorized"`
	Subject    string          `json:"subject,omitempty"`
	Amount     json.RawMessage `json:"amount,omitempty"`
	Currency   string          `json:"currency,omitempty"`
}

// Authorizer is an identity that has signed a payout.
type Authorizer struct {
	Name string `json:"name"`
}

// Allocation is a payout sub-line carrying its own tax amount.
type Allocation struct {
	ID  ID              `json:"id"`
	Tax json.RawMessage `json:"tax"`
}

// PayoutDetail is the full payout record used for the sign-off decision.
type PayoutDetail struct {
	Subject     string       `json:"subject"`
	Authorizers []Authorizer `json:"authorizers"`
	Allocations []Allocation `json:"allocations"`
}

// AuthorizedBy reports whether name already signed the payout.
func (d *PayoutDetail) AuthorizedBy(name string) bool {
	if d == nil {
		return false
	}
	for _, authorizer := range d.Authorizers {
		if authorizer.Name == name {
			return true
		}
	}
	return false
}

// AllocationVat maps a numeric allocation id to its tax amount.  Amounts are
// kept in the JSON encoding the portal sent.
type AllocationVat map[int]json.RawMessage

// NewAllocationVat builds the allocation tax map sent when authorizing a
// payout.  It holds exactly one entry per allocation.
func NewAllocationVat(allocations []Allocation) (AllocationVat, error) {
	ret := make(AllocationVat, len(allocations))
	for _, allocation := range allocations {
		id, err := toolbox.ToInt(allocation.ID.String())
		if err != nil {
			return nil, fmt.Errorf("allocation id %q is not numeric: %w", allocation.ID.String(), err)
		}
		if _, ok := ret[id]; ok {
			return nil, fmt.Errorf("duplicate allocation id %d", id)
		}
		tax := allocation.Tax
		if len(tax) == 0 {
			tax = json.RawMessage("null")
		}
		ret[id] = tax
	}
	return ret, nil
}

// PayoutAuthorization is the body of a payout authorize request.
type PayoutAuthorization struct {
	AllocationsVat AllocationVat `json:"allocationsVat"`
}
