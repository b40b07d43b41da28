package approval

import (
	"encoding/json"
	"time"
)

// Outcome describes what happened to an eligible item.
type Outcome string

const (
	// OutcomeSubmitted means an authorization request was sent and accepted.
	OutcomeSubmitted Outcome = "submitted"
	// OutcomeSkipped means the identity had already signed the item.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeDeclined means the operator declined the item in ask mode.
	OutcomeDeclined Outcome = "declined"
	// OutcomeReported means the item was only reported (report mode or a read-only category).
	OutcomeReported Outcome = "reported"
	// OutcomeFailed means the authorization request failed.
	OutcomeFailed Outcome = "failed"
)

// Request is a ledger entry for an eligible item.
type Request struct {
	ID        string          `json:"id"` // runId/category/itemId
	RunID     string          `json:"runId,omitempty"`
	Category  string          `json:"category"`
	ItemID    string          `json:"itemId"`
	Subject   string          `json:"subject,omitempty"`
	Args      json.RawMessage `json:"args,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Decision records the outcome for a request.
type Decision struct {
	ID        string    `json:"id"` // same as request.ID
	RunID     string    `json:"runId,omitempty"`
	Category  string    `json:"category"`
	ItemID    string    `json:"itemId"`
	Outcome   Outcome   `json:"outcome"`
	Reason    string    `json:"reason,omitempty"`
	DecidedAt time.Time `json:"decidedAt"`
}

// Filter narrows ledger listings; empty fields match everything.
type Filter struct {
	RunID    string
	Category string
}
