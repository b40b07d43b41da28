package workflow

import (
	"context"
	"errors"

	"github.com/viant/signoff/model"
)

// Workflow describes one category.  At most one of Authorize and
// AuthorizeBatch is set; with neither the category is report only.
type Workflow[T any] struct {
	Category model.Category
	List     func(ctx context.Context) ([]*T, error)
	Eligible func(item *T) bool
	Key      func(item *T) string
	Label    func(item *T) string
	// Check runs before the operator is asked about an item; a Skip error
	// records the item as skipped without prompting.
	Check func(ctx context.Context, item *T) error
	// Authorize signs a single item.  Items are authorized concurrently.
	// Returning a Skip error records the item as skipped.
	Authorize func(ctx context.Context, item *T) error
	// AuthorizeBatch signs all approved items with one request.
	AuthorizeBatch func(ctx context.Context, items []*T) error
}

func (w *Workflow[T]) label(item *T) string {
	if w.Label != nil {
		if label := w.Label(item); label != "" {
			return label
		}
	}
	return w.Key(item)
}

func (w *Workflow[T]) readOnly() bool {
	return w.Authorize == nil && w.AuthorizeBatch == nil
}

// SkipError marks an item that needs no authorization request.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string {
	return "skipped: " + e.Reason
}

// Skip returns a SkipError with reason.
func Skip(reason string) error {
	return &SkipError{Reason: reason}
}

// IsSkip reports whether err is a SkipError.
func IsSkip(err error) (*SkipError, bool) {
	var skip *SkipError
	if errors.As(err, &skip) {
		return skip, true
	}
	return nil, false
}

// Result summarises a category run.
type Result struct {
	Category  string `json:"category"`
	Listed    int    `json:"listed"`
	Eligible  int    `json:"eligible"`
	Submitted int    `json:"submitted"`
	Skipped   int    `json:"skipped"`
	Declined  int    `json:"declined"`
	Reported  int    `json:"reported"`
	Disabled  bool   `json:"disabled,omitempty"`
}

// Count returns the number narrated as "<n> <category> authorized": every
// eligible item, including the ones the identity had already signed.
func (r *Result) Count() int {
	if r == nil {
		return 0
	}
	return r.Eligible
}
