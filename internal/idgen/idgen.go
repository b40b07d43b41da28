package idgen

import "github.com/google/uuid"

// NewFunc returns a new run identifier. Tests replace it to get stable ids.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as string.
func New() string { return NewFunc() }

// Key joins a run id, a category and an item id into a ledger key.  An empty
// run id yields the plain category/id form.
func Key(runID, category, id string) string {
	if runID == "" {
		return category + "/" + id
	}
	return runID + "/" + category + "/" + id
}
