package approval

import (
	"encoding/json"

	"github.com/viant/signoff/internal/clock"
	"github.com/viant/signoff/internal/idgen"
)

// NewRequest builds a ledger request for an item of run; args are JSON encoded best-effort.
func NewRequest(runID, category, itemID, subject string, args interface{}) *Request {
	ret := &Request{
		ID:        idgen.Key(runID, category, itemID),
		RunID:     runID,
		Category:  category,
		ItemID:    itemID,
		Subject:   subject,
		CreatedAt: clock.Now(),
	}
	if args != nil {
		if data, err := json.Marshal(args); err == nil {
			ret.Args = data
		}
	}
	return ret
}

// Tally counts decisions per outcome.
func Tally(decisions []*Decision) map[Outcome]int {
	ret := make(map[Outcome]int)
	for _, d := range decisions {
		ret[d.Outcome]++
	}
	return ret
}
