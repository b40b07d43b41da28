// Package progress provides a lightweight tracker that keeps aggregated
// item counters (eligible, submitted, skipped, …) for a single run.  The
// tracker instance lives in the context – every workflow that receives the
// context can update the counters via the Delta helper.

package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/signoff/internal/clock"
)

// Delta represents an incremental counter change emitted by a workflow.  The
// fields are signed and therefore can be either positive or negative.
type Delta struct {
	Eligible  int
	Submitted int
	Skipped   int
	Declined  int
	Reported  int
	Failed    int
	Running   int
}

// Progress keeps aggregated item counters for all categories of a run.  It
// is safe for concurrent use.
type Progress struct {
	RunID     string
	StartedAt time.Time

	Eligible  int
	Submitted int
	Skipped   int
	Declined  int
	Reported  int
	Failed    int
	Running   int

	sync.Mutex
	onChange func(Progress)
}

// Update applies the supplied delta.  The onChange callback, if any, is
// invoked with a copy outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}

	p.Lock()
	p.Eligible += d.Eligible
	p.Submitted += d.Submitted
	p.Skipped += d.Skipped
	p.Declined += d.Declined
	p.Reported += d.Reported
	p.Failed += d.Failed
	p.Running += d.Running
	snapshot := p.copyLocked()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

func (p *Progress) copyLocked() Progress {
	return Progress{
		RunID:     p.RunID,
		StartedAt: p.StartedAt,
		Eligible:  p.Eligible,
		Submitted: p.Submitted,
		Skipped:   p.Skipped,
		Declined:  p.Declined,
		Reported:  p.Reported,
		Failed:    p.Failed,
		Running:   p.Running,
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copyLocked()
}

// ----------------------------------------------------------------------------
// Context helpers
// ----------------------------------------------------------------------------

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a new tracker and embeds it in a derived context.
// onChange, if not nil, receives a copy after every Update.
func WithNewTracker(ctx context.Context, runID string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		StartedAt: clock.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies the delta to the tracker in ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
