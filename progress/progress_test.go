package progress

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Update(t *testing.T) {
	var changes int
	var mu sync.Mutex
	ctx, tracker := WithNewTracker(context.Background(), "run-1", func(Progress) {
		mu.Lock()
		changes++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			UpdateCtx(ctx, Delta{Running: 1})
			UpdateCtx(ctx, Delta{Running: -1, Submitted: 1})
		}()
	}
	wg.Wait()
	UpdateCtx(ctx, Delta{Eligible: 12, Skipped: 2})

	fromCtx, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, tracker, fromCtx)
	snapshot := tracker.Snapshot()
	assert.Equal(t, "run-1", snapshot.RunID)
	assert.Equal(t, 12, snapshot.Eligible)
	assert.Equal(t, 10, snapshot.Submitted)
	assert.Equal(t, 2, snapshot.Skipped)
	assert.Equal(t, 0, snapshot.Running)
	assert.Equal(t, 21, changes)
}

func TestProgress_NoTracker(t *testing.T) {
	UpdateCtx(context.Background(), Delta{Submitted: 1})
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	var p *Progress
	p.Update(Delta{Failed: 1})
	assert.Equal(t, Progress{}, p.Snapshot())
}
