package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/viant/signoff/internal/idgen"
	"github.com/viant/signoff/metrics"
	"github.com/viant/signoff/policy"
	"github.com/viant/signoff/progress"
	"github.com/viant/signoff/service/approval"
	"github.com/viant/signoff/service/approval/memory"
	"github.com/viant/signoff/tracing"
	"golang.org/x/sync/errgroup"
)

// Engine runs category workflows.
type Engine struct {
	runID          string
	ledger         approval.Service
	logger         *slog.Logger
	recorder       *metrics.Recorder
	maxConcurrency int
}

// Option customises the engine.
type Option func(e *Engine)

// WithRunID scopes ledger entries to runID.
func WithRunID(runID string) Option {
	return func(e *Engine) { e.runID = runID }
}

// WithLedger sets the decision ledger.
func WithLedger(ledger approval.Service) Option {
	return func(e *Engine) { e.ledger = ledger }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder *metrics.Recorder) Option {
	return func(e *Engine) { e.recorder = recorder }
}

// WithMaxConcurrency bounds concurrent authorizations; 0 means unbounded.
func WithMaxConcurrency(limit int) Option {
	return func(e *Engine) { e.maxConcurrency = limit }
}

// New creates an engine.
func New(options ...Option) *Engine {
	ret := &Engine{}
	for _, option := range options {
		option(ret)
	}
	if ret.runID == "" {
		ret.runID = idgen.New()
	}
	if ret.ledger == nil {
		ret.ledger = memory.New()
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}

// Ledger returns the decision ledger.
func (e *Engine) Ledger() approval.Service {
	return e.ledger
}

// RunID returns the run the engine records decisions for.
func (e *Engine) RunID() string {
	return e.runID
}

// Run executes w.  The first failed authorization cancels the remaining ones
// and is returned together with the partial result.
func Run[T any](ctx context.Context, e *Engine, w *Workflow[T]) (result *Result, err error) {
	category := w.Category.String()
	result = &Result{Category: category}
	aPolicy := policy.FromContext(ctx)
	if !aPolicy.IsAllowed(category) {
		result.Disabled = true
		e.logger.Info("category disabled", "category", category)
		return result, nil
	}

	ctx, span := tracing.StartSpan(ctx, "workflow."+category, tracing.KindInternal)
	defer func() {
		span.WithInt("listed", result.Listed).WithInt("eligible", result.Eligible)
		tracing.EndSpan(span, err)
	}()

	items, err := w.List(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list %s: %w", category, err)
	}
	result.Listed = len(items)
	var eligible []*T
	for _, item := range items {
		if item != nil && w.Eligible(item) {
			eligible = append(eligible, item)
		}
	}
	result.Eligible = len(eligible)
	progress.UpdateCtx(ctx, progress.Delta{Eligible: len(eligible)})
	e.logger.Info("authorizing", "category", category, "eligible", len(eligible), "mode", aPolicy.EffectiveMode())

	for _, item := range eligible {
		if err = e.ledger.RequestApproval(ctx, approval.NewRequest(e.runID, category, w.Key(item), w.label(item), item)); err != nil {
			return result, fmt.Errorf("failed to register %s %s: %w", category, w.Key(item), err)
		}
	}

	if aPolicy.EffectiveMode() == policy.ModeReport || w.readOnly() {
		for _, item := range eligible {
			decide(ctx, e, w, item, approval.OutcomeReported, "")
		}
		result.Reported = len(eligible)
		e.logger.Info("reported", "category", category, "count", result.Count())
		return result, nil
	}

	ask := aPolicy.EffectiveMode() == policy.ModeAsk
	approved := make([]*T, 0, len(eligible))
	for _, item := range eligible {
		if ask && w.Check != nil {
			checkErr := w.Check(ctx, item)
			if skip, ok := IsSkip(checkErr); ok {
				e.logger.Info(skip.Reason, "category", category, "id", w.Key(item))
				progress.UpdateCtx(ctx, progress.Delta{Skipped: 1})
				decide(ctx, e, w, item, approval.OutcomeSkipped, skip.Reason)
				result.Skipped++
				continue
			}
			if checkErr != nil {
				decide(ctx, e, w, item, approval.OutcomeFailed, checkErr.Error())
				return result, fmt.Errorf("failed to check %s %s: %w", category, w.Key(item), checkErr)
			}
		}
		if aPolicy.Confirm(ctx, category, w.label(item)) {
			approved = append(approved, item)
			continue
		}
		decide(ctx, e, w, item, approval.OutcomeDeclined, "declined by operator")
		result.Declined++
	}

	if w.Authorize != nil {
		err = dispatch(ctx, e, w, approved, result)
	} else {
		err = dispatchBatch(ctx, e, w, approved, result)
	}
	if err != nil {
		return result, err
	}
	e.logger.Info("authorized", "category", category, "count", result.Count(),
		"submitted", result.Submitted, "skipped", result.Skipped, "declined", result.Declined)
	return result, nil
}

// dispatch authorizes items concurrently.
func dispatch[T any](ctx context.Context, e *Engine, w *Workflow[T], items []*T, result *Result) error {
	category := w.Category.String()
	group, groupCtx := errgroup.WithContext(ctx)
	if e.maxConcurrency > 0 {
		group.SetLimit(e.maxConcurrency)
	}
	var submitted, skipped int32
	for _, item := range items {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				decide(ctx, e, w, item, approval.OutcomeFailed, err.Error())
				return err
			}
			progress.UpdateCtx(ctx, progress.Delta{Running: 1})
			err := w.Authorize(groupCtx, item)
			if skip, ok := IsSkip(err); ok {
				atomic.AddInt32(&skipped, 1)
				progress.UpdateCtx(ctx, progress.Delta{Running: -1, Skipped: 1})
				e.logger.Info(skip.Reason, "category", category, "id", w.Key(item))
				decide(ctx, e, w, item, approval.OutcomeSkipped, skip.Reason)
				return nil
			}
			if err != nil {
				progress.UpdateCtx(ctx, progress.Delta{Running: -1, Failed: 1})
				decide(ctx, e, w, item, approval.OutcomeFailed, err.Error())
				return fmt.Errorf("failed to authorize %s %s: %w", category, w.Key(item), err)
			}
			atomic.AddInt32(&submitted, 1)
			progress.UpdateCtx(ctx, progress.Delta{Running: -1, Submitted: 1})
			decide(ctx, e, w, item, approval.OutcomeSubmitted, "")
			return nil
		})
	}
	err := group.Wait()
	result.Submitted += int(atomic.LoadInt32(&submitted))
	result.Skipped += int(atomic.LoadInt32(&skipped))
	return err
}

// dispatchBatch authorizes all items with one request.
func dispatchBatch[T any](ctx context.Context, e *Engine, w *Workflow[T], items []*T, result *Result) error {
	// An empty batch sends no POST at all rather than an empty salaryIds
	// list; the portal never needs a request when nothing is eligible.
	if len(items) == 0 {
		return nil
	}
	progress.UpdateCtx(ctx, progress.Delta{Running: len(items)})
	if err := w.AuthorizeBatch(ctx, items); err != nil {
		progress.UpdateCtx(ctx, progress.Delta{Running: -len(items), Failed: len(items)})
		for _, item := range items {
			decide(ctx, e, w, item, approval.OutcomeFailed, err.Error())
		}
		return fmt.Errorf("failed to authorize %d %s: %w", len(items), w.Category, err)
	}
	progress.UpdateCtx(ctx, progress.Delta{Running: -len(items), Submitted: len(items)})
	for _, item := range items {
		decide(ctx, e, w, item, approval.OutcomeSubmitted, "")
	}
	result.Submitted += len(items)
	return nil
}

func decide[T any](ctx context.Context, e *Engine, w *Workflow[T], item *T, outcome approval.Outcome, reason string) {
	category := w.Category.String()
	e.recorder.Item(category, string(outcome))
	if _, err := e.ledger.Decide(ctx, idgen.Key(e.runID, category, w.Key(item)), outcome, reason); err != nil {
		e.logger.Warn("failed to record decision", "category", category, "id", w.Key(item), "error", err)
	}
}
