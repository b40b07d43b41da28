package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "signoff"

// Recorder keeps the metrics of a single run.  A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	registry *prometheus.Registry
	items    *prometheus.CounterVec
	requests *prometheus.HistogramVec
	stages   *prometheus.GaugeVec
}

// New creates a recorder with its own registry.
func New() *Recorder {
	ret := &Recorder{
		registry: prometheus.NewRegistry(),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_total",
			Help:      "Eligible financial items by category and sign-off outcome.",
		}, []string{"category", "outcome"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "portal_request_duration_seconds",
			Help:      "Portal request latency by method, route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
		stages: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of the last run of each pipeline stage.",
		}, []string{"stage", "status"}),
	}
	ret.registry.MustRegister(ret.items, ret.requests, ret.stages)
	return ret
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Item counts one item outcome for a category.
func (r *Recorder) Item(category, outcome string) {
	if r == nil {
		return
	}
	r.items.WithLabelValues(category, outcome).Inc()
}

// Request observes a portal request. Code 0 means no response was received.
func (r *Recorder) Request(method, route string, code int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}

// Stage records a pipeline stage duration.
func (r *Recorder) Stage(stage string, err error, elapsed time.Duration) {
	if r == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.stages.WithLabelValues(stage, status).Set(elapsed.Seconds())
}

// Push sends the registry to a Pushgateway under job, grouped by the supplied labels.
func (r *Recorder) Push(ctx context.Context, URL, job string, grouping map[string]string) error {
	if r == nil || URL == "" {
		return nil
	}
	pusher := push.New(URL, job).Gatherer(r.registry)
	for name, value := range grouping {
		pusher = pusher.Grouping(name, value)
	}
	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", URL, err)
	}
	return nil
}
