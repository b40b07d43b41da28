// Package metrics records run metrics with the Prometheus client: per-item
// sign-off outcomes and portal request latency.  A one-shot run has nothing to
// scrape it, so the registry can be pushed to a Pushgateway when the run ends.
package metrics
