package signoff

import (
	"log/slog"
	"net/http"

	"github.com/viant/signoff/metrics"
	"github.com/viant/signoff/policy"
	"github.com/viant/signoff/service/approval"
	"github.com/viant/signoff/service/credential"
	"github.com/viant/signoff/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the service.
type Option func(s *Service)

// WithLogger sets the logger; by default one is built from the logging config.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithHTTPClient sets the HTTP client used for portal requests.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) { s.httpClient = client }
}

// WithCredentialSource overrides the configured credential source.
func WithCredentialSource(source credential.Source) Option {
	return func(s *Service) { s.credentials = source }
}

// WithAskFunc sets the confirmation callback used in ask mode.
func WithAskFunc(ask policy.AskFunc) Option {
	return func(s *Service) { s.ask = ask }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(s *Service) { s.recorder = recorder }
}

// WithLedger shares a decision ledger across runs; by default every run gets
// its own.  Entries are keyed by run id and a report only carries the
// decisions of its own run.
func WithLedger(ledger approval.Service) Option {
	return func(s *Service) { s.ledger = ledger }
}

// WithTracingExporter configures OpenTelemetry tracing with a custom
// SpanExporter.  The first successful initialisation wins.
func WithTracingExporter(exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, Version, exporter)
	}
}
