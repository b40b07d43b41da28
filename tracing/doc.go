// Package tracing integrates OpenTelemetry with signoff.  Every pipeline
// stage and every portal request is recorded as a span once a provider has
// been installed with Init or InitWithExporter; without it spans are no-op.
package tracing
