// Package observability groups the logging, metrics and tracing
// infrastructure shared by the API server and the publish worker.
//
// Subpackages:
//   - logging: structured slog loggers with request ID propagation
//   - metrics: centralized Prometheus metric definitions and recorders
//   - tracing: OpenTelemetry tracer setup and HTTP middleware
package observability
