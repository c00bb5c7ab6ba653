// Package telemetry groups the observability packages used by the sieve
// commands.
//
// # Components
//
//   - logging: slog construction with secret redaction
//   - metrics: Prometheus collectors on a private registry
//   - tracing: OpenTelemetry spans exported over OTLP/gRPC
//   - health: liveness and readiness endpoints for sieve watch
//
// Every component is configured from the telemetry section of sieve.yaml
// and is a no-op when disabled:
//
//	cfg := config.MustGetConfig()
//	logger := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stderr))
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
package telemetry
