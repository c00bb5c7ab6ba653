// Package tracing provides OpenTelemetry tracing for sieve runs.
//
// # Overview
//
// Each classify invocation produces a sieve.classify span with child spans
// for schema loading, the classifier pass itself (classifier.exec) and the
// history write. Spans are exported over OTLP gRPC.
//
// # Trace Context Propagation
//
// A run joins an existing trace when the TRACEPARENT environment variable
// holds a valid W3C traceparent:
//
//	TRACEPARENT=00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01 sieve classify -- -la
//
// # Sampling Strategies
//
// Three sampling strategies are supported:
//   - always: Sample all runs
//   - never: Sample no runs
//   - ratio: Sample a percentage of runs
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx = tracing.ExtractFromEnv(ctx)
//	ctx, span := tracer.Start(ctx, tracing.SpanClassify)
//	defer span.End()
//
//	result := tracer.TraceExec(ctx, parser, tokens)
//
// When tracing is disabled, New returns a noop tracer and every call above
// is safe.
package tracing
