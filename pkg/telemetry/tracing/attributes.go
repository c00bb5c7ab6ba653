package tracing

import (
	"context"

	"sieve-hq/sieve/pkg/classifier"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanClassify   = "sieve.classify"
	SpanExec       = "classifier.exec"
	SpanSchemaLoad = "schema.load"
	SpanHistory    = "history.save"
)

// Custom attribute keys use the "sieve.*" namespace.
const (
	AttrRunID         = "sieve.run_id"
	AttrSchemaPath    = "sieve.schema.path"
	AttrSchemaFormat  = "sieve.schema.format"
	AttrSchemaOptions = "sieve.schema.options"
	AttrTokens        = "sieve.tokens"
	AttrArgs          = "sieve.args"
	AttrOptions       = "sieve.options"
	AttrDiagnostics   = "sieve.diagnostics"
)

// SetSchemaAttributes records the schema a run classified against.
func SetSchemaAttributes(span trace.Span, path, format string, options int) {
	span.SetAttributes(
		attribute.String(AttrSchemaPath, path),
		attribute.String(AttrSchemaFormat, format),
		attribute.Int(AttrSchemaOptions, options),
	)
}

// SetResultAttributes records the shape of a classification result. Each
// diagnostic is also added as a span event named after its kind.
func SetResultAttributes(span trace.Span, tokens int, result *classifier.Result) {
	span.SetAttributes(
		attribute.Int(AttrTokens, tokens),
		attribute.Int(AttrArgs, len(result.Args)),
		attribute.Int(AttrOptions, len(result.Options)),
		attribute.Int(AttrDiagnostics, len(result.Diagnostics)),
	)

	for _, d := range result.Diagnostics {
		span.AddEvent(string(d.Kind), trace.WithAttributes(
			attribute.String("token", d.Token),
			attribute.String("message", d.Message),
		))
	}
}

// TraceExec runs parser.Exec inside a classifier.exec span and returns the
// result snapshot.
func (t *Tracer) TraceExec(ctx context.Context, parser *classifier.Parser, tokens []string) *classifier.Result {
	_, span := t.Start(ctx, SpanExec)
	defer span.End()

	parser.Exec(tokens)
	result := parser.Result()
	SetResultAttributes(span, len(tokens), result)
	return result
}
