package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"

	"sieve-hq/sieve/pkg/classifier"
	"sieve-hq/sieve/pkg/config"
	"sieve-hq/sieve/pkg/history"
	"sieve-hq/sieve/pkg/report"
	"sieve-hq/sieve/pkg/schema"
	"sieve-hq/sieve/pkg/telemetry/logging"
	"sieve-hq/sieve/pkg/telemetry/metrics"
	"sieve-hq/sieve/pkg/telemetry/tracing"
)

// pipeline carries the components one command needs to classify tokens:
// schema loading, the parser, tracing, metrics and run history.
type pipeline struct {
	cfg     *config.Config
	logger  *logging.Logger
	tracer  *tracing.Tracer
	metrics *metrics.Collector

	// store is nil when the run is not recorded.
	store history.Store
}

func newPipeline(cfg *config.Config, recordHistory bool) (*pipeline, error) {
	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	p := &pipeline{
		cfg:     cfg,
		logger:  commandLogger().With("component", "pipeline"),
		tracer:  tracer,
		metrics: metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry()),
	}

	if recordHistory {
		store, err := history.OpenFromConfig(&cfg.History)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to open run history: %w", err)
		}
		p.store = store
	}

	return p, nil
}

// commandLogger returns the configured logger, or a warn-level stderr
// logger when configuration has not run.
func commandLogger() *logging.Logger {
	if appLogger != nil {
		return appLogger
	}
	logger, _ := logging.New(logging.Config{Level: "warn", Format: "text", RedactSecrets: true})
	return logger
}

func (p *pipeline) loadSchema(ctx context.Context) (*schema.Schema, error) {
	_, span := p.tracer.Start(ctx, tracing.SpanSchemaLoad)
	defer span.End()

	format, err := schema.ParseFormat(p.cfg.Schema.Format)
	if err != nil {
		tracing.SetError(span, err)
		return nil, err
	}

	s, err := schema.Load(p.cfg.Schema.Path, format)
	if err != nil {
		tracing.SetError(span, err)
		p.metrics.RecordSchemaLoad(string(format), 0, err)
		return nil, err
	}

	tracing.SetSchemaAttributes(span, s.Path, string(s.Format), len(s.Options))
	p.metrics.RecordSchemaLoad(string(s.Format), len(s.Options), nil)
	p.logger.Debug("schema loaded", "path", s.Path, "format", s.Format, "options", len(s.Options))
	return s, nil
}

func (p *pipeline) newParser(s *schema.Schema) (*classifier.Parser, error) {
	parser, err := schema.NewParser(s.Options,
		schema.WithStrictKeyValue(p.cfg.Parser.StrictKeyValue),
		schema.WithSuggestions(p.cfg.Parser.Suggestions),
		schema.WithLogger(p.logger.Slog()),
	)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", s.Path, err)
	}
	return parser, nil
}

// classify runs one classification, records it and returns its report.
func (p *pipeline) classify(ctx context.Context, parser *classifier.Parser, schemaPath string, tokens []string) *report.Report {
	ctx, span := p.tracer.Start(ctx, tracing.SpanClassify)
	defer span.End()

	start := time.Now()
	result := p.tracer.TraceExec(ctx, parser, tokens)
	p.metrics.RecordRun(len(tokens), result, time.Since(start))

	rec := history.NewRecord(schemaPath, tokens, result)
	span.SetAttributes(attribute.String(tracing.AttrRunID, rec.ID))

	ctx = logging.WithRunID(ctx, rec.ID)
	p.logger.DebugContext(ctx, "tokens classified",
		"tokens", tokens,
		"options", len(result.Options),
		"diagnostics", len(result.Diagnostics),
	)

	p.record(ctx, rec)

	rep := report.New(rec.ID, schemaPath, tokens, result)
	rep.CreatedAt = rec.CreatedAt
	return rep
}

// record saves rec to history. Failures are logged, not returned: the
// classification itself succeeded.
func (p *pipeline) record(ctx context.Context, rec *history.Record) {
	if p.store == nil {
		return
	}

	ctx, span := p.tracer.Start(ctx, tracing.SpanHistory)
	defer span.End()

	err := p.store.Save(ctx, rec)
	p.metrics.RecordHistorySave(err)
	if err != nil {
		tracing.SetError(span, err)
		p.logger.Warn("failed to record run", "run_id", rec.ID, "error", err)
		return
	}

	if n, err := p.store.Count(ctx); err == nil {
		p.metrics.UpdateHistorySize(n)
	}
}

func (p *pipeline) Close() {
	if p.store != nil {
		if err := p.store.Close(); err != nil {
			p.logger.Warn("failed to close run history", "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.tracer.Shutdown(ctx); err != nil {
		p.logger.Warn("failed to flush traces", "error", err)
	}
}
