package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"sieve-hq/sieve/pkg/cli"
	"sieve-hq/sieve/pkg/config"
	"sieve-hq/sieve/pkg/history/retention"
	"sieve-hq/sieve/pkg/report"
	"sieve-hq/sieve/pkg/schema"
	"sieve-hq/sieve/pkg/telemetry/health"
)

var watchFlags struct {
	schema  schemaFlags
	output  outputFlags
	metrics bool
	listen  string
}

var watchCmd = &cobra.Command{
	Use:   "watch [flags] -- TOKENS...",
	Short: "Re-classify tokens whenever the schema changes",
	Long: `Classify tokens, then classify them again every time the schema file
changes, until interrupted (SIGINT or SIGTERM).

A schema edit that fails to load or introduces a collision is reported and
the previous output stands until the file is fixed.

With --metrics, Prometheus metrics and health endpoints are served:
  /metrics  - Prometheus exposition (telemetry.metrics.path)
  /healthz  - Liveness
  /readyz   - 503 while the schema is broken or history is unreachable
  /version  - Build information

Examples:
  # Watch the configured schema
  sieve watch -- -v --output out.txt src/

  # Serve metrics on a custom address
  sieve watch --metrics --listen 127.0.0.1:9100 -- -abc`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchFlags.schema.register(watchCmd)
	watchFlags.output.register(watchCmd)
	watchCmd.Flags().BoolVar(&watchFlags.metrics, "metrics", false, "serve metrics and health endpoints")
	watchCmd.Flags().StringVar(&watchFlags.listen, "listen", "", "metrics listen address (default: telemetry.metrics.listen_address)")
}

func runWatch(cmd *cobra.Command, tokens []string) error {
	cfg := config.MustGetConfig()
	watchFlags.schema.apply(cfg)
	watchFlags.output.apply(cfg)
	if watchFlags.metrics {
		cfg.Telemetry.Metrics.Enabled = true
	}
	if watchFlags.listen != "" {
		cfg.Telemetry.Metrics.ListenAddress = watchFlags.listen
	}

	formatter, err := newFormatter(cfg)
	if err != nil {
		return cli.NewConfigError("output.format", err.Error())
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	p, err := newPipeline(cfg, cfg.History.Enabled)
	if err != nil {
		return err
	}
	defer p.Close()

	loop := &watchLoop{
		pipeline:  p,
		formatter: formatter,
		out:       cmd.OutOrStdout(),
		tokens:    tokens,
	}

	checker := health.New(2 * time.Second)
	checker.RegisterCheck("schema", loop.lastError)
	if p.store != nil {
		checker.RegisterCheck("history", p.store.Ping)
	}

	var served chan error
	if cfg.Telemetry.Metrics.Enabled {
		srv, err := p.metrics.NewServer()
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		health.Mount(srv.Mux(), checker, Version, GitCommit, BuildDate)

		served = make(chan error, 1)
		go func() { served <- srv.Serve(ctx) }()
		p.logger.Info("metrics server listening", "address", srv.Addr(), "path", cfg.Telemetry.Metrics.Path)
	}

	if p.store != nil {
		pruner := retention.NewPruner(p.store, retention.FromConfig(&cfg.History),
			retention.WithObserver(p.metrics.RecordHistoryPrune))
		if err := pruner.Start(ctx); err != nil {
			return err
		}
		defer pruner.Stop()
	}

	watcher, err := schema.NewWatcher(cfg.Schema.Path, cfg.Schema.Debounce, p.logger.Slog())
	if err != nil {
		return err
	}

	if err := loop.run(ctx); err != nil {
		p.logger.Error("initial classification failed", "schema", cfg.Schema.Path, "error", err)
	}

	err = watcher.Watch(ctx, func() error {
		err := loop.run(ctx)
		p.metrics.RecordSchemaReload(err)
		return err
	})

	if served != nil {
		if serveErr := <-served; serveErr != nil && err == nil {
			err = serveErr
		}
	}
	return err
}

// watchLoop re-runs one classification. Runs are serialized so that
// reports are not interleaved on the output.
type watchLoop struct {
	pipeline  *pipeline
	formatter report.Formatter
	out       io.Writer
	tokens    []string

	mu  sync.Mutex
	err error
}

func (w *watchLoop) run(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.err = w.classify(ctx)
	return w.err
}

func (w *watchLoop) classify(ctx context.Context) error {
	s, err := w.pipeline.loadSchema(ctx)
	if err != nil {
		return err
	}
	parser, err := w.pipeline.newParser(s)
	if err != nil {
		return err
	}

	rep := w.pipeline.classify(ctx, parser, s.Path, w.tokens)
	return w.formatter.FormatTo(w.out, rep)
}

// lastError reports the outcome of the latest run as a health check.
func (w *watchLoop) lastError(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}
