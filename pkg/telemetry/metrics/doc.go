// Package metrics provides Prometheus metrics collection for sieve.
//
// # Overview
//
// The metrics package records classification runs, schema loads and history
// store activity on a private Prometheus registry. Metrics are only exposed
// by long-running commands (sieve watch) but are recorded the same way
// everywhere.
//
// # Metrics Categories
//
//   - Run Metrics: run count by status, tokens, args, duration, diagnostics
//     by kind and recognized options by name
//   - Schema Metrics: loads and watcher reloads by result, option count
//   - History Metrics: saves, pruned records and store size
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	start := time.Now()
//	parser.Exec(tokens)
//	collector.RecordRun(len(tokens), parser.Result(), time.Since(start))
//
//	srv, err := collector.NewServer()
//	go srv.Serve(ctx)
//
// # Prometheus Endpoint
//
//	# HELP sieve_classifier_runs_total Total number of classification runs
//	# TYPE sieve_classifier_runs_total counter
//	sieve_classifier_runs_total{status="error"} 3
//	sieve_classifier_runs_total{status="ok"} 12
//
// # Cardinality Management
//
// Option names come from the schema, which can change on reload. Once 1,000
// distinct names have been seen, further names are recorded as "other".
package metrics
