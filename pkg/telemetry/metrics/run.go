package metrics

import (
	"time"

	"sieve-hq/sieve/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RunMetrics tracks classification runs.
//
// Metrics:
//   - sieve_classifier_runs_total: Runs by status ("ok", "error")
//   - sieve_classifier_tokens_total: Input tokens classified
//   - sieve_classifier_args_total: Positional arguments produced
//   - sieve_classifier_run_duration_seconds: Time spent classifying
//   - sieve_classifier_diagnostics_total: Diagnostics by kind
//   - sieve_classifier_parsed_options_total: Recognized options by name
type RunMetrics struct {
	runsTotal     *prometheus.CounterVec
	tokensTotal   prometheus.Counter
	argsTotal     prometheus.Counter
	runDuration   prometheus.Histogram
	diagnostics   *prometheus.CounterVec
	parsedOptions *prometheus.CounterVec
}

// NewRunMetrics creates and registers run metrics with the provided registry.
func NewRunMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RunMetrics {
	rm := &RunMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of classification runs",
			},
			[]string{"status"},
		),

		tokensTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tokens_total",
				Help:      "Total number of input tokens classified",
			},
		),

		argsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "args_total",
				Help:      "Total number of positional arguments produced",
			},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of a classification run in seconds",
				// Classification is a single pass over argv
				Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10), // 1µs to ~260ms
			},
		),

		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "diagnostics_total",
				Help:      "Total number of diagnostics by kind",
			},
			[]string{"kind"},
		),

		parsedOptions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parsed_options_total",
				Help:      "Total number of recognized options by name",
			},
			[]string{"option"},
		),
	}

	registry.MustRegister(
		rm.runsTotal,
		rm.tokensTotal,
		rm.argsTotal,
		rm.runDuration,
		rm.diagnostics,
		rm.parsedOptions,
	)

	return rm
}

// RecordRun records a completed run.
func (rm *RunMetrics) RecordRun(status string, tokens, args int, duration time.Duration) {
	rm.runsTotal.WithLabelValues(status).Inc()
	rm.tokensTotal.Add(float64(tokens))
	rm.argsTotal.Add(float64(args))
	rm.runDuration.Observe(duration.Seconds())
}

// RecordDiagnostics adds n diagnostics of the given kind.
func (rm *RunMetrics) RecordDiagnostics(kind string, n int) {
	rm.diagnostics.WithLabelValues(kind).Add(float64(n))
}

// RecordOption records one recognized option occurrence.
func (rm *RunMetrics) RecordOption(name string) {
	rm.parsedOptions.WithLabelValues(name).Inc()
}
