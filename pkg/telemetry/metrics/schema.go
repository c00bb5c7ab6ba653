package metrics

import (
	"sieve-hq/sieve/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// SchemaMetrics tracks schema loading.
//
// Metrics:
//   - sieve_classifier_schema_loads_total: Loads by format and result
//   - sieve_classifier_schema_reloads_total: Watcher reloads by result
//   - sieve_classifier_schema_options: Options in the active schema
type SchemaMetrics struct {
	loadsTotal   *prometheus.CounterVec
	reloadsTotal *prometheus.CounterVec
	options      prometheus.Gauge
}

// NewSchemaMetrics creates and registers schema metrics with the provided registry.
func NewSchemaMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *SchemaMetrics {
	sm := &SchemaMetrics{
		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "schema_loads_total",
				Help:      "Total number of schema loads",
			},
			[]string{"format", "result"},
		),

		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "schema_reloads_total",
				Help:      "Total number of schema reloads triggered by file changes",
			},
			[]string{"result"},
		),

		options: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "schema_options",
				Help:      "Number of options in the active schema",
			},
		),
	}

	registry.MustRegister(
		sm.loadsTotal,
		sm.reloadsTotal,
		sm.options,
	)

	return sm
}

// RecordLoad records a schema load attempt.
func (sm *SchemaMetrics) RecordLoad(format string, ok bool) {
	sm.loadsTotal.WithLabelValues(format, resultLabel(ok)).Inc()
}

// RecordReload records a watcher-triggered reload.
func (sm *SchemaMetrics) RecordReload(ok bool) {
	sm.reloadsTotal.WithLabelValues(resultLabel(ok)).Inc()
}

// SetOptions sets the number of options in the active schema.
func (sm *SchemaMetrics) SetOptions(n int) {
	sm.options.Set(float64(n))
}

func resultLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
