package metrics

import (
	"sieve-hq/sieve/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// HistoryMetrics tracks the run history store.
//
// Metrics:
//   - sieve_classifier_history_saves_total: Saves by result
//   - sieve_classifier_history_pruned_total: Records removed by reason
//   - sieve_classifier_history_records: Records currently stored
type HistoryMetrics struct {
	savesTotal  *prometheus.CounterVec
	prunedTotal *prometheus.CounterVec
	records     prometheus.Gauge
}

// NewHistoryMetrics creates and registers history metrics with the provided registry.
func NewHistoryMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *HistoryMetrics {
	hm := &HistoryMetrics{
		savesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "history_saves_total",
				Help:      "Total number of runs saved to history",
			},
			[]string{"result"},
		),

		prunedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "history_pruned_total",
				Help:      "Total number of history records removed by retention",
			},
			[]string{"reason"},
		),

		records: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "history_records",
				Help:      "Number of records in the history store",
			},
		),
	}

	registry.MustRegister(
		hm.savesTotal,
		hm.prunedTotal,
		hm.records,
	)

	return hm
}

// RecordSave records a save attempt.
func (hm *HistoryMetrics) RecordSave(ok bool) {
	hm.savesTotal.WithLabelValues(resultLabel(ok)).Inc()
}

// RecordPrune adds deleted records for the given reason.
func (hm *HistoryMetrics) RecordPrune(reason string, deleted int64) {
	hm.prunedTotal.WithLabelValues(reason).Add(float64(deleted))
}

// UpdateSize sets the number of stored records.
func (hm *HistoryMetrics) UpdateSize(records int64) {
	hm.records.Set(float64(records))
}
