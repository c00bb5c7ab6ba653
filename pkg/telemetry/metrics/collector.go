package metrics

import (
	"fmt"
	"sync"
	"time"

	"sieve-hq/sieve/pkg/classifier"
	"sieve-hq/sieve/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// overflowLabel replaces label values once the cardinality limit is hit.
const overflowLabel = "other"

// Collector owns every Prometheus metric sieve exports. It manages metric
// registration on a private registry and provides one recording method per
// event.
//
// All recording methods are no-ops when metrics are disabled, so callers do
// not need to check the configuration themselves.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Classification run metrics
	runMetrics *RunMetrics

	// Schema load and reload metrics
	schemaMetrics *SchemaMetrics

	// History store metrics
	historyMetrics *HistoryMetrics

	// Cardinality tracking for option labels
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "sieve",
//		Subsystem: "classifier",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(1000),
	}

	c.runMetrics = NewRunMetrics(cfg, registry)
	c.schemaMetrics = NewSchemaMetrics(cfg, registry)
	c.historyMetrics = NewHistoryMetrics(cfg, registry)

	return c
}

// Enabled reports whether metrics are being recorded.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// RecordRun records metrics for one classification run.
//
// Parameters:
//   - tokens: number of input tokens
//   - result: the classification result
//   - duration: time spent in Exec
//
// Option names are bounded by the schema, but a reloaded schema can
// introduce new ones, so they pass through the cardinality limiter.
func (c *Collector) RecordRun(tokens int, result *classifier.Result, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	status := "ok"
	if result.HasErrors() {
		status = "error"
	}
	c.runMetrics.RecordRun(status, tokens, len(result.Args), duration)

	for kind, n := range result.CountByKind() {
		c.runMetrics.RecordDiagnostics(string(kind), n)
	}

	for _, opt := range result.Options {
		name := opt.Name
		if !c.cardinalityLimiter.Allow(fmt.Sprintf("option:%s", name)) {
			name = overflowLabel
		}
		c.runMetrics.RecordOption(name)
	}
}

// RecordSchemaLoad records an attempt to load a schema file.
//
// Parameters:
//   - format: resolved schema format ("yaml", "toml", "hcl")
//   - options: number of options in the schema, ignored on failure
//   - err: the load error, nil on success
func (c *Collector) RecordSchemaLoad(format string, options int, err error) {
	if !c.config.Enabled {
		return
	}

	c.schemaMetrics.RecordLoad(format, err == nil)
	if err == nil {
		c.schemaMetrics.SetOptions(options)
	}
}

// RecordSchemaReload records a reload triggered by the file watcher.
func (c *Collector) RecordSchemaReload(err error) {
	if !c.config.Enabled {
		return
	}

	c.schemaMetrics.RecordReload(err == nil)
}

// RecordHistorySave records a run saved to the history store.
func (c *Collector) RecordHistorySave(err error) {
	if !c.config.Enabled {
		return
	}

	c.historyMetrics.RecordSave(err == nil)
}

// RecordHistoryPrune records records removed by retention.
//
// Parameters:
//   - reason: "age" or "count"
//   - deleted: number of records removed
func (c *Collector) RecordHistoryPrune(reason string, deleted int64) {
	if !c.config.Enabled {
		return
	}

	c.historyMetrics.RecordPrune(reason, deleted)
}

// UpdateHistorySize sets the number of records in the history store.
func (c *Collector) UpdateHistorySize(records int64) {
	if !c.config.Enabled {
		return
	}

	c.historyMetrics.UpdateSize(records)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
