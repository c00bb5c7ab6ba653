package config

import "time"

// Config is the root configuration structure for sieve.
type Config struct {
	// Schema locates the option schema the commands classify against.
	Schema SchemaConfig `yaml:"schema"`

	// Parser holds classifier behaviour switches.
	Parser ParserConfig `yaml:"parser"`

	// Output controls how reports are rendered.
	Output OutputConfig `yaml:"output"`

	// History controls the run history database and its retention.
	History HistoryConfig `yaml:"history"`

	// Telemetry contains logging, metrics and tracing configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// SchemaConfig contains configuration for schema loading.
type SchemaConfig struct {
	// Path is the schema file.
	// Default: "schema.yaml"
	Path string `yaml:"path"`

	// Format forces the schema encoding.
	// Options: "auto", "yaml", "toml", "hcl"
	// Default: "auto" (from the file extension)
	Format string `yaml:"format"`

	// Debounce is the quiet period before `sieve watch` reloads a changed
	// schema.
	// Default: 200ms
	Debounce time.Duration `yaml:"debounce"`
}

// ParserConfig contains classifier configuration.
type ParserConfig struct {
	// StrictKeyValue rejects --name=value for options not declared
	// key_value.
	// Default: false
	StrictKeyValue bool `yaml:"strict_key_value"`

	// Suggestions adds "did you mean" hints to unknown option errors.
	// Default: true
	Suggestions bool `yaml:"suggestions"`
}

// OutputConfig contains report rendering configuration.
type OutputConfig struct {
	// Format is the report format.
	// Options: "text", "json", "yaml"
	// Default: "text"
	Format string `yaml:"format"`

	// Color enables styled text output.
	// Default: true
	Color bool `yaml:"color"`
}

// HistoryConfig contains run history configuration.
type HistoryConfig struct {
	// Enabled controls whether classify runs are recorded.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Driver selects the SQLite driver.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Path is the database file.
	// Default: ".sieve/history.db"
	Path string `yaml:"path"`

	// RetentionDays is how long records are kept (0 = forever).
	// Default: 30
	RetentionDays int `yaml:"retention_days"`

	// MaxRecords caps the number of stored records (0 = unlimited).
	// Default: 10000
	MaxRecords int64 `yaml:"max_records"`

	// PruneSchedule is the cron expression for background pruning during
	// `sieve watch`.
	// Default: "0 3 * * *" (3 AM daily)
	PruneSchedule string `yaml:"prune_schedule"`

	// BusyTimeout is the SQLite busy timeout.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// WALMode enables Write-Ahead Logging mode.
	// Default: true
	WALMode bool `yaml:"wal_mode"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "warn"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether `sieve watch` serves metrics.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address of the metrics HTTP server.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "sieve"
	Namespace string `yaml:"namespace"`

	// Subsystem is the classifier metrics subsystem name.
	// Default: "classifier"
	Subsystem string `yaml:"subsystem"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS for the OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// ServiceName is the service name in traces.
	// Default: "sieve"
	ServiceName string `yaml:"service_name"`
}
