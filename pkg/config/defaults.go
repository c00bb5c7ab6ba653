package config

import "time"

// Default values for configuration fields.
const (
	// DefaultConfigPath is the config file looked up when --config is not
	// given. Its absence is not an error.
	DefaultConfigPath = "sieve.yaml"

	// Schema defaults
	DefaultSchemaPath     = "schema.yaml"
	DefaultSchemaFormat   = "auto"
	DefaultSchemaDebounce = 200 * time.Millisecond

	// Parser defaults
	DefaultParserStrictKeyValue = false
	DefaultParserSuggestions    = true

	// Output defaults
	DefaultOutputFormat = "text"
	DefaultOutputColor  = true

	// History defaults
	DefaultHistoryEnabled       = true
	DefaultHistoryDriver        = "sqlite"
	DefaultHistoryPath          = ".sieve/history.db"
	DefaultHistoryRetentionDays = 30
	DefaultHistoryMaxRecords    = int64(10000)
	DefaultHistoryPruneSchedule = "0 3 * * *"
	DefaultHistoryBusyTimeout   = 5 * time.Second
	DefaultHistoryWALMode       = true

	// MaxHistoryRetentionDays bounds history.retention_days to 100 years.
	MaxHistoryRetentionDays = 36500

	// Telemetry defaults
	DefaultLoggingLevel         = "warn"
	DefaultLoggingFormat        = "text"
	DefaultMetricsEnabled       = false
	DefaultMetricsListenAddress = "127.0.0.1:9464"
	DefaultMetricsPath          = "/metrics"
	DefaultMetricsNamespace     = "sieve"
	DefaultMetricsSubsystem     = "classifier"
	DefaultTracingEnabled       = false
	DefaultTracingSampler       = "ratio"
	DefaultTracingSampleRatio   = 1.0
	DefaultTracingEndpoint      = "localhost:4317"
	DefaultTracingInsecure      = true
	DefaultTracingTimeout       = 10 * time.Second
	DefaultTracingServiceName   = "sieve"
)

// Default returns a configuration with every field set to its default.
// Loading starts from it so that a file can turn boolean defaults off.
func Default() *Config {
	return &Config{
		Schema: SchemaConfig{
			Path:     DefaultSchemaPath,
			Format:   DefaultSchemaFormat,
			Debounce: DefaultSchemaDebounce,
		},
		Parser: ParserConfig{
			StrictKeyValue: DefaultParserStrictKeyValue,
			Suggestions:    DefaultParserSuggestions,
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
			Color:  DefaultOutputColor,
		},
		History: HistoryConfig{
			Enabled:       DefaultHistoryEnabled,
			Driver:        DefaultHistoryDriver,
			Path:          DefaultHistoryPath,
			RetentionDays: DefaultHistoryRetentionDays,
			MaxRecords:    DefaultHistoryMaxRecords,
			PruneSchedule: DefaultHistoryPruneSchedule,
			BusyTimeout:   DefaultHistoryBusyTimeout,
			WALMode:       DefaultHistoryWALMode,
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				Level:  DefaultLoggingLevel,
				Format: DefaultLoggingFormat,
			},
			Metrics: MetricsConfig{
				Enabled:       DefaultMetricsEnabled,
				ListenAddress: DefaultMetricsListenAddress,
				Path:          DefaultMetricsPath,
				Namespace:     DefaultMetricsNamespace,
				Subsystem:     DefaultMetricsSubsystem,
			},
			Tracing: TracingConfig{
				Enabled:     DefaultTracingEnabled,
				Sampler:     DefaultTracingSampler,
				SampleRatio: DefaultTracingSampleRatio,
				Endpoint:    DefaultTracingEndpoint,
				Insecure:    DefaultTracingInsecure,
				Timeout:     DefaultTracingTimeout,
				ServiceName: DefaultTracingServiceName,
			},
		},
	}
}

// ApplyDefaults fills empty non-boolean fields with their defaults. Boolean
// fields keep their value, since false cannot be told apart from unset;
// start from Default() to get boolean defaults.
func ApplyDefaults(cfg *Config) {
	// Schema defaults
	if cfg.Schema.Path == "" {
		cfg.Schema.Path = DefaultSchemaPath
	}
	if cfg.Schema.Format == "" {
		cfg.Schema.Format = DefaultSchemaFormat
	}
	if cfg.Schema.Debounce == 0 {
		cfg.Schema.Debounce = DefaultSchemaDebounce
	}

	// Output defaults
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultOutputFormat
	}

	// History defaults
	if cfg.History.Driver == "" {
		cfg.History.Driver = DefaultHistoryDriver
	}
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath
	}
	if cfg.History.PruneSchedule == "" {
		cfg.History.PruneSchedule = DefaultHistoryPruneSchedule
	}
	if cfg.History.BusyTimeout == 0 {
		cfg.History.BusyTimeout = DefaultHistoryBusyTimeout
	}

	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}

	if cfg.Tracing.Sampler == "" {
		cfg.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Tracing.Endpoint == "" {
		cfg.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Tracing.Timeout == 0 {
		cfg.Tracing.Timeout = DefaultTracingTimeout
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingServiceName
	}
}
