package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "SIEVE_"

// LoadConfig loads configuration from a YAML file at the specified path.
// Fields missing from the file keep their defaults. The result is validated
// but not modified by environment variables; use LoadConfigWithEnvOverrides
// for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention SIEVE_SECTION_FIELD (e.g., SIEVE_HISTORY_PATH) and always take
// precedence over the file.
//
// An empty path skips the file: defaults are used, then overridden from
// the environment.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = Default()
	} else {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// ResolvePath returns the config file to load. An explicitly requested path
// is returned as is. Otherwise DefaultConfigPath is used when it exists, and
// "" (defaults only) when it does not.
func ResolvePath(path string, explicit bool) string {
	if explicit {
		return path
	}
	if path == "" {
		path = DefaultConfigPath
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return ""
	}
	return path
}

// applyEnvOverrides applies SIEVE_* environment variables to cfg. Malformed
// numeric, boolean or duration values are reported rather than ignored.
func applyEnvOverrides(cfg *Config) error {
	var errs []FieldError
	env := envReader{errs: &errs}

	// Schema overrides
	env.str("SCHEMA_PATH", &cfg.Schema.Path)
	env.str("SCHEMA_FORMAT", &cfg.Schema.Format)
	env.duration("SCHEMA_DEBOUNCE", &cfg.Schema.Debounce)

	// Parser overrides
	env.boolean("PARSER_STRICT_KEY_VALUE", &cfg.Parser.StrictKeyValue)
	env.boolean("PARSER_SUGGESTIONS", &cfg.Parser.Suggestions)

	// Output overrides
	env.str("OUTPUT_FORMAT", &cfg.Output.Format)
	env.boolean("OUTPUT_COLOR", &cfg.Output.Color)

	// History overrides
	env.boolean("HISTORY_ENABLED", &cfg.History.Enabled)
	env.str("HISTORY_DRIVER", &cfg.History.Driver)
	env.str("HISTORY_PATH", &cfg.History.Path)
	env.integer("HISTORY_RETENTION_DAYS", &cfg.History.RetentionDays)
	env.integer64("HISTORY_MAX_RECORDS", &cfg.History.MaxRecords)
	env.str("HISTORY_PRUNE_SCHEDULE", &cfg.History.PruneSchedule)
	env.duration("HISTORY_BUSY_TIMEOUT", &cfg.History.BusyTimeout)
	env.boolean("HISTORY_WAL_MODE", &cfg.History.WALMode)

	// Telemetry overrides
	env.str("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	env.str("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	env.boolean("TELEMETRY_LOGGING_ADD_SOURCE", &cfg.Telemetry.Logging.AddSource)
	env.boolean("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	env.str("TELEMETRY_METRICS_LISTEN_ADDRESS", &cfg.Telemetry.Metrics.ListenAddress)
	env.str("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	env.boolean("TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	env.str("TELEMETRY_TRACING_SAMPLER", &cfg.Telemetry.Tracing.Sampler)
	env.float("TELEMETRY_TRACING_SAMPLE_RATIO", &cfg.Telemetry.Tracing.SampleRatio)
	env.str("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	env.boolean("TELEMETRY_TRACING_INSECURE", &cfg.Telemetry.Tracing.Insecure)
	env.str("TELEMETRY_TRACING_SERVICE_NAME", &cfg.Telemetry.Tracing.ServiceName)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

// envReader reads SIEVE_-prefixed variables into typed fields, recording
// parse failures.
type envReader struct {
	errs *[]FieldError
}

func (r envReader) lookup(key string) (string, bool) {
	val := os.Getenv(EnvPrefix + key)
	return val, val != ""
}

func (r envReader) fail(key, msg string) {
	*r.errs = append(*r.errs, FieldError{Field: EnvPrefix + key, Message: msg})
}

func (r envReader) str(key string, dst *string) {
	if val, ok := r.lookup(key); ok {
		*dst = val
	}
}

func (r envReader) boolean(key string, dst *bool) {
	val, ok := r.lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		r.fail(key, fmt.Sprintf("invalid boolean %q", val))
		return
	}
	*dst = b
}

func (r envReader) integer(key string, dst *int) {
	val, ok := r.lookup(key)
	if !ok {
		return
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		r.fail(key, fmt.Sprintf("invalid integer %q", val))
		return
	}
	*dst = i
}

func (r envReader) integer64(key string, dst *int64) {
	val, ok := r.lookup(key)
	if !ok {
		return
	}
	i, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		r.fail(key, fmt.Sprintf("invalid integer %q", val))
		return
	}
	*dst = i
}

func (r envReader) float(key string, dst *float64) {
	val, ok := r.lookup(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		r.fail(key, fmt.Sprintf("invalid number %q", val))
		return
	}
	*dst = f
}

func (r envReader) duration(key string, dst *time.Duration) {
	val, ok := r.lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		r.fail(key, fmt.Sprintf("invalid duration %q", val))
		return
	}
	*dst = d
}
