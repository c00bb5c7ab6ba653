// Package config provides configuration management for sieve.
//
// Configuration is read from a YAML file with environment variable
// overrides. The file is optional: without one, every field has a default.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("sieve.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("sieve.yaml")
//
//  3. From defaults and the environment only:
//     cfg, err := config.LoadConfigWithEnvOverrides("")
//
// ResolvePath implements the command line rule: an explicit --config must
// exist, while the default sieve.yaml is used only when present.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention SIEVE_SECTION_FIELD:
//
//   - SIEVE_SCHEMA_PATH overrides schema.path
//   - SIEVE_HISTORY_ENABLED overrides history.enabled
//   - SIEVE_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Malformed values (e.g. SIEVE_HISTORY_MAX_RECORDS=lots) are validation
// errors.
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation
//
// # Example Configuration
//
//	schema:
//	  path: "cli.toml"
//
//	parser:
//	  strict_key_value: true
//
//	output:
//	  format: "json"
//
//	history:
//	  driver: "sqlite3"
//	  path: "/var/lib/sieve/history.db"
//	  retention_days: 7
//
//	telemetry:
//	  logging:
//	    level: "debug"
//	  metrics:
//	    enabled: true
//
// # Singleton
//
// Initialize, GetConfig, SetConfig and ReloadConfig hold a process-wide
// configuration behind a read-write lock. Tests should prefer explicit
// *Config values.
package config
