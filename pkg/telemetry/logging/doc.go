// Package logging provides structured logging with secret redaction.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Redaction of secret option values in logged command lines
//   - Context-aware logging with run IDs and schema paths
//   - Configurable log levels (debug, info, warn, error)
//
// Logs are written to stderr by default so that reports on stdout can be
// piped.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:         "debug",
//	    Format:        "json",
//	    RedactSecrets: true,
//	})
//	slog.SetDefault(logger.Slog())
//
//	slog.Debug("classifying", logging.TokensKey, []string{"--password=x"})
//	// tokens=["--password=***"]
//
//	ctx = logging.WithRunID(ctx, runID)
//	logger.WithContext(ctx).Info("run stored")  // includes run_id
//
// # Redaction
//
// Redaction is applied by a slog.Handler wrapper, so it also covers loggers
// derived with With and the process default logger. Values are masked when:
//
//   - a "tokens" attribute holds --name=value with a secret-looking name
//   - a "tokens" attribute holds --name followed by a separate value
//   - a string attribute key itself names a secret (e.g. "api_key")
package logging
