package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for classification run IDs.
	RunIDKey contextKey = "run_id"

	// SchemaKey is the context key for the schema file in use.
	SchemaKey contextKey = "schema"

	// CommandKey is the context key for the CLI subcommand.
	CommandKey contextKey = "command"
)

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithSchema adds the schema path to the context.
func WithSchema(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, SchemaKey, path)
}

// GetSchema retrieves the schema path from the context.
func GetSchema(ctx context.Context) string {
	if path, ok := ctx.Value(SchemaKey).(string); ok {
		return path
	}
	return ""
}

// WithCommand adds the subcommand name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, CommandKey, command)
}

// GetCommand retrieves the subcommand name from the context.
func GetCommand(ctx context.Context) string {
	if command, ok := ctx.Value(CommandKey).(string); ok {
		return command
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if command := GetCommand(ctx); command != "" {
		fields = append(fields, "command", command)
	}
	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, "run_id", runID)
	}
	if path := GetSchema(ctx); path != "" {
		fields = append(fields, "schema", path)
	}

	return fields
}
