package schema

import (
	"fmt"
	"strings"
)

// FieldError describes one invalid field in a schema file.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadError is returned when a schema file cannot be turned into options.
// It carries every problem found, not just the first.
type LoadError struct {
	Path string
	Errs []*FieldError
}

func (e *LoadError) Error() string {
	if len(e.Errs) == 0 {
		return fmt.Sprintf("invalid schema %s", e.Path)
	}
	if len(e.Errs) == 1 {
		return fmt.Sprintf("invalid schema %s: %s", e.Path, e.Errs[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid schema %s: %d errors:", e.Path, len(e.Errs))
	for _, err := range e.Errs {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Add appends a field error.
func (e *LoadError) Add(field, message string) {
	e.Errs = append(e.Errs, &FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field error was added.
func (e *LoadError) HasErrors() bool {
	return len(e.Errs) > 0
}
