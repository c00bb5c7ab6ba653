package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"sieve-hq/sieve/pkg/classifier"
)

// Format is the output format of a report.
type Format string

const (
	// FormatText is sectioned plain text (default).
	FormatText Format = "text"
	// FormatJSON is indented JSON.
	FormatJSON Format = "json"
	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat converts a flag or config value into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (must be text, json, or yaml)", s)
	}
}

// Report is one classification run as presented to the user.
type Report struct {
	RunID       string                    `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	CreatedAt   time.Time                 `json:"created_at" yaml:"created_at"`
	Schema      string                    `json:"schema,omitempty" yaml:"schema,omitempty"`
	Tokens      []string                  `json:"tokens" yaml:"tokens"`
	Args        []string                  `json:"args" yaml:"args"`
	Options     []classifier.ParsedOption `json:"options" yaml:"options"`
	Diagnostics []classifier.Diagnostic   `json:"diagnostics" yaml:"diagnostics"`
}

// New builds a report from a classification result.
func New(runID, schemaPath string, tokens []string, res *classifier.Result) *Report {
	return &Report{
		RunID:       runID,
		CreatedAt:   time.Now().UTC(),
		Schema:      schemaPath,
		Tokens:      append([]string{}, tokens...),
		Args:        res.Args,
		Options:     res.Options,
		Diagnostics: res.Diagnostics,
	}
}

// HasErrors reports whether the run produced diagnostics.
func (r *Report) HasErrors() bool {
	return len(r.Diagnostics) > 0
}

// Formatter writes reports.
type Formatter interface {
	FormatTo(w io.Writer, r *Report) error
}

// NewFormatter returns the formatter for format. color only affects text
// output.
func NewFormatter(format Format, color bool) (Formatter, error) {
	switch format {
	case FormatText, "":
		return &TextFormatter{Styles: NewStyles(color)}, nil
	case FormatJSON:
		return &JSONFormatter{Indent: true}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
