package history

import (
	"time"

	"github.com/google/uuid"

	"sieve-hq/sieve/pkg/classifier"
)

// Record is one stored classification run.
type Record struct {
	ID          string                    `json:"id" yaml:"id"`
	CreatedAt   time.Time                 `json:"created_at" yaml:"created_at"`
	SchemaPath  string                    `json:"schema_path" yaml:"schema_path"`
	Tokens      []string                  `json:"tokens" yaml:"tokens"`
	Args        []string                  `json:"args" yaml:"args"`
	Options     []classifier.ParsedOption `json:"options" yaml:"options"`
	Diagnostics []classifier.Diagnostic   `json:"diagnostics" yaml:"diagnostics"`
}

// NewRecord builds a record with a fresh ID for a run over tokens.
func NewRecord(schemaPath string, tokens []string, res *classifier.Result) *Record {
	rec := &Record{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		SchemaPath: schemaPath,
		Tokens:     append([]string{}, tokens...),
	}
	if res != nil {
		rec.Args = append([]string{}, res.Args...)
		rec.Options = append([]classifier.ParsedOption{}, res.Options...)
		rec.Diagnostics = append([]classifier.Diagnostic{}, res.Diagnostics...)
	}
	return rec
}

// Result returns the classification result carried by the record.
func (r *Record) Result() *classifier.Result {
	return &classifier.Result{
		Args:        r.Args,
		Options:     r.Options,
		Diagnostics: r.Diagnostics,
	}
}

// Errors returns the diagnostic messages in input order.
func (r *Record) Errors() []string {
	return r.Result().Errors()
}

// HasErrors reports whether the run produced diagnostics.
func (r *Record) HasErrors() bool {
	return len(r.Diagnostics) > 0
}

func (r *Record) clone() *Record {
	c := *r
	c.Tokens = append([]string{}, r.Tokens...)
	c.Args = append([]string{}, r.Args...)
	c.Options = make([]classifier.ParsedOption, len(r.Options))
	for i, opt := range r.Options {
		c.Options[i] = classifier.ParsedOption{Name: opt.Name, Args: append([]string{}, opt.Args...)}
	}
	c.Diagnostics = append([]classifier.Diagnostic{}, r.Diagnostics...)
	return &c
}
