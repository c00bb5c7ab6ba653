package classifier

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// OptionSpec is the raw, unvalidated description of an option. Schema
// loaders decode into it; NewOption turns it into an Option.
type OptionSpec struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Shorthand   string `json:"shorthand" yaml:"shorthand" toml:"shorthand"`
	AcceptsArgs bool   `json:"accepts_args" yaml:"accepts_args" toml:"accepts_args"`
	KeyValue    bool   `json:"key_value" yaml:"key_value" toml:"key_value"`
	Groupable   bool   `json:"groupable" yaml:"groupable" toml:"groupable"`
	MinArgs     int    `json:"min_args" yaml:"min_args" toml:"min_args"`
	MaxArgs     int    `json:"max_args" yaml:"max_args" toml:"max_args"`
}

// Option is a validated option definition. Its fields are fixed at
// construction; the accessors return copies of them.
type Option struct {
	name        string
	shorthand   string
	acceptsArgs bool
	keyValue    bool
	groupable   bool
	minArgs     int
	maxArgs     int
}

// FieldProblem describes one invalid field of an OptionSpec.
type FieldProblem struct {
	Field   string
	Message string
}

// OptionError is returned by NewOption when a spec violates one or more
// field constraints. All violations are reported together.
type OptionError struct {
	Name     string
	Problems []FieldProblem
}

func (e *OptionError) Error() string {
	label := e.Name
	if label == "" {
		label = "<unnamed>"
	}
	if len(e.Problems) == 1 {
		return fmt.Sprintf("invalid option %q: %s: %s", label, e.Problems[0].Field, e.Problems[0].Message)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid option %q: %d problems:", label, len(e.Problems))
	for _, p := range e.Problems {
		fmt.Fprintf(&sb, "\n  - %s: %s", p.Field, p.Message)
	}
	return sb.String()
}

// NewOption validates spec and returns the corresponding Option.
func NewOption(spec OptionSpec) (Option, error) {
	var problems []FieldProblem
	add := func(field, format string, args ...any) {
		problems = append(problems, FieldProblem{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch {
	case spec.Name == "":
		add("name", "must not be empty")
	case strings.HasPrefix(spec.Name, "-"):
		add("name", "must not start with a hyphen")
	case strings.ContainsRune(spec.Name, '='):
		add("name", "must not contain '='")
	case strings.IndexFunc(spec.Name, unicode.IsSpace) >= 0:
		add("name", "must not contain whitespace")
	}

	if n := utf8.RuneCountInString(spec.Shorthand); n != 1 {
		add("shorthand", "must be exactly one character, got %d", n)
	} else {
		r, _ := utf8.DecodeRuneInString(spec.Shorthand)
		if r == '-' || r == '=' || unicode.IsSpace(r) {
			add("shorthand", "%q cannot be used as a shorthand", spec.Shorthand)
		}
	}

	if spec.MinArgs < 0 {
		add("min_args", "must be >= 0, got %d", spec.MinArgs)
	}
	if spec.MaxArgs < spec.MinArgs {
		add("max_args", "must be >= min_args (%d), got %d", spec.MinArgs, spec.MaxArgs)
	}

	if spec.AcceptsArgs {
		if spec.MaxArgs < 1 {
			add("max_args", "must be >= 1 when accepts_args is set")
		}
	} else {
		if spec.MinArgs != 0 || spec.MaxArgs != 0 {
			add("accepts_args", "min_args and max_args must be 0 when arguments are not accepted")
		}
		if spec.KeyValue {
			add("key_value", "requires accepts_args")
		}
	}

	if len(problems) > 0 {
		return Option{}, &OptionError{Name: spec.Name, Problems: problems}
	}

	return Option{
		name:        spec.Name,
		shorthand:   spec.Shorthand,
		acceptsArgs: spec.AcceptsArgs,
		keyValue:    spec.KeyValue,
		groupable:   spec.Groupable,
		minArgs:     spec.MinArgs,
		maxArgs:     spec.MaxArgs,
	}, nil
}

// MustNewOption is like NewOption but panics on an invalid spec. It is meant
// for options declared in Go source.
func MustNewOption(spec OptionSpec) Option {
	opt, err := NewOption(spec)
	if err != nil {
		panic(err)
	}
	return opt
}

// Name returns the verbose name, used as "--name".
func (o Option) Name() string { return o.name }

// Shorthand returns the single-character form, used as "-x".
func (o Option) Shorthand() string { return o.shorthand }

// AcceptsArgs reports whether the option collects trailing arguments.
func (o Option) AcceptsArgs() bool { return o.acceptsArgs }

// KeyValue reports whether the option is declared for the --name=value form.
func (o Option) KeyValue() bool { return o.keyValue }

// Groupable reports whether the option may appear in a shorthand cluster.
func (o Option) Groupable() bool { return o.groupable }

// MinArgs returns the minimum number of collected arguments.
func (o Option) MinArgs() int { return o.minArgs }

// MaxArgs returns the maximum number of collected arguments.
func (o Option) MaxArgs() int { return o.maxArgs }

// Spec returns the option as an OptionSpec, e.g. for serialization.
func (o Option) Spec() OptionSpec {
	return OptionSpec{
		Name:        o.name,
		Shorthand:   o.shorthand,
		AcceptsArgs: o.acceptsArgs,
		KeyValue:    o.keyValue,
		Groupable:   o.groupable,
		MinArgs:     o.minArgs,
		MaxArgs:     o.maxArgs,
	}
}
