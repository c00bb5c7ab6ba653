package schema

import (
	"errors"
	"log/slog"

	"sieve-hq/sieve/pkg/classifier"
)

// ParserOption configures a parser built by NewParser.
type ParserOption func(*classifier.Parser)

// WithStrictKeyValue sets strict key/value mode on the parser.
func WithStrictKeyValue(strict bool) ParserOption {
	return func(p *classifier.Parser) { p.WithStrictKeyValue(strict) }
}

// WithSuggestions enables or disables "did you mean" hints.
func WithSuggestions(enabled bool) ParserOption {
	return func(p *classifier.Parser) { p.WithSuggestions(enabled) }
}

// WithLogger sets the parser's logger.
func WithLogger(logger *slog.Logger) ParserOption {
	return func(p *classifier.Parser) { p.WithLogger(logger) }
}

// NewParser registers opts, in order, into a new parser. It stops at the
// first *classifier.ConfigurationError.
func NewParser(opts []classifier.Option, parserOpts ...ParserOption) (*classifier.Parser, error) {
	p := classifier.New()
	for _, apply := range parserOpts {
		apply(p)
	}
	for _, opt := range opts {
		if err := p.AddOption(opt); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Lint registers every option into a scratch registry and returns all
// registration conflicts, in schema order. A nil result means the schema is
// usable.
func Lint(opts []classifier.Option) []*classifier.ConfigurationError {
	registry := classifier.NewRegistry()

	var conflicts []*classifier.ConfigurationError
	for _, opt := range opts {
		err := registry.Add(opt)
		if err == nil {
			continue
		}
		var cfgErr *classifier.ConfigurationError
		if errors.As(err, &cfgErr) {
			conflicts = append(conflicts, cfgErr)
		}
	}
	return conflicts
}
