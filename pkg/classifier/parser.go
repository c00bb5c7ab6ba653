package classifier

import (
	"log/slog"
	"strings"
)

// Parser classifies command-line tokens against its registered options.
// Results are kept on the Parser and replaced by every Exec call.
type Parser struct {
	registry *Registry
	logger   *slog.Logger

	// Configuration
	strictKeyValue bool // --name=value only for options declared KeyValue
	suggestions    bool // attach "did you mean" hints to unknown verbose names

	// Results of the last Exec call
	args   []string
	parsed []ParsedOption
	diags  []Diagnostic
}

// New creates a parser with an empty registry and default configuration.
func New() *Parser {
	return &Parser{
		registry:    NewRegistry(),
		logger:      slog.Default().With("component", "classifier"),
		suggestions: true,
		args:        []string{},
		parsed:      []ParsedOption{},
		diags:       []Diagnostic{},
	}
}

// WithStrictKeyValue makes --name=value valid only for options declared
// KeyValue; other registered options get a NotKeyValueOption diagnostic.
func (p *Parser) WithStrictKeyValue(strict bool) *Parser {
	p.strictKeyValue = strict
	return p
}

// WithSuggestions enables or disables "did you mean" hints.
func (p *Parser) WithSuggestions(enabled bool) *Parser {
	p.suggestions = enabled
	return p
}

// WithLogger sets the logger used for debug output.
func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	if logger != nil {
		p.logger = logger.With("component", "classifier")
	}
	return p
}

// AddOption registers opt. It returns a *ConfigurationError when the name
// or shorthand is already in use.
func (p *Parser) AddOption(opt Option) error {
	return p.registry.Add(opt)
}

// MustAddOption is like AddOption but panics on error.
func (p *Parser) MustAddOption(opt Option) {
	if err := p.AddOption(opt); err != nil {
		panic(err)
	}
}

// Registry returns the parser's option registry.
func (p *Parser) Registry() *Registry {
	return p.registry
}

// Options returns the registered options in registration order.
func (p *Parser) Options() []Option {
	return p.registry.Options()
}

// Exec classifies tokens. The program name must not be included. Previous
// results are discarded first; problems in tokens are recorded as
// diagnostics and never stop the scan.
func (p *Parser) Exec(tokens []string) {
	p.args = []string{}
	p.parsed = []ParsedOption{}
	p.diags = []Diagnostic{}

	for i := 0; i < len(tokens); {
		i = p.scan(tokens, i)
	}

	p.logger.Debug("tokens classified",
		"tokens", len(tokens),
		"args", len(p.args),
		"options", len(p.parsed),
		"diagnostics", len(p.diags),
	)
}

// scan classifies the token at i and returns the index of the next token
// to scan.
func (p *Parser) scan(tokens []string, i int) int {
	token := tokens[i]

	if !isOptionToken(token) {
		p.args = append(p.args, token)
		return i + 1
	}

	if isHyphensOnly(token) {
		p.report(emptyOptionToken(token))
		return i + 1
	}

	if isVerboseToken(token) {
		body := token[2:]
		if strings.Contains(body, "=") {
			p.keyValue(token, body)
			return i + 1
		}
		opt, ok := p.registry.ByName(body)
		if !ok {
			p.reportUnknownVerbose(token, body)
			return i + 1
		}
		return p.apply(tokens, i, opt)
	}

	cluster := []rune(token[1:])
	if len(cluster) == 1 {
		opt, ok := p.registry.ByShorthand(string(cluster[0]))
		if !ok {
			p.report(unknownShorthand(token, string(cluster[0])))
			return i + 1
		}
		return p.apply(tokens, i, opt)
	}

	valid := p.expandCluster(token, cluster)
	switch len(valid) {
	case 0:
		return i + 1
	case 1:
		return p.apply(tokens, i, valid[0])
	default:
		for _, opt := range valid {
			p.record(opt.name, nil)
		}
		return i + 1
	}
}

// keyValue handles a verbose token containing '='. It never consumes the
// tokens that follow.
func (p *Parser) keyValue(token, body string) {
	if strings.Count(body, "=") > 1 {
		p.report(malformedKeyValue(token))
		return
	}

	key, value, _ := strings.Cut(body, "=")
	opt, ok := p.registry.ByName(key)
	if !ok {
		p.reportUnknownVerbose(token, key)
		return
	}
	if p.strictKeyValue && !opt.keyValue {
		p.report(notKeyValue(token, opt))
		return
	}

	p.record(opt.name, []string{value})
}

// expandCluster validates every shorthand in a multi-character cluster and
// returns the groupable options in order of appearance.
func (p *Parser) expandCluster(token string, cluster []rune) []Option {
	var valid []Option
	for _, r := range cluster {
		opt, ok := p.registry.ByShorthand(string(r))
		switch {
		case !ok:
			p.report(unknownShorthand(token, string(r)))
		case !opt.groupable:
			p.report(nonGroupable(token, opt))
		default:
			valid = append(valid, opt)
		}
	}
	return valid
}

// apply records a resolved option found at tokens[i], collecting trailing
// arguments when the option accepts them. It returns the next index to scan.
func (p *Parser) apply(tokens []string, i int, opt Option) int {
	if !opt.acceptsArgs {
		p.record(opt.name, nil)
		return i + 1
	}

	token := tokens[i]
	i++

	collected := []string{}
	for i < len(tokens) && len(collected) < opt.maxArgs && !isOptionToken(tokens[i]) {
		collected = append(collected, tokens[i])
		i++
	}

	if len(collected) < opt.minArgs {
		p.report(insufficientArguments(token, opt, len(collected)))
		return i
	}

	p.record(opt.name, collected)
	return i
}

func (p *Parser) record(name string, args []string) {
	if args == nil {
		args = []string{}
	}
	p.parsed = append(p.parsed, ParsedOption{Name: name, Args: args})
}

func (p *Parser) report(d Diagnostic) {
	p.logger.Debug("classification diagnostic", "kind", d.Kind, "token", d.Token)
	p.diags = append(p.diags, d)
}

func (p *Parser) reportUnknownVerbose(token, name string) {
	d := unknownVerbose(token, name)
	if p.suggestions {
		d.Suggestion = suggestName(name, p.registry.Names())
	}
	p.report(d)
}

// isOptionToken reports whether token looks like an option: any token
// starting with a hyphen.
func isOptionToken(token string) bool {
	return strings.HasPrefix(token, "-")
}

// isVerboseToken reports whether token uses the two-hyphen form.
func isVerboseToken(token string) bool {
	return strings.HasPrefix(token, "--")
}

// isHyphensOnly reports whether token is one or more hyphens and nothing
// else.
func isHyphensOnly(token string) bool {
	return token != "" && strings.Trim(token, "-") == ""
}
