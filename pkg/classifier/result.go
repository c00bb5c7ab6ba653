package classifier

// ParsedOption is one occurrence of a recognized option in the input.
type ParsedOption struct {
	Name string   `json:"name" yaml:"name"`
	Args []string `json:"args" yaml:"args"`
}

// Result is a detached copy of the collections produced by one Exec call.
type Result struct {
	Args        []string       `json:"args" yaml:"args"`
	Options     []ParsedOption `json:"options" yaml:"options"`
	Diagnostics []Diagnostic   `json:"diagnostics" yaml:"diagnostics"`
}

// Errors returns the diagnostic messages in input order.
func (r *Result) Errors() []string {
	msgs := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		msgs[i] = d.String()
	}
	return msgs
}

// HasErrors reports whether any diagnostic was recorded.
func (r *Result) HasErrors() bool {
	return len(r.Diagnostics) > 0
}

// CountByKind returns the number of diagnostics of each kind present.
func (r *Result) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, d := range r.Diagnostics {
		counts[d.Kind]++
	}
	return counts
}

// ParsedArgs returns the positional arguments from the last Exec call.
func (p *Parser) ParsedArgs() []string {
	out := make([]string, len(p.args))
	copy(out, p.args)
	return out
}

// ParsedOptions returns the recognized options from the last Exec call.
func (p *Parser) ParsedOptions() []ParsedOption {
	return cloneParsed(p.parsed)
}

// Diagnostics returns the soft errors from the last Exec call.
func (p *Parser) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(p.diags))
	copy(out, p.diags)
	return out
}

// Errors returns the diagnostic messages from the last Exec call.
func (p *Parser) Errors() []string {
	msgs := make([]string, len(p.diags))
	for i, d := range p.diags {
		msgs[i] = d.String()
	}
	return msgs
}

// Result returns a snapshot of the last Exec call that stays valid across
// later calls.
func (p *Parser) Result() *Result {
	return &Result{
		Args:        p.ParsedArgs(),
		Options:     p.ParsedOptions(),
		Diagnostics: p.Diagnostics(),
	}
}

// IsParsedOption reports whether an option with name was recognized.
func (p *Parser) IsParsedOption(name string) bool {
	_, ok := p.GetParsedOption(name)
	return ok
}

// IsParsedArg reports whether token was classified as a positional argument.
func (p *Parser) IsParsedArg(token string) bool {
	for _, arg := range p.args {
		if arg == token {
			return true
		}
	}
	return false
}

// GetParsedOption returns the first recognized occurrence of name.
func (p *Parser) GetParsedOption(name string) (ParsedOption, bool) {
	for _, opt := range p.parsed {
		if opt.Name == name {
			return ParsedOption{Name: opt.Name, Args: append([]string{}, opt.Args...)}, true
		}
	}
	return ParsedOption{}, false
}

func cloneParsed(in []ParsedOption) []ParsedOption {
	out := make([]ParsedOption, len(in))
	for i, opt := range in {
		out[i] = ParsedOption{Name: opt.Name, Args: append([]string{}, opt.Args...)}
	}
	return out
}
