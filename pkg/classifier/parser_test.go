package classifier

import (
	"reflect"
	"strings"
	"testing"
)

// referenceSpecs is the schema shared by most tests: A..G with a mix of
// argument, key/value and grouping behaviour.
var referenceSpecs = []OptionSpec{
	{Name: "option-A", Shorthand: "A"},
	{Name: "option-B", Shorthand: "B", AcceptsArgs: true, MinArgs: 1, MaxArgs: 1},
	{Name: "option-C", Shorthand: "C", AcceptsArgs: true, KeyValue: true, MinArgs: 1, MaxArgs: 1},
	{Name: "option-D", Shorthand: "D", Groupable: true},
	{Name: "option-E", Shorthand: "E", Groupable: true},
	{Name: "option-F", Shorthand: "F"},
	{Name: "option-G", Shorthand: "G", AcceptsArgs: true, MinArgs: 1, MaxArgs: 3},
}

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p := New()
	for _, spec := range referenceSpecs {
		opt, err := NewOption(spec)
		if err != nil {
			t.Fatalf("NewOption(%s) failed: %v", spec.Name, err)
		}
		if err := p.AddOption(opt); err != nil {
			t.Fatalf("AddOption(%s) failed: %v", spec.Name, err)
		}
	}
	return p
}

func optionNames(opts []ParsedOption) []string {
	names := make([]string, len(opts))
	for i, opt := range opts {
		names[i] = opt.Name
	}
	return names
}

func diagnosticKinds(diags []Diagnostic) []Kind {
	kinds := make([]Kind, len(diags))
	for i, d := range diags {
		kinds[i] = d.Kind
	}
	return kinds
}

func TestParser_Exec_Table(t *testing.T) {
	tests := []struct {
		name        string
		tokens      []string
		wantArgs    []string
		wantOptions []ParsedOption
		wantKinds   []Kind
	}{
		{
			name:        "empty input",
			tokens:      []string{},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{},
		},
		{
			name:        "arguments only",
			tokens:      []string{"arg1", "arg2", "arg3"},
			wantArgs:    []string{"arg1", "arg2", "arg3"},
			wantOptions: []ParsedOption{},
		},
		{
			name:        "verbose option without args",
			tokens:      []string{"--option-A"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{{Name: "option-A", Args: []string{}}},
		},
		{
			name:        "shorthand option without args",
			tokens:      []string{"-A"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{{Name: "option-A", Args: []string{}}},
		},
		{
			name:        "verbose option with argument",
			tokens:      []string{"--option-B", "arg1"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{{Name: "option-B", Args: []string{"arg1"}}},
		},
		{
			name:        "shorthand option with argument",
			tokens:      []string{"-B", "arg1"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{{Name: "option-B", Args: []string{"arg1"}}},
		},
		{
			name:        "max args reached leaves the rest positional",
			tokens:      []string{"-B", "arg1", "arg2"},
			wantArgs:    []string{"arg2"},
			wantOptions: []ParsedOption{{Name: "option-B", Args: []string{"arg1"}}},
		},
		{
			name:        "collection stops at next option",
			tokens:      []string{"-G", "g1", "g2", "-A", "tail"},
			wantArgs:    []string{"tail"},
			wantOptions: []ParsedOption{{Name: "option-G", Args: []string{"g1", "g2"}}, {Name: "option-A", Args: []string{}}},
		},
		{
			name:        "collection stops at maximum",
			tokens:      []string{"-G", "g1", "g2", "g3", "g4"},
			wantArgs:    []string{"g4"},
			wantOptions: []ParsedOption{{Name: "option-G", Args: []string{"g1", "g2", "g3"}}},
		},
		{
			name:        "insufficient arguments verbose",
			tokens:      []string{"--option-B"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{},
			wantKinds:   []Kind{KindInsufficientArguments},
		},
		{
			name:        "insufficient arguments shorthand",
			tokens:      []string{"-B"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{},
			wantKinds:   []Kind{KindInsufficientArguments},
		},
		{
			name:        "insufficient arguments before next option",
			tokens:      []string{"-B", "-A"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{{Name: "option-A", Args: []string{}}},
			wantKinds:   []Kind{KindInsufficientArguments},
		},
		{
			name:        "key value option",
			tokens:      []string{"--option-C=arg"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{{Name: "option-C", Args: []string{"arg"}}},
		},
		{
			name:        "key value with empty value",
			tokens:      []string{"--option-C="},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{{Name: "option-C", Args: []string{""}}},
		},
		{
			name:        "key value never consumes trailing tokens",
			tokens:      []string{"--option-G=x", "y"},
			wantArgs:    []string{"y"},
			wantOptions: []ParsedOption{{Name: "option-G", Args: []string{"x"}}},
		},
		{
			name:        "malformed key value",
			tokens:      []string{"--option-C=a=b", "z"},
			wantArgs:    []string{"z"},
			wantOptions: []ParsedOption{},
			wantKinds:   []Kind{KindMalformedKeyValue},
		},
		{
			name:        "unknown key value",
			tokens:      []string{"--nope=1"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{},
			wantKinds:   []Kind{KindUnknownOption},
		},
		{
			name:        "unknown verbose",
			tokens:      []string{"--nope", "x"},
			wantArgs:    []string{"x"},
			wantOptions: []ParsedOption{},
			wantKinds:   []Kind{KindUnknownOption},
		},
		{
			name:        "verbose form of a shorthand is unknown",
			tokens:      []string{"--A"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{},
			wantKinds:   []Kind{KindUnknownOption},
		},
		{
			name:        "unknown shorthand",
			tokens:      []string{"-Z"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{},
			wantKinds:   []Kind{KindUnknownOption},
		},
		{
			name:        "hyphens only",
			tokens:      []string{"-", "--", "---"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{},
			wantKinds:   []Kind{KindEmptyOptionToken, KindEmptyOptionToken, KindEmptyOptionToken},
		},
		{
			name:        "groupable cluster",
			tokens:      []string{"-ED"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{{Name: "option-E", Args: []string{}}, {Name: "option-D", Args: []string{}}},
		},
		{
			name:        "non groupable cluster",
			tokens:      []string{"-AF"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{},
			wantKinds:   []Kind{KindNonGroupableOption, KindNonGroupableOption},
		},
		{
			name:        "cluster with unknown and non groupable members",
			tokens:      []string{"-DZAE"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{{Name: "option-D", Args: []string{}}, {Name: "option-E", Args: []string{}}},
			wantKinds:   []Kind{KindUnknownOption, KindNonGroupableOption},
		},
		{
			name:        "multi option cluster never takes arguments",
			tokens:      []string{"-DE", "value"},
			wantArgs:    []string{"value"},
			wantOptions: []ParsedOption{{Name: "option-D", Args: []string{}}, {Name: "option-E", Args: []string{}}},
		},
		{
			name:        "single groupable survivor of a cluster",
			tokens:      []string{"-DZ"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{{Name: "option-D", Args: []string{}}},
			wantKinds:   []Kind{KindUnknownOption},
		},
		{
			name:        "repeated options are kept",
			tokens:      []string{"-A", "--option-A"},
			wantArgs:    []string{},
			wantOptions: []ParsedOption{{Name: "option-A", Args: []string{}}, {Name: "option-A", Args: []string{}}},
		},
		{
			name:        "empty string token is positional",
			tokens:      []string{""},
			wantArgs:    []string{""},
			wantOptions: []ParsedOption{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(t)
			p.Exec(tt.tokens)

			if got := p.ParsedArgs(); !reflect.DeepEqual(got, tt.wantArgs) {
				t.Errorf("ParsedArgs() = %q, want %q", got, tt.wantArgs)
			}
			if got := p.ParsedOptions(); !reflect.DeepEqual(got, tt.wantOptions) {
				t.Errorf("ParsedOptions() = %+v, want %+v", got, tt.wantOptions)
			}
			gotKinds := diagnosticKinds(p.Diagnostics())
			if len(gotKinds) != len(tt.wantKinds) {
				t.Fatalf("diagnostic kinds = %v, want %v", gotKinds, tt.wantKinds)
			}
			for i := range gotKinds {
				if gotKinds[i] != tt.wantKinds[i] {
					t.Errorf("diagnostic[%d].Kind = %q, want %q", i, gotKinds[i], tt.wantKinds[i])
				}
			}
			if len(p.Errors()) != len(tt.wantKinds) {
				t.Errorf("len(Errors()) = %d, want %d", len(p.Errors()), len(tt.wantKinds))
			}
		})
	}
}

func TestParser_Exec_Composite(t *testing.T) {
	p := newTestParser(t)
	p.Exec([]string{
		"-ED",
		"--option-B", "option-B-arg",
		"--option-C=arg",
		"program-arg-1", "program-arg-2",
		"-G", "option-G-arg-1",
		"-A",
		"-F",
	})

	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("Errors() = %q, want none", errs)
	}

	wantArgs := []string{"program-arg-1", "program-arg-2"}
	if got := p.ParsedArgs(); !reflect.DeepEqual(got, wantArgs) {
		t.Errorf("ParsedArgs() = %q, want %q", got, wantArgs)
	}

	wantNames := []string{"option-E", "option-D", "option-B", "option-C", "option-G", "option-A", "option-F"}
	if got := optionNames(p.ParsedOptions()); !reflect.DeepEqual(got, wantNames) {
		t.Errorf("parsed option names = %q, want %q", got, wantNames)
	}

	g, ok := p.GetParsedOption("option-G")
	if !ok {
		t.Fatal("GetParsedOption(option-G) not found")
	}
	if !reflect.DeepEqual(g.Args, []string{"option-G-arg-1"}) {
		t.Errorf("option-G args = %q, want %q", g.Args, []string{"option-G-arg-1"})
	}
}

func TestParser_Exec_ResetsBetweenCalls(t *testing.T) {
	p := newTestParser(t)

	p.Exec([]string{"-A", "x", "--nope"})
	if len(p.ParsedArgs()) != 1 || len(p.ParsedOptions()) != 1 || len(p.Errors()) != 1 {
		t.Fatalf("first Exec: args=%d options=%d errors=%d, want 1/1/1",
			len(p.ParsedArgs()), len(p.ParsedOptions()), len(p.Errors()))
	}

	p.Exec(nil)
	if len(p.ParsedArgs()) != 0 {
		t.Errorf("ParsedArgs() after reset = %q, want empty", p.ParsedArgs())
	}
	if len(p.ParsedOptions()) != 0 {
		t.Errorf("ParsedOptions() after reset = %+v, want empty", p.ParsedOptions())
	}
	if len(p.Errors()) != 0 {
		t.Errorf("Errors() after reset = %q, want empty", p.Errors())
	}
}

func TestParser_Exec_BeforeFirstCall(t *testing.T) {
	p := New()
	if p.ParsedArgs() == nil || len(p.ParsedArgs()) != 0 {
		t.Errorf("ParsedArgs() = %v, want empty non-nil slice", p.ParsedArgs())
	}
	if len(p.ParsedOptions()) != 0 {
		t.Errorf("ParsedOptions() = %v, want empty", p.ParsedOptions())
	}
	if len(p.Errors()) != 0 {
		t.Errorf("Errors() = %v, want empty", p.Errors())
	}
	if len(p.Options()) != 0 {
		t.Errorf("Options() = %v, want empty", p.Options())
	}
}

// Every token ends up as a positional argument, an option token, an option
// argument, or a diagnosed token; the counts must add up.
func TestParser_Exec_AccountsForEveryToken(t *testing.T) {
	inputs := [][]string{
		{"-ED", "--option-B", "b", "--option-C=c", "p1", "-G", "g1", "g2", "-A", "-F"},
		{"-B", "-G", "x", "y", "z", "w", "--", "-AF", "tail"},
		{"--option-C=a=b", "-Z", "--nope", "-DZ", "q"},
	}

	for _, tokens := range inputs {
		t.Run(strings.Join(tokens, " "), func(t *testing.T) {
			p := newTestParser(t)
			p.Exec(tokens)

			positional := len(p.ParsedArgs())
			consumedArgs := 0
			for _, opt := range p.ParsedOptions() {
				consumedArgs += len(opt.Args)
			}

			// Count option tokens directly from the input for the invariant.
			optionTokens := 0
			for _, tok := range tokens {
				if strings.HasPrefix(tok, "-") {
					optionTokens++
				}
			}

			// Key/value values live inside their option token. No option in
			// the reference schema has MinArgs > 1, so nothing is discarded.
			inline := 0
			for _, tok := range tokens {
				if strings.HasPrefix(tok, "--") && strings.Count(tok, "=") == 1 {
					inline++
				}
			}

			if got := positional + optionTokens + consumedArgs - inline; got != len(tokens) {
				t.Errorf("positional(%d) + option tokens(%d) + args(%d) - inline(%d) = %d, want %d",
					positional, optionTokens, consumedArgs, inline, got, len(tokens))
			}
		})
	}
}

func TestParser_StrictKeyValue(t *testing.T) {
	p := newTestParser(t).WithStrictKeyValue(true)

	p.Exec([]string{"--option-C=ok", "--option-B=nope"})

	if got := optionNames(p.ParsedOptions()); !reflect.DeepEqual(got, []string{"option-C"}) {
		t.Errorf("parsed option names = %q, want [option-C]", got)
	}
	diags := p.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("len(Diagnostics()) = %d, want 1", len(diags))
	}
	if diags[0].Kind != KindNotKeyValueOption {
		t.Errorf("Kind = %q, want %q", diags[0].Kind, KindNotKeyValueOption)
	}
	if diags[0].Token != "--option-B=nope" {
		t.Errorf("Token = %q, want %q", diags[0].Token, "--option-B=nope")
	}
}

func TestParser_Suggestions(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		p := newTestParser(t)
		p.Exec([]string{"--option-Q"})

		diags := p.Diagnostics()
		if len(diags) != 1 {
			t.Fatalf("len(Diagnostics()) = %d, want 1", len(diags))
		}
		if diags[0].Suggestion == "" {
			t.Fatal("expected a suggestion for a near-miss name")
		}
		if !strings.Contains(p.Errors()[0], diags[0].Suggestion) {
			t.Errorf("Errors()[0] = %q, want it to include %q", p.Errors()[0], diags[0].Suggestion)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		p := newTestParser(t).WithSuggestions(false)
		p.Exec([]string{"--option-Q"})

		if s := p.Diagnostics()[0].Suggestion; s != "" {
			t.Errorf("Suggestion = %q, want empty", s)
		}
	})

	t.Run("nothing close", func(t *testing.T) {
		p := newTestParser(t)
		p.Exec([]string{"--completely-unrelated"})

		if s := p.Diagnostics()[0].Suggestion; s != "" {
			t.Errorf("Suggestion = %q, want empty", s)
		}
	})
}

func TestParser_DiagnosticMessages(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"--", `empty option "--"`},
		{"--option-C=a=b", `malformed key/value option "--option-C=a=b"`},
		{"-Z", `unknown option "-Z"`},
		{"--zzzzzzzzzz", `unknown option "--zzzzzzzzzz"`},
		{"--=x", `unknown option "--" in "--=x"`},
		{"--zz=x", `unknown option "--zz" in "--zz=x"`},
		{"-DZ", `unknown option "-Z" in "-DZ"`},
		{"-D-", `unknown option "--" in "-D-"`},
		{"-D\xff", `unknown option "-�" in "-D\xff"`},
		{"-AD", `option "-A" (option-A) cannot be grouped in "-AD"`},
		{"-B", `option "option-B" requires at least 1 argument(s), got 0`},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			p := newTestParser(t)
			p.Exec([]string{tt.token})

			errs := p.Errors()
			if len(errs) == 0 {
				t.Fatal("expected at least one error")
			}
			if !strings.Contains(errs[0], tt.want) {
				t.Errorf("Errors()[0] = %q, want it to contain %q", errs[0], tt.want)
			}
		})
	}
}

func TestParser_UnicodeShorthands(t *testing.T) {
	p := New()
	p.MustAddOption(MustNewOption(OptionSpec{Name: "lambda", Shorthand: "λ", Groupable: true}))
	p.MustAddOption(MustNewOption(OptionSpec{Name: "mu", Shorthand: "μ", Groupable: true}))

	p.Exec([]string{"-λμ", "-λ"})

	want := []string{"lambda", "mu", "lambda"}
	if got := optionNames(p.ParsedOptions()); !reflect.DeepEqual(got, want) {
		t.Errorf("parsed option names = %q, want %q", got, want)
	}
	if len(p.Errors()) != 0 {
		t.Errorf("Errors() = %q, want none", p.Errors())
	}
}
