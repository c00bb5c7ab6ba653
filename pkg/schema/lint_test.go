package schema

import (
	"errors"
	"testing"

	"sieve-hq/sieve/pkg/classifier"
)

func TestLint(t *testing.T) {
	s, err := Load("testdata/collisions.yaml", FormatAuto)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	conflicts := Lint(s.Options)

	want := []struct {
		option, field, value, existing string
	}{
		{"version", "shorthand", "v", "verbose"},
		{"verbose", "name", "verbose", "verbose"},
		{"quiet", "shorthand", "q", "q"},
	}
	if len(conflicts) != len(want) {
		t.Fatalf("Lint() = %d conflicts, want %d: %v", len(conflicts), len(want), conflicts)
	}
	for i, w := range want {
		c := conflicts[i]
		if c.Option != w.option || c.Field != w.field || c.Value != w.value || c.Existing != w.existing {
			t.Errorf("conflict[%d] = %+v, want %+v", i, *c, w)
		}
	}
}

func TestLint_Clean(t *testing.T) {
	s, err := Load("testdata/reference.yaml", FormatAuto)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if conflicts := Lint(s.Options); conflicts != nil {
		t.Errorf("Lint() = %v, want nil", conflicts)
	}
}

func TestNewParser(t *testing.T) {
	s, err := Load("testdata/reference.hcl", FormatAuto)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	p, err := NewParser(s.Options, WithStrictKeyValue(true), WithSuggestions(false))
	if err != nil {
		t.Fatalf("NewParser() error = %v", err)
	}
	if len(p.Options()) != len(wantReference) {
		t.Fatalf("len(Options()) = %d, want %d", len(p.Options()), len(wantReference))
	}

	p.Exec([]string{"--option-B=x", "--option-Q"})
	diags := p.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("len(Diagnostics()) = %d, want 2", len(diags))
	}
	if diags[0].Kind != classifier.KindNotKeyValueOption {
		t.Errorf("diags[0].Kind = %q, want %q (strict mode)", diags[0].Kind, classifier.KindNotKeyValueOption)
	}
	if diags[1].Suggestion != "" {
		t.Errorf("diags[1].Suggestion = %q, want empty (suggestions off)", diags[1].Suggestion)
	}
}

func TestNewParser_Collision(t *testing.T) {
	s, err := Load("testdata/collisions.yaml", FormatAuto)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	_, err = NewParser(s.Options)
	var cfgErr *classifier.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("NewParser() error = %v, want *classifier.ConfigurationError", err)
	}
	if cfgErr.Option != "version" {
		t.Errorf("Option = %q, want first conflict %q", cfgErr.Option, "version")
	}
}
