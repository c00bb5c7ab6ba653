package classifier

import (
	"errors"
	"reflect"
	"testing"
)

func TestRegistry_Add(t *testing.T) {
	r := NewRegistry()
	a := MustNewOption(OptionSpec{Name: "alpha", Shorthand: "a"})
	b := MustNewOption(OptionSpec{Name: "beta", Shorthand: "b"})

	if err := r.Add(a); err != nil {
		t.Fatalf("Add(alpha) error = %v", err)
	}
	if err := r.Add(b); err != nil {
		t.Fatalf("Add(beta) error = %v", err)
	}

	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
	if got := r.Names(); !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Errorf("Names() = %q, want [alpha beta]", got)
	}
	if got, ok := r.ByName("beta"); !ok || got.Shorthand() != "b" {
		t.Errorf("ByName(beta) = %+v, %v", got, ok)
	}
	if got, ok := r.ByShorthand("a"); !ok || got.Name() != "alpha" {
		t.Errorf("ByShorthand(a) = %+v, %v", got, ok)
	}
	if _, ok := r.ByName("a"); ok {
		t.Error("ByName(a) found a shorthand")
	}
	if _, ok := r.ByShorthand("alpha"); ok {
		t.Error("ByShorthand(alpha) found a name")
	}
}

func TestRegistry_Add_Collisions(t *testing.T) {
	tests := []struct {
		name      string
		second    OptionSpec
		wantField string
		wantValue string
	}{
		{"duplicate name", OptionSpec{Name: "alpha", Shorthand: "z"}, "name", "alpha"},
		{"duplicate shorthand", OptionSpec{Name: "other", Shorthand: "a"}, "shorthand", "a"},
		{"name equals existing shorthand", OptionSpec{Name: "a", Shorthand: "z"}, "name", "a"},
		{"shorthand equals existing name", OptionSpec{Name: "other", Shorthand: "x"}, "shorthand", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			if err := r.Add(MustNewOption(OptionSpec{Name: "alpha", Shorthand: "a"})); err != nil {
				t.Fatalf("Add(alpha) error = %v", err)
			}
			if err := r.Add(MustNewOption(OptionSpec{Name: "x", Shorthand: "q"})); err != nil {
				t.Fatalf("Add(x) error = %v", err)
			}

			err := r.Add(MustNewOption(tt.second))
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Add() error = %v, want *ConfigurationError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
			if cfgErr.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", cfgErr.Value, tt.wantValue)
			}
			if r.Len() != 2 {
				t.Errorf("Len() after failed Add = %d, want 2", r.Len())
			}
		})
	}
}

func TestRegistry_Add_ZeroOption(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(Option{}); err == nil {
		t.Error("Add(Option{}) error = nil, want error")
	}
}

func TestRegistry_IsRegistered(t *testing.T) {
	p := newTestParser(t)
	r := p.Registry()

	for _, token := range []string{"option-A", "A", "option-G", "G"} {
		if !r.IsRegistered(token) {
			t.Errorf("IsRegistered(%q) = false, want true", token)
		}
	}
	for _, token := range []string{"", "Z", "--option-A", "-A", "option-Z"} {
		if r.IsRegistered(token) {
			t.Errorf("IsRegistered(%q) = true, want false", token)
		}
	}
}

func TestRegistry_OptionsIsCopy(t *testing.T) {
	p := newTestParser(t)

	opts := p.Options()
	if len(opts) != len(referenceSpecs) {
		t.Fatalf("len(Options()) = %d, want %d", len(opts), len(referenceSpecs))
	}
	for i, opt := range opts {
		if opt.Spec() != referenceSpecs[i] {
			t.Errorf("Options()[%d] = %+v, want %+v", i, opt.Spec(), referenceSpecs[i])
		}
	}

	opts[0] = Option{}
	if p.Options()[0].Name() != "option-A" {
		t.Error("mutating Options() result changed the registry")
	}
}

func TestParser_MustAddOption_Panics(t *testing.T) {
	p := New()
	p.MustAddOption(MustNewOption(OptionSpec{Name: "alpha", Shorthand: "a"}))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustAddOption() did not panic on duplicate")
		}
		if _, ok := r.(*ConfigurationError); !ok {
			t.Errorf("panic value = %T, want *ConfigurationError", r)
		}
	}()
	p.MustAddOption(MustNewOption(OptionSpec{Name: "alpha", Shorthand: "b"}))
}
