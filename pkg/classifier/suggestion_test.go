package classifier

import "testing"

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"output", "outptu", 2},
		{"verbose", "verbose", 0},
		{"λx", "λy", 1},
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSuggestName(t *testing.T) {
	names := []string{"output", "verbose", "version"}

	tests := []struct {
		unknown string
		want    string
	}{
		{"outpt", `Did you mean "--output"?`},
		{"verbos", `Did you mean "--verbose"?`},
		{"versoin", `Did you mean "--version"?`},
		{"xyzzy-plugh", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := suggestName(tt.unknown, names); got != tt.want {
			t.Errorf("suggestName(%q) = %q, want %q", tt.unknown, got, tt.want)
		}
	}

	if got := suggestName("anything", nil); got != "" {
		t.Errorf("suggestName with no names = %q, want empty", got)
	}
}
