package report

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"sieve-hq/sieve/pkg/classifier"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	p := classifier.New()
	p.MustAddOption(classifier.MustNewOption(classifier.OptionSpec{Name: "all", Shorthand: "a", Groupable: true}))
	p.MustAddOption(classifier.MustNewOption(classifier.OptionSpec{
		Name: "output", Shorthand: "o", AcceptsArgs: true, KeyValue: true, MinArgs: 1, MaxArgs: 2,
	}))

	tokens := []string{"-a", "-o", "out.txt", "", "src", "--bogus"}
	p.Exec(tokens)
	return New("run-1", "schema.yaml", tokens, p.Result())
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &TextFormatter{Styles: NewStyles(false)}
	if err := f.FormatTo(&buf, sampleReport(t)); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	want := "Errors:\n" +
		"\tunknown option \"--bogus\"\n" +
		"Options:\n" +
		"\tall\n" +
		"\toutput out.txt \"\"\n" +
		"Arguments:\n" +
		"\tsrc\n"
	if got := buf.String(); got != want {
		t.Errorf("FormatTo() =\n%q\nwant\n%q", got, want)
	}
}

func TestTextFormatter_EmptySections(t *testing.T) {
	var buf bytes.Buffer
	f := &TextFormatter{Styles: NewStyles(false)}
	rep := New("", "", nil, &classifier.Result{})
	if err := f.FormatTo(&buf, rep); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	want := "Errors:\n\t(none)\nOptions:\n\t(none)\nArguments:\n\t(none)\n"
	if got := buf.String(); got != want {
		t.Errorf("FormatTo() = %q, want %q", got, want)
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{Indent: true}
	if err := f.FormatTo(&buf, sampleReport(t)); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var decoded struct {
		RunID   string `json:"run_id"`
		Schema  string `json:"schema"`
		Args    []string
		Options []struct {
			Name string
			Args []string
		}
		Diagnostics []struct {
			Kind  string
			Token string
		}
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if decoded.RunID != "run-1" {
		t.Errorf("run_id = %q, want %q", decoded.RunID, "run-1")
	}
	if decoded.Schema != "schema.yaml" {
		t.Errorf("schema = %q, want %q", decoded.Schema, "schema.yaml")
	}
	if len(decoded.Options) != 2 || decoded.Options[1].Name != "output" {
		t.Errorf("options = %+v", decoded.Options)
	}
	if len(decoded.Diagnostics) != 1 || decoded.Diagnostics[0].Kind != string(classifier.KindUnknownOption) {
		t.Errorf("diagnostics = %+v", decoded.Diagnostics)
	}
	if !strings.Contains(buf.String(), "\n  \"") {
		t.Error("output is not indented")
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &YAMLFormatter{}
	if err := f.FormatTo(&buf, sampleReport(t)); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded["run_id"] != "run-1" {
		t.Errorf("run_id = %v, want run-1", decoded["run_id"])
	}
	args, ok := decoded["args"].([]any)
	if !ok || len(args) != 1 || args[0] != "src" {
		t.Errorf("args = %v, want [src]", decoded["args"])
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format  Format
		want    string
		wantErr bool
	}{
		{FormatText, "*report.TextFormatter", false},
		{"", "*report.TextFormatter", false},
		{FormatJSON, "*report.JSONFormatter", false},
		{FormatYAML, "*report.YAMLFormatter", false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		f, err := NewFormatter(tt.format, false)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewFormatter(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if got := typeName(f); got != tt.want {
			t.Errorf("NewFormatter(%q) = %s, want %s", tt.format, got, tt.want)
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TextFormatter:
		return "*report.TextFormatter"
	case *JSONFormatter:
		return "*report.JSONFormatter"
	case *YAMLFormatter:
		return "*report.YAMLFormatter"
	}
	return "unknown"
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "json": FormatJSON, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) error = nil, want error")
	}
}

func TestRenderSchema(t *testing.T) {
	opts := []classifier.Option{
		classifier.MustNewOption(classifier.OptionSpec{Name: "all", Shorthand: "a", Groupable: true}),
		classifier.MustNewOption(classifier.OptionSpec{Name: "output", Shorthand: "o", AcceptsArgs: true, KeyValue: true, MinArgs: 1, MaxArgs: 1}),
		classifier.MustNewOption(classifier.OptionSpec{Name: "tag", Shorthand: "t", AcceptsArgs: true, MaxArgs: 3}),
	}

	var buf bytes.Buffer
	if err := RenderSchema(&buf, opts, NewStyles(false)); err != nil {
		t.Fatalf("RenderSchema() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}

	want := [][]string{
		{"NAME", "SHORT", "ARGS", "KEY/VALUE", "GROUPABLE"},
		{"--all", "-a", "-", "no", "yes"},
		{"--output", "-o", "1", "yes", "no"},
		{"--tag", "-t", "0..3", "no", "no"},
	}
	for i, line := range lines {
		fields := strings.Fields(line)
		if strings.Join(fields, "|") != strings.Join(want[i], "|") {
			t.Errorf("line %d = %q, want fields %v", i, line, want[i])
		}
	}

	// Columns line up.
	header := fieldOffsets(lines[0])
	for i, line := range lines[1:] {
		if got := fieldOffsets(line); !reflect.DeepEqual(got, header) {
			t.Errorf("row %d column offsets = %v, want %v:\n%s", i+1, got, header, buf.String())
		}
	}
}

// fieldOffsets returns the byte offset at which each space-separated field
// of line starts.
func fieldOffsets(line string) []int {
	var offsets []int
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && (i == 0 || line[i-1] == ' ') {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

func TestRenderRuns(t *testing.T) {
	created := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	runs := []RunSummary{
		{ID: "run-2", CreatedAt: created, Schema: "schema.yaml", Tokens: []string{"-v"}, Errors: 0},
		{ID: "run-1", CreatedAt: created, Schema: "cli.toml", Tokens: []string{strings.Repeat("x", 50)}, Errors: 2},
	}

	var buf bytes.Buffer
	if err := RenderRuns(&buf, runs, NewStyles(false)); err != nil {
		t.Fatalf("RenderRuns() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}

	stamp := strings.Fields(created.Local().Format(time.DateTime))
	want := [][]string{
		{"ID", "CREATED", "SCHEMA", "TOKENS", "ERRORS"},
		append(append([]string{"run-2"}, stamp...), "schema.yaml", "-v", "0"),
		append(append([]string{"run-1"}, stamp...), "cli.toml", strings.Repeat("x", 37)+"...", "2"),
	}
	for i, line := range lines {
		if got := strings.Join(strings.Fields(line), "|"); got != strings.Join(want[i], "|") {
			t.Errorf("line %d = %q, want fields %v", i, line, want[i])
		}
	}
}
