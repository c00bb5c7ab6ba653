package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// TextFormatter writes the Errors, Options and Arguments sections, one
// tab-indented line per entry.
type TextFormatter struct {
	Styles Styles
}

// FormatTo writes r to w.
func (f *TextFormatter) FormatTo(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)
	s := f.Styles

	f.heading(bw, "Errors:")
	if len(r.Diagnostics) == 0 {
		f.none(bw)
	}
	for _, d := range r.Diagnostics {
		fmt.Fprintf(bw, "\t%s\n", s.Error.Render(d.String()))
	}

	f.heading(bw, "Options:")
	if len(r.Options) == 0 {
		f.none(bw)
	}
	for _, opt := range r.Options {
		line := s.Option.Render(opt.Name)
		if len(opt.Args) > 0 {
			line += " " + strings.Join(quoteEmpty(opt.Args), " ")
		}
		fmt.Fprintf(bw, "\t%s\n", line)
	}

	f.heading(bw, "Arguments:")
	if len(r.Args) == 0 {
		f.none(bw)
	}
	for _, arg := range quoteEmpty(r.Args) {
		fmt.Fprintf(bw, "\t%s\n", arg)
	}

	return bw.Flush()
}

func (f *TextFormatter) heading(w io.Writer, title string) {
	fmt.Fprintln(w, f.Styles.Heading.Render(title))
}

func (f *TextFormatter) none(w io.Writer) {
	fmt.Fprintf(w, "\t%s\n", f.Styles.Muted.Render("(none)"))
}

// quoteEmpty makes empty strings visible in text output.
func quoteEmpty(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if v == "" {
			v = `""`
		}
		out[i] = v
	}
	return out
}

// JSONFormatter writes reports as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes r to w as JSON.
func (f *JSONFormatter) FormatTo(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(r)
}

// YAMLFormatter writes reports as YAML.
type YAMLFormatter struct{}

// FormatTo writes r to w as YAML.
func (f *YAMLFormatter) FormatTo(w io.Writer, r *Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(r); err != nil {
		return err
	}
	return encoder.Close()
}
