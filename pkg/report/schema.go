package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sieve-hq/sieve/pkg/classifier"
)

var schemaColumns = []string{"NAME", "SHORT", "ARGS", "KEY/VALUE", "GROUPABLE"}

// RenderSchema writes opts as a table, one row per option in registration
// order.
func RenderSchema(w io.Writer, opts []classifier.Option, styles Styles) error {
	rows := make([][]string, 0, len(opts))
	for _, opt := range opts {
		rows = append(rows, []string{
			"--" + opt.Name(),
			"-" + opt.Shorthand(),
			argRange(opt),
			yesNo(opt.KeyValue()),
			yesNo(opt.Groupable()),
		})
	}

	return renderTable(w, schemaColumns, rows, styles)
}

// renderTable writes headers and rows as left-aligned columns separated by
// two spaces.
func renderTable(w io.Writer, headers []string, rows [][]string, styles Styles) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	if _, err := fmt.Fprintln(w, renderRow(headers, widths, styles.Heading)); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, renderRow(row, widths, styles.Cell)); err != nil {
			return err
		}
	}
	return nil
}

func renderRow(cells []string, widths []int, style lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			parts[i] = style.Render(cell)
			continue
		}
		parts[i] = style.Width(widths[i] + 2).Render(cell)
	}
	return strings.Join(parts, "")
}

func argRange(opt classifier.Option) string {
	if !opt.AcceptsArgs() {
		return "-"
	}
	if opt.MinArgs() == opt.MaxArgs() {
		return fmt.Sprintf("%d", opt.MinArgs())
	}
	return fmt.Sprintf("%d..%d", opt.MinArgs(), opt.MaxArgs())
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
