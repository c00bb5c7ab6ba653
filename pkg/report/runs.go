package report

import (
	"io"
	"strconv"
	"strings"
	"time"
)

var runColumns = []string{"ID", "CREATED", "SCHEMA", "TOKENS", "ERRORS"}

// RunSummary is one line of a run listing.
type RunSummary struct {
	ID        string
	CreatedAt time.Time
	Schema    string
	Tokens    []string
	Errors    int
}

// RenderRuns writes runs as a table, in the order given. Tokens are joined
// with spaces and cut to maxTokenWidth runes.
func RenderRuns(w io.Writer, runs []RunSummary, styles Styles) error {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.CreatedAt.Local().Format(time.DateTime),
			run.Schema,
			truncate(strings.Join(run.Tokens, " "), maxTokenWidth),
			strconv.Itoa(run.Errors),
		})
	}
	return renderTable(w, runColumns, rows, styles)
}

const maxTokenWidth = 40

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
