// Package report renders classification results and option schemas for the
// sieve command line.
//
// A Report wraps a classifier.Result with the run metadata the CLI knows
// about (run ID, schema path, input tokens). Formatters write it as
// sectioned text, indented JSON or YAML:
//
//	f, err := report.NewFormatter(report.FormatText, true)
//	if err != nil {
//	    return err
//	}
//	return f.FormatTo(os.Stdout, rep)
//
// The text formatter styles headings with lipgloss when color is enabled.
// With color disabled its output is plain and stable, which is what tests
// and pipes rely on.
package report
