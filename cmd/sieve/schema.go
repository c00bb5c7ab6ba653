package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sieve-hq/sieve/pkg/cli"
	"sieve-hq/sieve/pkg/config"
	"sieve-hq/sieve/pkg/report"
	"sieve-hq/sieve/pkg/schema"
)

var schemaCmdFlags struct {
	schema     schemaFlags
	lintFormat string
	noColor    bool
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect option schemas",
	Long: `Inspect option schema files.

Subcommands:
  lint  - Report invalid entries and name/shorthand collisions
  show  - Print the options as a table`,
}

var schemaLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate a schema file",
	Long: `Validate a schema file.

Reports every problem found:
  - Syntax errors and unknown keys
  - Invalid option fields (names, shorthands, argument bounds)
  - Names or shorthands that collide with an earlier option

Examples:
  # Lint the configured schema
  sieve schema lint

  # JSON output for CI
  sieve schema lint --schema cli.hcl --format json`,
	RunE: runSchemaLint,
}

var schemaShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the options of a schema",
	RunE:  runSchemaShow,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaLintCmd, schemaShowCmd)

	schemaCmdFlags.schema.register(schemaLintCmd)
	schemaLintCmd.Flags().StringVarP(&schemaCmdFlags.lintFormat, "format", "f", "text", "output format: text, json")

	schemaCmdFlags.schema.register(schemaShowCmd)
	schemaShowCmd.Flags().BoolVar(&schemaCmdFlags.noColor, "no-color", false, "disable styled output")
}

// LintResult is the outcome of linting one schema file.
type LintResult struct {
	File    string      `json:"file"`
	Valid   bool        `json:"valid"`
	Options int         `json:"options"`
	Errors  []LintError `json:"errors,omitempty"`
}

// LintError is one problem in a schema file.
type LintError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func runSchemaLint(cmd *cobra.Command, args []string) error {
	cfg := config.MustGetConfig()
	schemaCmdFlags.schema.apply(cfg)

	format, err := schema.ParseFormat(cfg.Schema.Format)
	if err != nil {
		return cli.NewConfigError("schema.format", err.Error())
	}

	result := lintSchema(cfg.Schema.Path, format)

	out := cmd.OutOrStdout()
	switch schemaCmdFlags.lintFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	case "text", "":
		outputLintText(out, result)
	default:
		return cli.NewConfigError("format", fmt.Sprintf("unknown lint format %q (must be text or json)", schemaCmdFlags.lintFormat))
	}

	if !result.Valid {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

func lintSchema(path string, format schema.Format) LintResult {
	result := LintResult{File: path, Valid: true}

	s, err := schema.Load(path, format)
	if err != nil {
		result.Valid = false

		var loadErr *schema.LoadError
		if errors.As(err, &loadErr) && loadErr.HasErrors() {
			for _, fe := range loadErr.Errs {
				result.Errors = append(result.Errors, LintError{Field: fe.Field, Message: fe.Message})
			}
		} else {
			result.Errors = append(result.Errors, LintError{Message: err.Error()})
		}
		return result
	}

	result.Options = len(s.Options)
	for _, conflict := range schema.Lint(s.Options) {
		result.Valid = false
		result.Errors = append(result.Errors, LintError{
			Field:   fmt.Sprintf("%s.%s", conflict.Option, conflict.Field),
			Message: conflict.Error(),
		})
	}
	return result
}

func outputLintText(w io.Writer, result LintResult) {
	if result.Valid {
		fmt.Fprintf(w, "✓ %s: valid (%d options)\n", result.File, result.Options)
		return
	}

	fmt.Fprintf(w, "✗ %s: %d error(s)\n", result.File, len(result.Errors))
	for _, e := range result.Errors {
		if e.Field != "" {
			fmt.Fprintf(w, "  - %s: %s\n", e.Field, e.Message)
			continue
		}
		fmt.Fprintf(w, "  - %s\n", e.Message)
	}
}

func runSchemaShow(cmd *cobra.Command, args []string) error {
	cfg := config.MustGetConfig()
	schemaCmdFlags.schema.apply(cfg)

	format, err := schema.ParseFormat(cfg.Schema.Format)
	if err != nil {
		return cli.NewConfigError("schema.format", err.Error())
	}

	s, err := schema.Load(cfg.Schema.Path, format)
	if err != nil {
		return err
	}

	color := cfg.Output.Color && !schemaCmdFlags.noColor
	return report.RenderSchema(cmd.OutOrStdout(), s.Options, report.NewStyles(color))
}
