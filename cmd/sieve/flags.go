package main

import (
	"github.com/spf13/cobra"

	"sieve-hq/sieve/pkg/config"
	"sieve-hq/sieve/pkg/report"
)

// schemaFlags are shared by every command that loads a schema.
type schemaFlags struct {
	path   string
	format string
}

func (f *schemaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "schema", "s", "", "schema file (default: schema.path from config)")
	cmd.Flags().StringVar(&f.format, "schema-format", "", "schema format: auto, yaml, toml, hcl")
}

func (f *schemaFlags) apply(cfg *config.Config) {
	if f.path != "" {
		cfg.Schema.Path = f.path
	}
	if f.format != "" {
		cfg.Schema.Format = f.format
	}
}

// outputFlags are shared by every command that renders reports.
type outputFlags struct {
	format  string
	noColor bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: text, json, yaml (default: output.format from config)")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "disable styled text output")
}

func (f *outputFlags) apply(cfg *config.Config) {
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.noColor {
		cfg.Output.Color = false
	}
}

func newFormatter(cfg *config.Config) (report.Formatter, error) {
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return report.NewFormatter(format, cfg.Output.Color)
}
