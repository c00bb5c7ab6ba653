package main

import (
	"github.com/spf13/cobra"

	"sieve-hq/sieve/pkg/cli"
	"sieve-hq/sieve/pkg/config"
	"sieve-hq/sieve/pkg/telemetry/tracing"
)

var classifyFlags struct {
	schema         schemaFlags
	output         outputFlags
	strictKeyValue bool
	noSuggestions  bool
	failOnError    bool
	noHistory      bool
}

var classifyCmd = &cobra.Command{
	Use:   "classify [flags] -- TOKENS...",
	Short: "Classify tokens against a schema",
	Long: `Classify command-line tokens against an option schema.

Every token ends up as a positional argument, as (part of) a parsed option,
or in a diagnostic. Classification never stops early: all problems in the
input are reported together.

Place the tokens after "--" so that sieve does not parse them as its own
flags.

Examples:
  # Classify against the configured schema
  sieve classify -- -v --output out.txt src/

  # Explicit schema, JSON report
  sieve classify --schema cli.toml --format json -- -abc --name=value

  # Exit with status 1 when diagnostics are produced
  sieve classify --fail-on-error -- --bogus

  # Do not record this run in history
  sieve classify --no-history -- -v`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyFlags.schema.register(classifyCmd)
	classifyFlags.output.register(classifyCmd)
	classifyCmd.Flags().BoolVar(&classifyFlags.strictKeyValue, "strict-key-value", false, "reject --name=value for options not declared key_value")
	classifyCmd.Flags().BoolVar(&classifyFlags.noSuggestions, "no-suggestions", false, "omit \"did you mean\" hints")
	classifyCmd.Flags().BoolVar(&classifyFlags.failOnError, "fail-on-error", false, "exit with status 1 when diagnostics are produced")
	classifyCmd.Flags().BoolVar(&classifyFlags.noHistory, "no-history", false, "do not record this run")
}

func runClassify(cmd *cobra.Command, tokens []string) error {
	cfg := config.MustGetConfig()
	classifyFlags.schema.apply(cfg)
	classifyFlags.output.apply(cfg)
	if cmd.Flags().Changed("strict-key-value") {
		cfg.Parser.StrictKeyValue = classifyFlags.strictKeyValue
	}
	if classifyFlags.noSuggestions {
		cfg.Parser.Suggestions = false
	}

	formatter, err := newFormatter(cfg)
	if err != nil {
		return cli.NewConfigError("output.format", err.Error())
	}

	p, err := newPipeline(cfg, cfg.History.Enabled && !classifyFlags.noHistory)
	if err != nil {
		return err
	}
	defer p.Close()

	// A parent process may pass its trace context through TRACEPARENT.
	ctx := tracing.ExtractFromEnv(cmd.Context())

	s, err := p.loadSchema(ctx)
	if err != nil {
		return err
	}
	parser, err := p.newParser(s)
	if err != nil {
		return err
	}

	rep := p.classify(ctx, parser, s.Path, tokens)
	if err := formatter.FormatTo(cmd.OutOrStdout(), rep); err != nil {
		return err
	}

	if classifyFlags.failOnError && rep.HasErrors() {
		return cli.NewExitError(1, "classification produced %d error(s)", len(rep.Diagnostics))
	}
	return nil
}
