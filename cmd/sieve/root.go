package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"sieve-hq/sieve/pkg/cli"
	"sieve-hq/sieve/pkg/config"
	"sieve-hq/sieve/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// appLogger is set up from configuration before any subcommand runs.
	appLogger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sieve",
	Short: "Sieve - command-line token classifier",
	Long: `Sieve classifies command-line tokens against an option schema.

Tokens are split into:
  - Positional arguments
  - Parsed options with their captured values
  - Diagnostics for anything that could not be resolved

Malformed input is reported, never fatal. Schemas are YAML, TOML or HCL
files listing the recognized options.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRuntime,
}

// Execute runs the root command and prints any error to stderr. The
// returned error decides the exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func printError(w io.Writer, err error) {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) && exitErr.Message == "" {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultConfigPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// setupRuntime loads configuration and installs the logger. A missing
// default config file is not an error; a missing explicit one is.
func setupRuntime(cmd *cobra.Command, args []string) error {
	path := config.ResolvePath(cfgFile, cmd.Flags().Changed("config"))
	if err := config.ReloadConfig(path); err != nil {
		return cli.NewConfigError(displayPath(path), err.Error())
	}
	cfg := config.GetConfig()

	logCfg := cfg.Telemetry.Logging
	if verbose {
		logCfg.Level = "debug"
	}

	logger, err := logging.New(logging.FromConfig(logCfg, cmd.ErrOrStderr()))
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	appLogger = logger
	slog.SetDefault(logger.Slog())

	logger.Debug("configuration loaded", "path", displayPath(path), "command", cmd.CommandPath())
	return nil
}

func displayPath(path string) string {
	if path == "" {
		return "(defaults)"
	}
	return path
}
