package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"sieve-hq/sieve/pkg/cli"
	"sieve-hq/sieve/pkg/config"
	"sieve-hq/sieve/pkg/history"
	"sieve-hq/sieve/pkg/history/retention"
	"sieve-hq/sieve/pkg/report"
	"sieve-hq/sieve/pkg/telemetry/metrics"
)

var historyFlags struct {
	output        outputFlags
	limit         int
	since         string
	errorsOnly    bool
	retentionDays int
	maxRecords    int64
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded classification runs",
	Long: `Inspect and prune the run history database.

Every "sieve classify" and "sieve watch" run is recorded unless history is
disabled (history.enabled: false) or --no-history is given.

Subcommands:
  list   - List recent runs
  show   - Print the report of one run
  prune  - Apply the retention policy now`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Long: `List recorded runs, newest first.

Examples:
  # Last 20 runs
  sieve history list

  # Runs with diagnostics since a point in time
  sieve history list --errors-only --since 2026-10-01T00:00:00Z

  # Machine-readable
  sieve history list --format json --limit 100`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print the report of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs outside the retention policy",
	Long: `Delete runs older than the retention period, then the oldest runs beyond
the record limit. Flags override history.retention_days and
history.max_records; 0 disables that rule.`,
	Args: cobra.NoArgs,
	RunE: runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyPruneCmd)

	historyFlags.output.register(historyListCmd)
	historyListCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "maximum number of runs (0 = all)")
	historyListCmd.Flags().StringVar(&historyFlags.since, "since", "", "only runs created at or after this RFC3339 time")
	historyListCmd.Flags().BoolVar(&historyFlags.errorsOnly, "errors-only", false, "only runs with diagnostics")

	historyFlags.output.register(historyShowCmd)

	historyPruneCmd.Flags().IntVar(&historyFlags.retentionDays, "retention-days", 0, "delete runs older than this many days")
	historyPruneCmd.Flags().Int64Var(&historyFlags.maxRecords, "max-records", 0, "keep at most this many runs")
}

func openHistory(cfg *config.Config) (history.Store, error) {
	if !cfg.History.Enabled {
		commandLogger().Warn("run history is disabled (history.enabled: false)")
	}
	store, err := history.OpenFromConfig(&cfg.History)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	return store, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg := config.MustGetConfig()
	historyFlags.output.apply(cfg)

	query := history.Query{
		Limit:      historyFlags.limit,
		ErrorsOnly: historyFlags.errorsOnly,
	}
	if historyFlags.since != "" {
		since, err := time.Parse(time.RFC3339, historyFlags.since)
		if err != nil {
			return cli.NewConfigError("since", fmt.Sprintf("invalid RFC3339 time %q", historyFlags.since))
		}
		query.Since = since
	}

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return cli.NewConfigError("output.format", err.Error())
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(cmd.Context(), query)
	if err != nil {
		return err
	}

	return writeRecords(cmd.OutOrStdout(), records, format, cfg.Output.Color)
}

func writeRecords(w io.Writer, records []*history.Record, format report.Format, color bool) error {
	switch format {
	case report.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case report.FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(records)
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	runs := make([]report.RunSummary, len(records))
	for i, rec := range records {
		runs[i] = report.RunSummary{
			ID:        rec.ID,
			CreatedAt: rec.CreatedAt,
			Schema:    rec.SchemaPath,
			Tokens:    rec.Tokens,
			Errors:    len(rec.Diagnostics),
		}
	}
	return report.RenderRuns(w, runs, report.NewStyles(color))
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	cfg := config.MustGetConfig()
	historyFlags.output.apply(cfg)

	formatter, err := newFormatter(cfg)
	if err != nil {
		return cli.NewConfigError("output.format", err.Error())
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(cmd.Context(), args[0])
	if errors.Is(err, history.ErrNotFound) {
		return fmt.Errorf("run %q: %w", args[0], err)
	}
	if err != nil {
		return err
	}

	rep := report.New(rec.ID, rec.SchemaPath, rec.Tokens, rec.Result())
	rep.CreatedAt = rec.CreatedAt
	return formatter.FormatTo(cmd.OutOrStdout(), rep)
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	cfg := config.MustGetConfig()

	retentionCfg := retention.FromConfig(&cfg.History)
	if cmd.Flags().Changed("retention-days") {
		retentionCfg.RetentionDays = historyFlags.retentionDays
	}
	if cmd.Flags().Changed("max-records") {
		retentionCfg.MaxRecords = historyFlags.maxRecords
	}
	if retentionCfg.RetentionDays < 0 || retentionCfg.RetentionDays > config.MaxHistoryRetentionDays {
		return cli.NewConfigError("retention-days",
			fmt.Sprintf("must be between 0 and %d", config.MaxHistoryRetentionDays))
	}
	if retentionCfg.MaxRecords < 0 {
		return cli.NewConfigError("max-records", "must be >= 0")
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
	pruner := retention.NewPruner(store, retentionCfg, retention.WithObserver(collector.RecordHistoryPrune))

	stats, err := pruner.Prune(cmd.Context())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d run(s): %d by age, %d by count\n",
		stats.Total(), stats.ByAge, stats.ByCount)
	return err
}
