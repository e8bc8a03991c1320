package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"halcyon-eda/signoff/pkg/cli"
	"halcyon-eda/signoff/pkg/config"
	"halcyon-eda/signoff/pkg/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and prune the run-history database",
}

var historyListFlags struct {
	runID  string
	check  string
	failed bool
	since  string
	limit  int
	format string
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored run records",
	Long: `List run records from the history database, newest first.

Examples:
  # Most recent records
  signoff history list

  # Only failing checks from the last day
  signoff history list --failed --since 24h

  # All records for one run
  signoff history list --run-id 5e6b...`,
	RunE: listHistory,
}

var historyPruneFlags struct {
	days       int
	maxRecords int64
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Prune old run records once",
	Long: `Apply the retention policy to the history database immediately.

Without flags the retention settings from the configuration file apply;
--days and --max-records override them for this invocation.`,
	RunE: pruneHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyListCmd.Flags().StringVar(&historyListFlags.runID, "run-id", "", "filter by run identifier")
	historyListCmd.Flags().StringVar(&historyListFlags.check, "check", "", "filter by check name")
	historyListCmd.Flags().BoolVar(&historyListFlags.failed, "failed", false, "only failing or errored checks")
	historyListCmd.Flags().StringVar(&historyListFlags.since, "since", "", "only records newer than this duration (e.g. 24h)")
	historyListCmd.Flags().IntVar(&historyListFlags.limit, "limit", 50, "maximum number of records")
	historyListCmd.Flags().StringVar(&historyListFlags.format, "format", "text", "output format: text, json")

	historyPruneCmd.Flags().IntVar(&historyPruneFlags.days, "days", 0, "override retention days")
	historyPruneCmd.Flags().Int64Var(&historyPruneFlags.maxRecords, "max-records", 0, "override max record count")
}

// openHistory opens the configured history store.
func openHistory(cfg *config.Config) (*history.SQLiteStorage, error) {
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("run history is not enabled in %s", cfgFile)
	}
	return history.NewSQLiteStorage(&history.SQLiteConfig{
		Path:         cfg.History.SQLite.Path,
		MaxOpenConns: cfg.History.SQLite.MaxOpenConns,
		MaxIdleConns: cfg.History.SQLite.MaxIdleConns,
		WALMode:      cfg.History.SQLite.WALMode,
		BusyTimeout:  cfg.History.SQLite.BusyTimeout,
	})
}

func listHistory(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(historyListFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	query := &history.Query{
		RunID:      historyListFlags.runID,
		Check:      historyListFlags.check,
		OnlyFailed: historyListFlags.failed,
		Limit:      historyListFlags.limit,
	}
	if historyListFlags.since != "" {
		d, err := time.ParseDuration(historyListFlags.since)
		if err != nil {
			return fmt.Errorf("invalid --since duration: %w", err)
		}
		since := time.Now().Add(-d)
		query.Since = &since
	}

	records, err := store.Query(context.Background(), query)
	if err != nil {
		return cli.NewCommandError("history list", err)
	}

	if format == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, records)
	}

	if len(records) == 0 {
		fmt.Println("no records found")
		return nil
	}
	for _, rec := range records {
		verdict := "PASS"
		switch {
		case rec.Error != "":
			verdict = "ERROR"
		case !rec.Pass:
			verdict = "FAIL"
		}
		fmt.Printf("%s  %-8s  %-30s  mode=%d  value=%-6s  run=%s\n",
			rec.CreatedAt.Format(time.RFC3339), verdict, rec.Check, rec.Mode, rec.Value, rec.RunID)
	}
	return nil
}

func pruneHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	retention := &history.RetentionConfig{
		RetentionDays: cfg.History.Retention.Days,
		MaxRecords:    cfg.History.Retention.MaxRecords,
	}
	if historyPruneFlags.days > 0 {
		retention.RetentionDays = historyPruneFlags.days
	}
	if historyPruneFlags.maxRecords > 0 {
		retention.MaxRecords = historyPruneFlags.maxRecords
	}

	deleted, err := history.NewPruner(store, retention).Prune(context.Background())
	if err != nil {
		return cli.NewCommandError("history prune", err)
	}

	fmt.Printf("✓ Pruned %d records\n", deleted)
	return nil
}
