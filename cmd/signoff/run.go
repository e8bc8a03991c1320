package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"halcyon-eda/signoff/pkg/checklist"
	"halcyon-eda/signoff/pkg/cli"
	"halcyon-eda/signoff/pkg/config"
	"halcyon-eda/signoff/pkg/history"
	"halcyon-eda/signoff/pkg/report"
)

var runFlags struct {
	format   string
	progress bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the checklist once",
	Long: `Run every check in the configured checklist and print the report.

The exit code reflects the run outcome: 0 when every check passes, 1 when
any check fails, 2 for configuration errors.

Examples:
  # Run with default config
  signoff run

  # Run with custom config
  signoff run --config /path/to/config.yaml

  # JSON output for CI/CD
  signoff run --format json`,
	RunE: runChecklist,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.format, "format", "text", "output format: text, json")
	runCmd.Flags().BoolVar(&runFlags.progress, "progress", false, "show a progress bar on stderr")
}

func runChecklist(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(runFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cli.SetupSignalHandler()

	summary, err := executeRun(ctx, cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	if format == cli.FormatJSON {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, summary); err != nil {
			return err
		}
	} else {
		if err := renderSummary(os.Stdout, summary); err != nil {
			return err
		}
	}

	if !summary.AllPass() {
		return cli.ErrChecksFailed
	}
	return nil
}

// executeRun runs the checklist once and persists the results when run
// history is enabled.
func executeRun(ctx context.Context, cfg *config.Config) (*checklist.RunSummary, error) {
	runner := checklist.NewRunner(&cfg.Checklist, nil)

	if runFlags.progress {
		progress := cli.NewProgressReporter(os.Stderr)
		progress.Start(int64(len(cfg.Checklist.Checks)))
		var done atomic.Int64
		runner.OnCheckDone = func(checklist.Result) {
			progress.Update(done.Add(1))
		}
		defer progress.Finish()
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		return nil, err
	}

	if cfg.History.Enabled {
		if err := persistRun(ctx, cfg, summary); err != nil {
			return nil, err
		}
	}

	return summary, nil
}

// persistRun stores one record per check into the run-history database.
func persistRun(ctx context.Context, cfg *config.Config, summary *checklist.RunSummary) error {
	store, err := history.NewSQLiteStorage(&history.SQLiteConfig{
		Path:         cfg.History.SQLite.Path,
		MaxOpenConns: cfg.History.SQLite.MaxOpenConns,
		MaxIdleConns: cfg.History.SQLite.MaxIdleConns,
		WALMode:      cfg.History.SQLite.WALMode,
		BusyTimeout:  cfg.History.SQLite.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer store.Close()

	for _, rec := range history.RecordsFromRun(summary) {
		if err := store.Store(ctx, rec); err != nil {
			return fmt.Errorf("failed to store run record: %w", err)
		}
	}
	return nil
}

// renderSummary writes the text report for a run: one block per check,
// then the overall verdict.
func renderSummary(w io.Writer, summary *checklist.RunSummary) error {
	if summary.Checklist != "" {
		if _, err := fmt.Fprintf(w, "Checklist: %s (run %s)\n\n", summary.Checklist, summary.RunID); err != nil {
			return err
		}
	}

	for i, res := range summary.Results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if res.Err != nil {
			if _, err := fmt.Fprintf(w, "Check: %s\nERROR: %v\n", res.Check, res.Err); err != nil {
				return err
			}
			continue
		}
		if err := report.Render(w, res.Result); err != nil {
			return err
		}
	}

	verdict := "PASS"
	if !summary.AllPass() {
		verdict = "FAIL"
	}
	_, err := fmt.Fprintf(w, "\nOverall: %s (%d checks, %s)\n",
		verdict, len(summary.Results), summary.Duration.Round(time.Millisecond))
	return err
}
