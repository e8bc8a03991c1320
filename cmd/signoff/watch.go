package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"halcyon-eda/signoff/pkg/checklist"
	"halcyon-eda/signoff/pkg/cli"
	"halcyon-eda/signoff/pkg/config"
	"halcyon-eda/signoff/pkg/history"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the checklist whenever inputs change",
	Long: `Run the checklist, then keep watching the configuration file and
every findings file, re-running after each debounced change. Edits to the
configuration file take effect on the next run; an invalid edit keeps the
previous configuration.

When metrics are enabled, a Prometheus endpoint reports run counts,
durations, and the latest verdict. When run history is enabled, results
are persisted and the retention scheduler prunes old records.

Press Ctrl+C to stop.

Examples:
  signoff watch
  signoff watch --config /path/to/config.yaml`,
	RunE: watchChecklist,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func watchChecklist(cmd *cobra.Command, args []string) error {
	// Watch mode owns the process, so the configuration lives in the
	// package singleton and is reloaded when the file changes.
	if err := config.Initialize(cfgFile); err != nil {
		return err
	}
	cfg := config.GetConfig()
	setupLogging(&cfg.Telemetry.Logging)

	ctx := cli.SetupSignalHandler()

	// Metrics endpoint
	var metrics *checklist.Metrics
	if cfg.Telemetry.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		metrics = checklist.NewMetrics(registry)
		startMetricsServer(ctx, &cfg.Telemetry.Metrics, registry)
		fmt.Printf("✓ Metrics on http://%s%s\n", cfg.Telemetry.Metrics.ListenAddress, cfg.Telemetry.Metrics.Path)
	}

	// Run history with scheduled retention
	var store *history.SQLiteStorage
	if cfg.History.Enabled {
		var err error
		store, err = openHistory(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		pruner := history.NewPruner(store, &history.RetentionConfig{
			RetentionDays: cfg.History.Retention.Days,
			PruneSchedule: cfg.History.Retention.PruneSchedule,
			MaxRecords:    cfg.History.Retention.MaxRecords,
		})
		if err := pruner.Start(ctx); err != nil {
			return fmt.Errorf("failed to start retention scheduler: %w", err)
		}
		defer pruner.Stop()
		fmt.Println("✓ Run history enabled")
	}

	runOnce := func() error {
		// Pick up configuration edits on every trigger; an invalid edit
		// keeps the previous configuration and the run proceeds with it.
		if err := config.ReloadConfig(cfgFile); err != nil {
			fmt.Fprintf(os.Stderr, "config reload failed, keeping previous: %v\n", err)
		}
		runner := checklist.NewRunner(&config.GetConfig().Checklist, metrics)
		summary, err := runner.Run(ctx)
		if err != nil {
			return err
		}
		if store != nil {
			for _, rec := range history.RecordsFromRun(summary) {
				if err := store.Store(ctx, rec); err != nil {
					return fmt.Errorf("failed to store run record: %w", err)
				}
			}
		}
		return renderSummary(os.Stdout, summary)
	}

	// Initial run before watching.
	if err := runOnce(); err != nil {
		return cli.NewCommandError("watch", err)
	}

	watcher, err := checklist.NewWatcher(watchPaths(cfg), cfg.Watch.Debounce, nil)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer func() { _ = watcher.Stop() }()

	fmt.Println("\nWatching for changes. Press Ctrl+C to stop.")
	if err := watcher.Watch(ctx, runOnce); err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// watchPaths collects every path a change of which invalidates the last
// run: the configuration file, each findings file, and extra configured
// paths.
func watchPaths(cfg *config.Config) []string {
	paths := []string{cfgFile}
	for _, entry := range cfg.Checklist.Checks {
		paths = append(paths, entry.Findings)
	}
	paths = append(paths, cfg.Watch.Paths...)
	return paths
}

// startMetricsServer serves the Prometheus registry until the context is
// cancelled.
func startMetricsServer(ctx context.Context, cfg *config.MetricsConfig, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "metrics server error: %v\n", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
