package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"halcyon-eda/signoff/pkg/cli"
	"halcyon-eda/signoff/pkg/config"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "signoff",
	Short: "Signoff - checklist rule evaluation and waiver resolution",
	Long: `Signoff evaluates release checklists from parsed tool findings.

Each check declares its requirements, waiver exceptions, and matching
options; the engine selects one of four evaluation modes from that shape,
classifies findings against the waiver table, and aggregates everything
into severity-grouped reports:
  - ERROR groups block the release and fail the run
  - INFO groups carry waived and expected findings
  - WARN groups flag declared waivers that matched nothing`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.CompletionOptions.DisableDefaultCmd = false
}

// loadConfig loads and validates the configuration file, then wires the
// configured logging. The --verbose flag forces debug level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, err
	}
	setupLogging(&cfg.Telemetry.Logging)
	return cfg, nil
}

// setupLogging installs the default slog logger per the telemetry
// configuration.
func setupLogging(cfg *config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
