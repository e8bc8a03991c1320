package config

import (
	"time"

	"halcyon-eda/signoff/pkg/check"
)

// Config is the root configuration structure for signoff. It contains the
// checklist definition plus the run-history, telemetry, and watch-mode
// sections.
type Config struct {
	// Checklist is the ordered list of checks to evaluate, with the
	// requirement and waiver declarations for each.
	Checklist ChecklistConfig `yaml:"checklist"`

	// History configures the SQLite run-history store and its retention.
	History HistoryConfig `yaml:"history"`

	// Telemetry configures structured logging and Prometheus metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Watch configures watch mode: which paths trigger a re-run and how
	// long changes are debounced.
	Watch WatchConfig `yaml:"watch"`
}

// ChecklistConfig is the checklist definition.
type ChecklistConfig struct {
	// Name labels the checklist in reports and history records.
	Name string `yaml:"name"`

	// Parallelism bounds how many checks run concurrently. Checks are
	// independent; this only limits resource use.
	// Default: 4
	Parallelism int `yaml:"parallelism"`

	// Checks is the ordered list of check entries.
	Checks []CheckEntry `yaml:"checks"`
}

// CheckEntry is one checklist entry: the check identity, where its parser
// collaborator left the normalized findings, and the declarative engine
// configuration (requirements, waivers, matching options).
type CheckEntry struct {
	// Name uniquely identifies the check within the checklist.
	Name string `yaml:"name"`

	// Description is free text for the report header.
	Description string `yaml:"description"`

	// Findings is the path to the JSON findings file produced by the
	// external parser for this check.
	Findings string `yaml:"findings"`

	check.Config `yaml:",inline"`
}

// HistoryConfig configures the run-history store.
type HistoryConfig struct {
	// Enabled controls whether check results are persisted.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// SQLite configures the storage backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention configures pruning of old run records.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig configures the SQLite backend of the run-history store.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/history.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true when the sqlite section is omitted entirely.
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig configures pruning of the run-history store.
type RetentionConfig struct {
	// Days is the number of days to retain run records. 0 keeps records
	// forever.
	// Default: 90
	Days int `yaml:"days"`

	// PruneSchedule is a cron expression for scheduled pruning in watch
	// mode (e.g. "0 3 * * *"). Empty disables the scheduler.
	// Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`

	// MaxRecords caps the total record count; the oldest records are
	// deleted first. 0 means unlimited.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`
}

// TelemetryConfig configures observability.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the handler format: "json" or "text".
	// Default: "text"
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus metrics endpoint served in
// watch mode.
type MetricsConfig struct {
	// Enabled controls whether metrics are served.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address for the metrics HTTP listener.
	// Default: "127.0.0.1:9109"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the metrics handler.
	// Default: "/metrics"
	Path string `yaml:"path"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// Debounce is how long to wait after the last file event before
	// re-running the checklist.
	// Default: 500ms
	Debounce time.Duration `yaml:"debounce"`

	// Paths lists extra files or directories to watch in addition to the
	// configuration file and every check's findings file.
	Paths []string `yaml:"paths"`
}
