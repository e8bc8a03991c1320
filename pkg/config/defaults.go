package config

import "time"

// Default values for configuration fields.
const (
	// Checklist defaults
	DefaultParallelism = 4

	// History defaults
	DefaultSQLitePath         = "data/history.db"
	DefaultSQLiteMaxOpenConns = 10
	DefaultSQLiteMaxIdleConns = 5
	DefaultSQLiteWALMode      = true
	DefaultSQLiteBusyTimeout  = 5 * time.Second
	DefaultRetentionDays      = 90
	DefaultRetentionSchedule  = "0 3 * * *"

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "text"
	DefaultMetricsListenAddress = "127.0.0.1:9109"
	DefaultMetricsPath          = "/metrics"

	// Watch defaults
	DefaultWatchDebounce = 500 * time.Millisecond
)

// ApplyDefaults fills unset configuration fields with their default
// values. It never overrides a value the user set explicitly.
func ApplyDefaults(cfg *Config) {
	if cfg.Checklist.Parallelism == 0 {
		cfg.Checklist.Parallelism = DefaultParallelism
	}
	for i := range cfg.Checklist.Checks {
		cfg.Checklist.Checks[i].Options.ApplyDefaults()
	}

	if cfg.History.SQLite.Path == "" {
		// Untouched sqlite section: apply the full backend defaults,
		// WAL mode included.
		cfg.History.SQLite.Path = DefaultSQLitePath
		cfg.History.SQLite.WALMode = DefaultSQLiteWALMode
	}
	if cfg.History.SQLite.MaxOpenConns == 0 {
		cfg.History.SQLite.MaxOpenConns = DefaultSQLiteMaxOpenConns
	}
	if cfg.History.SQLite.MaxIdleConns == 0 {
		cfg.History.SQLite.MaxIdleConns = DefaultSQLiteMaxIdleConns
	}
	if cfg.History.SQLite.BusyTimeout == 0 {
		cfg.History.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}
	if cfg.History.Retention.Days == 0 {
		cfg.History.Retention.Days = DefaultRetentionDays
	}
	if cfg.History.Retention.PruneSchedule == "" {
		cfg.History.Retention.PruneSchedule = DefaultRetentionSchedule
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
}
