package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeConfig writes a YAML configuration file into a temp directory and
// returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

const minimalConfig = `
checklist:
  name: tapeout
  checks:
    - name: drc:summary
      findings: findings/drc.json
      requirements:
        value: 0
`

func TestLoadConfigMinimal(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Checklist.Name != "tapeout" {
		t.Errorf("checklist name = %q, want %q", cfg.Checklist.Name, "tapeout")
	}
	if len(cfg.Checklist.Checks) != 1 {
		t.Fatalf("checks = %d, want 1", len(cfg.Checklist.Checks))
	}
	if got := cfg.Checklist.Checks[0].Findings; got != "findings/drc.json" {
		t.Errorf("findings path = %q, want %q", got, "findings/drc.json")
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Checklist.Parallelism != DefaultParallelism {
		t.Errorf("parallelism = %d, want %d", cfg.Checklist.Parallelism, DefaultParallelism)
	}
	if cfg.History.SQLite.Path != DefaultSQLitePath {
		t.Errorf("sqlite path = %q, want %q", cfg.History.SQLite.Path, DefaultSQLitePath)
	}
	if !cfg.History.SQLite.WALMode {
		t.Error("expected WAL mode enabled by default")
	}
	if cfg.History.SQLite.BusyTimeout != DefaultSQLiteBusyTimeout {
		t.Errorf("busy timeout = %v, want %v", cfg.History.SQLite.BusyTimeout, DefaultSQLiteBusyTimeout)
	}
	if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
		t.Errorf("logging level = %q, want %q", cfg.Telemetry.Logging.Level, DefaultLoggingLevel)
	}
	if cfg.Telemetry.Metrics.ListenAddress != DefaultMetricsListenAddress {
		t.Errorf("metrics address = %q, want %q", cfg.Telemetry.Metrics.ListenAddress, DefaultMetricsListenAddress)
	}
	if cfg.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("watch debounce = %v, want %v", cfg.Watch.Debounce, DefaultWatchDebounce)
	}
}

func TestLoadConfigInlineCheckFields(t *testing.T) {
	content := `
checklist:
  checks:
    - name: lint:errors
      findings: findings/lint.json
      requirements:
        value: 2
        pattern_items:
          - "regex: setup violation"
          - "hold violation *"
      waivers:
        value: 1
        waive_items:
          - "clock gating cell -- approved by STA lead"
      options:
        case_sensitive: true
        matching_strategy: word-subset
`
	cfg, err := LoadConfig(writeConfig(t, content))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	entry := cfg.Checklist.Checks[0]
	if !entry.Requirements.Value.IsNumber() || entry.Requirements.Value.Number() != 2 {
		t.Errorf("requirement value = %v, want 2", entry.Requirements.Value)
	}
	if len(entry.Requirements.PatternItems) != 2 {
		t.Errorf("pattern items = %d, want 2", len(entry.Requirements.PatternItems))
	}
	if len(entry.Waivers.WaiveItems) != 1 {
		t.Fatalf("waive items = %d, want 1", len(entry.Waivers.WaiveItems))
	}
	if got := entry.Waivers.WaiveItems[0].Key; got != "clock gating cell" {
		t.Errorf("waive key = %q, want %q", got, "clock gating cell")
	}
	if !entry.Options.CaseSensitive {
		t.Error("expected case_sensitive to be set")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read configuration file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "checklist: [unclosed"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse configuration file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	t.Setenv("SIGNOFF_CHECKLIST_PARALLELISM", "8")
	t.Setenv("SIGNOFF_HISTORY_ENABLED", "true")
	t.Setenv("SIGNOFF_HISTORY_SQLITE_PATH", "/tmp/signoff.db")
	t.Setenv("SIGNOFF_TELEMETRY_LOGGING_LEVEL", "debug")
	t.Setenv("SIGNOFF_WATCH_DEBOUNCE", "2s")

	cfg, err := LoadConfigWithEnvOverrides(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides failed: %v", err)
	}

	if cfg.Checklist.Parallelism != 8 {
		t.Errorf("parallelism = %d, want 8", cfg.Checklist.Parallelism)
	}
	if !cfg.History.Enabled {
		t.Error("expected history enabled")
	}
	if cfg.History.SQLite.Path != "/tmp/signoff.db" {
		t.Errorf("sqlite path = %q, want /tmp/signoff.db", cfg.History.SQLite.Path)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("logging level = %q, want debug", cfg.Telemetry.Logging.Level)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("watch debounce = %v, want 2s", cfg.Watch.Debounce)
	}
}

func TestLoadConfigEnvOverrideFailsValidation(t *testing.T) {
	t.Setenv("SIGNOFF_TELEMETRY_LOGGING_LEVEL", "verbose")

	_, err := LoadConfigWithEnvOverrides(writeConfig(t, minimalConfig))
	if err == nil {
		t.Fatal("expected validation error for invalid level override")
	}
	if !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("unexpected error: %v", err)
	}
}
