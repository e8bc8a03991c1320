package checklist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"halcyon-eda/signoff/pkg/check"
	"halcyon-eda/signoff/pkg/config"
)

// buildChecklist writes findings files into a temp dir and returns a
// checklist configuration referencing them.
func buildChecklist(t *testing.T, findings map[string]string) *config.ChecklistConfig {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.ChecklistConfig{Name: "tapeout", Parallelism: 2}
	for name, content := range findings {
		path := filepath.Join(dir, name+".json")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write findings: %v", err)
		}
		cfg.Checks = append(cfg.Checks, config.CheckEntry{
			Name:     name,
			Findings: path,
		})
	}
	return cfg
}

func TestRunnerAllPass(t *testing.T) {
	cfg := buildChecklist(t, map[string]string{
		"clean": `[]`,
	})

	summary, err := NewRunner(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.RunID == "" {
		t.Error("expected a run ID")
	}
	if summary.Checklist != "tapeout" {
		t.Errorf("checklist = %q, want tapeout", summary.Checklist)
	}
	if !summary.AllPass() {
		t.Errorf("expected all checks to pass: %v", summary.Failed())
	}
}

func TestRunnerFailingCheck(t *testing.T) {
	cfg := buildChecklist(t, map[string]string{
		"drc": `[{"name": "DRC: metal spacing"}]`,
	})

	summary, err := NewRunner(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.AllPass() {
		t.Error("expected the run to fail")
	}
	failed := summary.Failed()
	if len(failed) != 1 || failed[0] != "drc" {
		t.Errorf("failed = %v, want [drc]", failed)
	}
}

func TestRunnerResultsPreserveOrder(t *testing.T) {
	cfg := buildChecklist(t, map[string]string{})
	dir := t.TempDir()
	names := []string{"alpha", "beta", "gamma", "delta"}
	for _, name := range names {
		path := filepath.Join(dir, name+".json")
		if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
			t.Fatalf("failed to write findings: %v", err)
		}
		cfg.Checks = append(cfg.Checks, config.CheckEntry{Name: name, Findings: path})
	}

	summary, err := NewRunner(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for i, name := range names {
		if summary.Results[i].Check != name {
			t.Errorf("results[%d] = %q, want %q", i, summary.Results[i].Check, name)
		}
	}
}

func TestRunnerMissingFindingsIsPerCheckError(t *testing.T) {
	cfg := &config.ChecklistConfig{
		Checks: []config.CheckEntry{
			{Name: "broken", Findings: filepath.Join(t.TempDir(), "absent.json")},
		},
	}

	summary, err := NewRunner(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	res := summary.Results[0]
	if res.Err == nil {
		t.Fatal("expected a per-check error")
	}
	if !check.IsConfigurationError(res.Err) {
		t.Errorf("expected ConfigurationError, got %T", res.Err)
	}
	if summary.AllPass() {
		t.Error("run with an errored check must not pass")
	}
	if res.Error == "" {
		t.Error("expected the error message to be captured for JSON output")
	}
}

func TestRunnerCancelledContext(t *testing.T) {
	cfg := buildChecklist(t, map[string]string{"clean": `[]`})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewRunner(cfg, nil).Run(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestRunnerMetrics(t *testing.T) {
	cfg := buildChecklist(t, map[string]string{
		"clean": `[]`,
		"drc":   `[{"name": "DRC: metal spacing"}]`,
	})

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	if _, err := NewRunner(cfg, metrics).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := testutil.ToFloat64(metrics.runsTotal.WithLabelValues("fail")); got != 1 {
		t.Errorf("runs_total{result=fail} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.checksTotal.WithLabelValues("clean", "pass")); got != 1 {
		t.Errorf("checks_total{check=clean,result=pass} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.checksTotal.WithLabelValues("drc", "fail")); got != 1 {
		t.Errorf("checks_total{check=drc,result=fail} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.lastRunPass); got != 0 {
		t.Errorf("last_run_pass = %v, want 0", got)
	}
	if got := testutil.ToFloat64(metrics.checksFailed); got != 1 {
		t.Errorf("last_run_checks_failed = %v, want 1", got)
	}
}
