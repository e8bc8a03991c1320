package checklist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"halcyon-eda/signoff/pkg/check"
)

func writeFindings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "findings.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write findings file: %v", err)
	}
	return path
}

func TestLoadFindings(t *testing.T) {
	path := writeFindings(t, `[
		{"name": "DRC: metal spacing", "detail": "M3 net clk", "line": 12, "source_path": "drc.rpt"},
		{"name": "DRC: antenna"}
	]`)

	findings, err := LoadFindings(path)
	if err != nil {
		t.Fatalf("LoadFindings failed: %v", err)
	}
	if len(findings) != 2 {
		t.Fatalf("findings = %d, want 2", len(findings))
	}
	if findings[0].Name != "DRC: metal spacing" {
		t.Errorf("name = %q", findings[0].Name)
	}
	if findings[0].Location() != "drc.rpt:12" {
		t.Errorf("location = %q, want drc.rpt:12", findings[0].Location())
	}
}

func TestLoadFindingsEmptyArray(t *testing.T) {
	findings, err := LoadFindings(writeFindings(t, `[]`))
	if err != nil {
		t.Fatalf("LoadFindings failed: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("findings = %d, want 0", len(findings))
	}
}

func TestLoadFindingsMissingFile(t *testing.T) {
	_, err := LoadFindings(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !check.IsConfigurationError(err) {
		t.Errorf("expected ConfigurationError, got %T", err)
	}
	if !strings.Contains(err.Error(), "no input produced") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadFindingsInvalidJSON(t *testing.T) {
	_, err := LoadFindings(writeFindings(t, `{"not": "an array"}`))
	if err == nil {
		t.Fatal("expected error for non-array JSON")
	}
	if !check.IsConfigurationError(err) {
		t.Errorf("expected ConfigurationError, got %T", err)
	}
}

func TestLoadFindingsUnnamedRecord(t *testing.T) {
	_, err := LoadFindings(writeFindings(t, `[{"detail": "anonymous"}]`))
	if err == nil {
		t.Fatal("expected error for unnamed finding")
	}
	if !strings.Contains(err.Error(), "has no name") {
		t.Errorf("unexpected error: %v", err)
	}
}
