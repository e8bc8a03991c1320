package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLintValidConfig(t *testing.T) {
	origCfg := cfgFile
	defer func() { cfgFile = origCfg }()

	cfgFile = writeTestConfig(t, `
checklist:
  name: tapeout
  checks:
    - name: drc:summary
      findings: findings/drc.json
`)

	if err := lintConfig(lintCmd, nil); err != nil {
		t.Fatalf("lintConfig failed on a valid config: %v", err)
	}
}

func TestLintInvalidConfig(t *testing.T) {
	origCfg := cfgFile
	defer func() { cfgFile = origCfg }()

	cfgFile = writeTestConfig(t, `
checklist:
  checks:
    - name: drc:summary
      findings: findings/drc.json
      requirements:
        value: 5
`)

	// Requirement value without pattern items selects no mode.
	if err := lintConfig(lintCmd, nil); err == nil {
		t.Fatal("expected lint to fail for a modeless check")
	}
}
