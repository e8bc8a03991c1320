package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"halcyon-eda/signoff/pkg/check"
	"halcyon-eda/signoff/pkg/cli"
	"halcyon-eda/signoff/pkg/config"
)

var lintFlags struct {
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate the configuration file",
	Long: `Validate the checklist configuration without running any check.

The lint command loads the configuration and performs full validation:
  - YAML syntax validation
  - check identity rules (unique names, findings paths)
  - requirement pattern compilation
  - waiver table shape (non-empty keys)
  - evaluation mode detection for every check

Examples:
  # Lint the default config
  signoff lint

  # Lint a specific config
  signoff lint --config /path/to/config.yaml

  # JSON output for CI/CD
  signoff lint --format json`,
	RunE: lintConfig,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult is the lint outcome for one configuration file.
type LintResult struct {
	File   string            `json:"file"`
	Valid  bool              `json:"valid"`
	Checks int               `json:"checks"`
	Modes  map[string]string `json:"modes,omitempty"`
	Errors []string          `json:"errors,omitempty"`
}

func lintConfig(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(lintFlags.format)
	if err != nil {
		return err
	}

	result := LintResult{File: cfgFile, Valid: true}

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		result.Valid = false
		var verr config.ValidationError
		if errors.As(err, &verr) {
			for _, fe := range verr.Errors {
				result.Errors = append(result.Errors, fe.Error())
			}
		} else {
			result.Errors = append(result.Errors, err.Error())
		}
	} else {
		result.Checks = len(cfg.Checklist.Checks)
		result.Modes = make(map[string]string, len(cfg.Checklist.Checks))
		for i := range cfg.Checklist.Checks {
			entry := &cfg.Checklist.Checks[i]
			// Validation already guaranteed detection succeeds.
			mode, _ := check.DetectMode(&entry.Config)
			result.Modes[entry.Name] = mode.String()
		}
	}

	if format == cli.FormatJSON {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, result); err != nil {
			return err
		}
	} else {
		printLintResult(&result)
	}

	if !result.Valid {
		return fmt.Errorf("configuration %s is invalid", cfgFile)
	}
	return nil
}

func printLintResult(result *LintResult) {
	if result.Valid {
		fmt.Printf("✓ %s is valid (%d checks)\n", result.File, result.Checks)
		names := make([]string, 0, len(result.Modes))
		for name := range result.Modes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: mode %s\n", name, result.Modes[name])
		}
		return
	}

	fmt.Printf("✗ %s is invalid:\n", result.File)
	for _, msg := range result.Errors {
		fmt.Printf("  - %s\n", msg)
	}
}
