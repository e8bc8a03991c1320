// Signoff is a rule evaluation and waiver resolution engine for release
// checklists.
//
// It evaluates parsed tool findings against declarative check
// configurations: pattern-based requirements, waiver tables with
// justifications, and four fixed evaluation modes selected from the
// requirement/waiver shape. Results are aggregated into severity-grouped
// reports whose verdict drives the process exit code.
//
// Usage:
//
//	# Run the checklist from the default configuration
//	signoff run
//
//	# Run with a custom configuration file and JSON output
//	signoff run --config /path/to/config.yaml --format json
//
//	# Validate the configuration without running
//	signoff lint
//
//	# Re-run automatically when findings change
//	signoff watch
//
//	# Inspect previous runs
//	signoff history list --failed
package main

func main() {
	Execute()
}
