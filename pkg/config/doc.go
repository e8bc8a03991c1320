// Package config loads and validates the signoff checklist configuration.
//
// Configuration is a single YAML document: the checklist (the ordered list
// of checks with their requirement and waiver declarations), the run
// history store, telemetry, and watch-mode settings. Loading follows a
// fixed sequence: read file, unmarshal, apply defaults, validate.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention SIGNOFF_SECTION_FIELD
// and always take precedence over file values. For example:
//
//	SIGNOFF_TELEMETRY_LOGGING_LEVEL=debug
//	SIGNOFF_HISTORY_SQLITE_PATH=/var/lib/signoff/runs.db
//
// # Validation
//
// Validate collects every problem it finds into a single ValidationError
// instead of stopping at the first, so a lint pass can report the whole
// checklist at once. Per-check validation includes mode detection: a
// requirement/waiver combination that selects no evaluation mode is a
// configuration error at load time, not at run time.
package config
