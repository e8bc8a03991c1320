package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"halcyon-eda/signoff/pkg/check"
	"halcyon-eda/signoff/pkg/match"
)

// FieldError represents a validation error for a specific configuration
// field.
type FieldError struct {
	// Field is the dotted path to the configuration field
	// (e.g. "checklist.checks[2].requirements.pattern_items").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a
// configuration. All field errors are collected and returned together.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a
// ValidationError if any rule fails. It returns nil when the configuration
// is valid.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateChecklist(&cfg.Checklist)...)
	errs = append(errs, validateHistory(&cfg.History)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

// validateChecklist validates the checklist and every check entry,
// including mode detection: a requirement/waiver combination that selects
// no evaluation mode fails validation here instead of at run time.
func validateChecklist(cfg *ChecklistConfig) []FieldError {
	var errs []FieldError

	if cfg.Parallelism < 0 {
		errs = append(errs, FieldError{
			Field:   "checklist.parallelism",
			Message: "must not be negative",
		})
	}
	if len(cfg.Checks) == 0 {
		errs = append(errs, FieldError{
			Field:   "checklist.checks",
			Message: "at least one check is required",
		})
	}

	seen := make(map[string]bool, len(cfg.Checks))
	for i, entry := range cfg.Checks {
		prefix := fmt.Sprintf("checklist.checks[%d]", i)

		if entry.Name == "" {
			errs = append(errs, FieldError{
				Field:   prefix + ".name",
				Message: "check name is required",
			})
		} else if seen[entry.Name] {
			errs = append(errs, FieldError{
				Field:   prefix + ".name",
				Message: fmt.Sprintf("duplicate check name %q", entry.Name),
			})
		}
		seen[entry.Name] = true

		if entry.Findings == "" {
			errs = append(errs, FieldError{
				Field:   prefix + ".findings",
				Message: "findings file path is required",
			})
		}

		errs = append(errs, validateCheck(prefix, &entry.Config)...)
	}

	return errs
}

// validateCheck validates one check's engine configuration.
func validateCheck(prefix string, cfg *check.Config) []FieldError {
	var errs []FieldError

	if _, err := check.DetectMode(cfg); err != nil {
		errs = append(errs, FieldError{
			Field:   prefix,
			Message: err.Error(),
		})
	}

	for j, pattern := range cfg.Requirements.PatternItems {
		if err := match.ValidatePattern(pattern); err != nil {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("%s.requirements.pattern_items[%d]", prefix, j),
				Message: fmt.Sprintf("invalid regex pattern: %v", err),
			})
		}
	}

	for j, item := range cfg.Waivers.WaiveItems {
		if strings.TrimSpace(item.Key) == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("%s.waivers.waive_items[%d]", prefix, j),
				Message: "waive item has an empty key",
			})
		}
	}

	switch cfg.Options.MatchingStrategy {
	case "", check.StrategyFirstMatch, check.StrategyWordSubset:
	default:
		errs = append(errs, FieldError{
			Field: prefix + ".options.matching_strategy",
			Message: fmt.Sprintf("unknown strategy %q (expected %q or %q)",
				cfg.Options.MatchingStrategy, check.StrategyFirstMatch, check.StrategyWordSubset),
		})
	}

	return errs
}

// validateHistory validates the run-history section.
func validateHistory(cfg *HistoryConfig) []FieldError {
	var errs []FieldError

	if !cfg.Enabled {
		return nil
	}
	if cfg.SQLite.Path == "" {
		errs = append(errs, FieldError{
			Field:   "history.sqlite.path",
			Message: "database path is required when history is enabled",
		})
	}
	if cfg.Retention.Days < 0 {
		errs = append(errs, FieldError{
			Field:   "history.retention.days",
			Message: "must not be negative",
		})
	}
	if cfg.Retention.MaxRecords < 0 {
		errs = append(errs, FieldError{
			Field:   "history.retention.max_records",
			Message: "must not be negative",
		})
	}
	if cfg.Retention.PruneSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Retention.PruneSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "history.retention.prune_schedule",
				Message: fmt.Sprintf("invalid cron expression: %v", err),
			})
		}
	}
	return errs
}

// validateTelemetry validates logging and metrics settings.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q (expected debug, info, warn, or error)", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "", "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q (expected json or text)", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && cfg.Metrics.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.listen_address",
			Message: "listen address is required when metrics are enabled",
		})
	}
	return errs
}

// validateWatch validates watch-mode settings.
func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError
	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: "must not be negative",
		})
	}
	return errs
}
