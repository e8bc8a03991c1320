package report

import (
	"sort"

	"halcyon-eda/signoff/pkg/check"
)

// Severity classifies a report group.
type Severity string

const (
	// SeverityFail marks blocking findings; any FAIL group fails the check.
	SeverityFail Severity = "FAIL"

	// SeverityInfo marks informational findings: expected matches, waived
	// findings, display-only downgrades.
	SeverityInfo Severity = "INFO"

	// SeverityWarn marks non-blocking anomalies such as unused waivers.
	SeverityWarn Severity = "WARN"
)

// GroupPrefix returns the group identifier prefix for the severity
// (ERROR, INFO, WARN).
func (s Severity) GroupPrefix() string {
	switch s {
	case SeverityFail:
		return "ERROR"
	case SeverityWarn:
		return "WARN"
	default:
		return "INFO"
	}
}

// Group is a named bucket of related detail items sharing a severity and a
// human-readable description.
type Group struct {
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Items       []string `json:"items"`
}

// CheckResult is the terminal, immutable result of one check evaluation.
// It is handed to the report writer, which maps IsPass to the process exit
// status.
type CheckResult struct {
	// Check is the check name, when the caller supplied one.
	Check string `json:"check,omitempty"`

	// Mode is the detected evaluation mode (1-4).
	Mode check.Mode `json:"mode"`

	// Value is the numeric summary: the pattern-matched finding count for
	// Modes 2 and 3, "N/A" for the boolean modes.
	Value check.Value `json:"value"`

	// IsPass is the overall verdict.
	IsPass bool `json:"is_pass"`

	// Groups maps stable group identifiers (ERROR01, INFO01, WARN01, ...)
	// to their groups.
	Groups map[string]Group `json:"groups"`
}

// GroupIDs returns the group identifiers in render order: ERROR groups
// first, then INFO, then WARN, each numbered.
func (r *CheckResult) GroupIDs() []string {
	ids := make([]string, 0, len(r.Groups))
	for id := range r.Groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasSeverity reports whether any group carries the given severity.
func (r *CheckResult) HasSeverity(s Severity) bool {
	for _, g := range r.Groups {
		if g.Severity == s {
			return true
		}
	}
	return false
}
