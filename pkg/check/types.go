package check

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Finding is one normalized record emitted by a domain-specific log parser:
// a violation, a clean status line, or a configuration fact. Findings are
// immutable once created; their identity for matching purposes is Name.
type Finding struct {
	// Name identifies the finding, commonly "<issue_type>: <description>".
	Name string `json:"name"`

	// Detail carries extra context from the tool report line.
	Detail string `json:"detail,omitempty"`

	// Line is the line number in the source report, if known.
	Line int `json:"line,omitempty"`

	// SourcePath is the report file the finding was parsed from.
	SourcePath string `json:"source_path,omitempty"`

	// Attributes carries parser-specific key/value metadata.
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Category returns the issue-type prefix of the finding name: the portion
// before the first colon, trimmed. Findings without a colon fall into a
// single uncategorized bucket.
func (f Finding) Category() string {
	if i := strings.IndexByte(f.Name, ':'); i >= 0 {
		return strings.TrimSpace(f.Name[:i])
	}
	return ""
}

// Text returns the string a finding is matched and rendered by: the name,
// plus the detail when one was parsed.
func (f Finding) Text() string {
	if f.Detail == "" {
		return f.Name
	}
	return f.Name + " - " + f.Detail
}

// Location renders the source position of the finding, or "" when the
// parser did not record one.
func (f Finding) Location() string {
	if f.SourcePath == "" {
		return ""
	}
	if f.Line <= 0 {
		return f.SourcePath
	}
	return fmt.Sprintf("%s:%d", f.SourcePath, f.Line)
}

// WaiverItem is one declared waiver exception: a key to match findings
// against plus the justification for waiving them.
//
// Three source shapes are accepted from YAML:
//
//   - a plain string key:              "ERR1: bad thing"
//   - a key with a trailing comment:   "ERR1: bad thing -- # approved by lead"
//   - a structured record:             {key: "ERR1: bad thing", reason: "approved"}
type WaiverItem struct {
	Key    string `yaml:"key" json:"key"`
	Reason string `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// reasonSeparator splits a plain-string waive item into key and trailing
// comment; commentMarker is stripped from the front of the comment.
const (
	reasonSeparator = " -- "
	commentMarker   = "#"
)

// UnmarshalYAML decodes a WaiverItem from either a plain scalar or a
// {key, reason} mapping. A mapping without a key is malformed.
func (w *WaiverItem) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var raw string
		if err := node.Decode(&raw); err != nil {
			return err
		}
		w.Key, w.Reason = splitKeyReason(raw)
		return nil
	}

	type plain WaiverItem
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	if strings.TrimSpace(p.Key) == "" {
		return fmt.Errorf("waive item record is missing its key (line %d)", node.Line)
	}
	*w = WaiverItem(p)
	return nil
}

// splitKeyReason splits a plain-string waive item on the first reason
// separator. The remainder has the comment marker stripped.
func splitKeyReason(raw string) (key, reason string) {
	if i := strings.Index(raw, reasonSeparator); i >= 0 {
		key = strings.TrimSpace(raw[:i])
		reason = strings.TrimSpace(raw[i+len(reasonSeparator):])
		reason = strings.TrimSpace(strings.TrimPrefix(reason, commentMarker))
		return key, reason
	}
	return strings.TrimSpace(raw), ""
}

// Requirements is the requirement half of a check configuration.
type Requirements struct {
	// Value is the expected count of pattern-matched findings, or "N/A"
	// for boolean checks.
	Value Value `yaml:"value" json:"value"`

	// PatternItems is the ordered list of patterns selecting the findings
	// the requirement counts. Empty for boolean checks.
	PatternItems []string `yaml:"pattern_items,omitempty" json:"pattern_items,omitempty"`
}

// Waivers is the waiver half of a check configuration.
type Waivers struct {
	// Value is the declared number of expected waived findings, "N/A" when
	// waiving is disabled, or zero for the display-only sub-mode.
	Value Value `yaml:"value" json:"value"`

	// WaiveItems is the declared waiver table source.
	WaiveItems []WaiverItem `yaml:"waive_items,omitempty" json:"waive_items,omitempty"`
}

// Matching strategies for waiver lookup.
const (
	// StrategyFirstMatch tries exact, wildcard, then bidirectional
	// substring per key; the first key to hit wins.
	StrategyFirstMatch = "first-match"

	// StrategyWordSubset matches a key whose word set is a subset of the
	// finding's word set, with a substring fallback.
	StrategyWordSubset = "word-subset"
)

// Options are the per-check matching and rendering options.
type Options struct {
	// CaseSensitive enables case-sensitive pattern and waiver matching.
	// Default: false
	CaseSensitive bool `yaml:"case_sensitive" json:"case_sensitive"`

	// MatchingStrategy selects the waiver lookup: "first-match" or
	// "word-subset".
	// Default: "first-match"
	MatchingStrategy string `yaml:"matching_strategy" json:"matching_strategy"`

	// Tags overrides the report markers appended to waived items.
	Tags Tags `yaml:"tags" json:"tags"`
}

// Tags are the fixed markers appended to rendered report items. Internal
// logic models waiver provenance as enum fields; these strings exist only
// at final report-string construction.
type Tags struct {
	// Waiver marks findings waived under Modes 3 and 4.
	// Default: "[WAIVER]"
	Waiver string `yaml:"waiver" json:"waiver"`

	// WaivedAsInfo marks failing findings downgraded by the
	// waiver-value-zero display-only sub-mode.
	// Default: "[WAIVED_AS_INFO]"
	WaivedAsInfo string `yaml:"waived_as_info" json:"waived_as_info"`

	// WaivedInfo marks explicitly declared and matched waiver items under
	// Modes 1 and 2.
	// Default: "[WAIVED_INFO]"
	WaivedInfo string `yaml:"waived_info" json:"waived_info"`
}

// DefaultOptions returns the default matching options.
func DefaultOptions() Options {
	return Options{
		CaseSensitive:    false,
		MatchingStrategy: StrategyFirstMatch,
		Tags:             DefaultTags(),
	}
}

// DefaultTags returns the default report markers.
func DefaultTags() Tags {
	return Tags{
		Waiver:       "[WAIVER]",
		WaivedAsInfo: "[WAIVED_AS_INFO]",
		WaivedInfo:   "[WAIVED_INFO]",
	}
}

// ApplyDefaults fills unset option fields with their defaults.
func (o *Options) ApplyDefaults() {
	if o.MatchingStrategy == "" {
		o.MatchingStrategy = StrategyFirstMatch
	}
	def := DefaultTags()
	if o.Tags.Waiver == "" {
		o.Tags.Waiver = def.Waiver
	}
	if o.Tags.WaivedAsInfo == "" {
		o.Tags.WaivedAsInfo = def.WaivedAsInfo
	}
	if o.Tags.WaivedInfo == "" {
		o.Tags.WaivedInfo = def.WaivedInfo
	}
}

// Config is the declarative configuration of a single check, read-only for
// the engine's lifetime.
type Config struct {
	Requirements Requirements `yaml:"requirements" json:"requirements"`
	Waivers      Waivers      `yaml:"waivers" json:"waivers"`
	Options      Options      `yaml:"options" json:"options"`
}

// DisplayOnly reports whether the check runs in the waiver-value-zero
// display-only sub-mode: failing findings are surfaced at informational
// severity and the verdict is forced to pass. Applies in Modes 1 and 2
// only.
func (c *Config) DisplayOnly() bool {
	return c.Waivers.Value.IsZero()
}
