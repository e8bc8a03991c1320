package report

import (
	"fmt"
	"log/slog"
	"sort"

	"halcyon-eda/signoff/pkg/check"
	"halcyon-eda/signoff/pkg/match"
	"halcyon-eda/signoff/pkg/waiver"
)

// Builder aggregates findings into a CheckResult. The matcher options,
// waiver resolver, and report tags are injected at construction; Build
// itself is stateless and safe for concurrent use.
type Builder struct {
	resolver *waiver.Resolver
	opts     match.Options
	tags     check.Tags
	logger   *slog.Logger
}

// NewBuilder creates a Builder with explicit dependencies.
func NewBuilder(resolver *waiver.Resolver, opts match.Options, tags check.Tags) *Builder {
	return &Builder{
		resolver: resolver,
		opts:     opts,
		tags:     tags,
		logger:   slog.Default().With("component", "report.builder"),
	}
}

// ForConfig creates a Builder wired from a check configuration's options:
// the matcher options, the configured waiver lookup strategy, and the tag
// overrides.
func ForConfig(cfg *check.Config) *Builder {
	opts := cfg.Options
	opts.ApplyDefaults()
	mopts := match.Options{CaseSensitive: opts.CaseSensitive}
	return NewBuilder(waiver.NewResolver(opts.MatchingStrategy, mopts), mopts, opts.Tags)
}

// bucket is the internal grouping unit before group IDs are assigned.
type bucket struct {
	severity    Severity
	category    string
	description string
	items       []string
}

// Build evaluates one check: detects the mode, applies the pattern filter,
// classifies findings against the waiver table, and aggregates everything
// into a CheckResult. Configuration errors are returned as
// *check.ConfigurationError carrying the check name.
func (b *Builder) Build(name string, cfg *check.Config, findings []check.Finding) (*CheckResult, error) {
	mode, err := check.DetectMode(cfg)
	if err != nil {
		return nil, withCheckName(err, name)
	}

	table, err := waiver.NewTable(cfg.Waivers.WaiveItems)
	if err != nil {
		return nil, withCheckName(err, name)
	}

	// Pattern filter: counting modes evaluate only the matched subset,
	// boolean modes evaluate every finding.
	candidates := findings
	var unmatched []check.Finding
	if mode.CountsPatterns() {
		candidates, unmatched = b.partition(findings, cfg.Requirements.PatternItems)
	}
	matchedCount := len(candidates)

	cls := b.classify(mode, candidates, table)
	cls.Clean = append(cls.Clean, unmatched...)

	displayOnly := !mode.UsesWaivers() && cfg.DisplayOnly()

	result := &CheckResult{
		Check:  name,
		Mode:   mode,
		Value:  b.value(mode, matchedCount),
		IsPass: b.verdict(mode, cfg, matchedCount, &cls, displayOnly),
		Groups: make(map[string]Group),
	}

	buckets := b.buckets(mode, cfg, table, findings, matchedCount, &cls, displayOnly)
	assignGroupIDs(result.Groups, buckets)

	b.logger.Debug("check result built",
		"check", name,
		"mode", mode.String(),
		"value", result.Value.String(),
		"pass", result.IsPass,
		"groups", len(result.Groups),
	)

	return result, nil
}

// partition splits findings into the pattern-matched subset and the rest,
// preserving input order in both halves.
func (b *Builder) partition(findings []check.Finding, patterns []string) (matched, unmatched []check.Finding) {
	for _, f := range findings {
		if match.MatchesAny(f.Text(), patterns, b.opts) {
			matched = append(matched, f)
		} else {
			unmatched = append(unmatched, f)
		}
	}
	return matched, unmatched
}

// classify routes candidates through the waiver resolver according to the
// mode's waiver semantics.
func (b *Builder) classify(mode check.Mode, candidates []check.Finding, table *waiver.Table) waiver.Classification {
	switch {
	case mode.UsesWaivers():
		// Modes 3/4: full classification against the table.
		return b.resolver.Classify(candidates, table)

	case mode == check.ModeCount:
		// Mode 2: matched findings are expected, not failures. Declared
		// waive items still annotate the ones they match; the rest are
		// clean.
		cls := b.resolver.Classify(candidates, table)
		cls.Clean = cls.Unwaived
		cls.Unwaived = nil
		return cls

	default:
		// Mode 1: every finding is a failure unless a declared waive item
		// matches it.
		if table.Len() > 0 {
			return b.resolver.Classify(candidates, table)
		}
		return waiver.Classification{Unwaived: candidates}
	}
}

// value computes the numeric summary: matched count for counting modes,
// "N/A" for boolean modes.
func (b *Builder) value(mode check.Mode, matchedCount int) check.Value {
	if mode.CountsPatterns() {
		return check.NumberValue(float64(matchedCount))
	}
	return check.NotApplicable()
}

// verdict computes the overall pass/fail decision.
func (b *Builder) verdict(mode check.Mode, cfg *check.Config, matchedCount int, cls *waiver.Classification, displayOnly bool) bool {
	if displayOnly {
		// Waiver-value-zero forces the verdict to pass; findings are
		// surfaced as informational only.
		return true
	}
	switch mode {
	case check.ModeCount:
		return float64(matchedCount) == cfg.Requirements.Value.Number()
	default:
		return len(cls.Unwaived) == 0
	}
}

// buckets assembles the severity buckets for every outcome category.
func (b *Builder) buckets(mode check.Mode, cfg *check.Config, table *waiver.Table, findings []check.Finding, matchedCount int, cls *waiver.Classification, displayOnly bool) []bucket {
	var out []bucket

	if len(findings) == 0 {
		out = append(out, bucket{
			severity:    SeverityInfo,
			description: "no findings to classify",
			items:       []string{"check input contained no findings"},
		})
	}

	// Failing findings: FAIL normally, downgraded to INFO with the
	// auto-waived marker under display-only.
	if len(cls.Unwaived) > 0 {
		if displayOnly {
			items := renderItems(cls.Unwaived, func(f check.Finding) string {
				return waiver.FormatReason(itemText(f), "", b.tags.WaivedAsInfo)
			})
			out = append(out, groupByCategory(cls.Unwaived, items, SeverityInfo, "auto-waived")...)
		} else {
			items := renderItems(cls.Unwaived, itemText)
			out = append(out, groupByCategory(cls.Unwaived, items, SeverityFail, "failing")...)
		}
	}

	// Waived findings: INFO, tagged [WAIVER] under Modes 3/4 and
	// [WAIVED_INFO] for declared waive items under Modes 1/2.
	if len(cls.Waived) > 0 {
		tag := b.tags.WaivedInfo
		if mode.UsesWaivers() {
			tag = b.tags.Waiver
		}
		waived := make([]check.Finding, 0, len(cls.Waived))
		items := make([]string, 0, len(cls.Waived))
		for _, w := range cls.Waived {
			waived = append(waived, w.Finding)
			items = append(items, waiver.FormatReason(itemText(w.Finding), table.Reason(w.Key), tag))
		}
		out = append(out, groupByCategory(waived, items, SeverityInfo, "waived")...)
	}

	// Clean findings that satisfied an expected pattern: INFO (Mode 2).
	if mode == check.ModeCount && len(cls.Clean) > 0 {
		var expected []check.Finding
		for _, f := range cls.Clean {
			if match.MatchesAny(f.Text(), cfg.Requirements.PatternItems, b.opts) {
				expected = append(expected, f)
			}
		}
		if len(expected) > 0 {
			items := renderItems(expected, itemText)
			out = append(out, groupByCategory(expected, items, SeverityInfo, "expected")...)
		}
	}

	// Counting modes report a requirement mismatch explicitly: the failure
	// is the count, not any individual finding.
	if mode == check.ModeCount && float64(matchedCount) != cfg.Requirements.Value.Number() {
		summary := fmt.Sprintf("expected %s pattern-matched findings, found %d",
			cfg.Requirements.Value, matchedCount)
		if displayOnly {
			out = append(out, bucket{
				severity:    SeverityInfo,
				description: "requirement mismatch (auto-waived)",
				items:       []string{waiver.FormatReason(summary, "", b.tags.WaivedAsInfo)},
			})
		} else {
			out = append(out, bucket{
				severity:    SeverityFail,
				description: "requirement mismatch",
				items:       []string{summary},
			})
		}
	}

	// Declared waivers that matched nothing: WARN, always.
	if len(cls.UnusedWaivers) > 0 {
		items := make([]string, 0, len(cls.UnusedWaivers))
		for _, e := range cls.UnusedWaivers {
			items = append(items, waiver.FormatReason(e.Key, e.Reason, ""))
		}
		out = append(out, bucket{
			severity:    SeverityWarn,
			description: "declared waiver did not match any finding",
			items:       items,
		})
	}

	return out
}

// renderItems renders one item string per finding, preserving order.
func renderItems(findings []check.Finding, render func(check.Finding) string) []string {
	items := make([]string, 0, len(findings))
	for _, f := range findings {
		items = append(items, render(f))
	}
	return items
}

// groupByCategory buckets findings (with their pre-rendered items) by the
// issue category, preserving first-seen category order for later stable
// sorting.
func groupByCategory(findings []check.Finding, items []string, sev Severity, kind string) []bucket {
	byCategory := make(map[string]*bucket)
	var order []string
	for i, f := range findings {
		cat := f.Category()
		bk, ok := byCategory[cat]
		if !ok {
			bk = &bucket{
				severity:    sev,
				category:    cat,
				description: describeBucket(kind, cat),
			}
			byCategory[cat] = bk
			order = append(order, cat)
		}
		bk.items = append(bk.items, items[i])
	}

	out := make([]bucket, 0, len(order))
	for _, cat := range order {
		out = append(out, *byCategory[cat])
	}
	return out
}

// describeBucket renders a group description from the outcome kind and the
// finding category.
func describeBucket(kind, category string) string {
	if category == "" {
		return kind + " findings"
	}
	return fmt.Sprintf("%s findings: %s", kind, category)
}

// itemText renders one finding as a report item line.
func itemText(f check.Finding) string {
	if loc := f.Location(); loc != "" {
		return fmt.Sprintf("%s (%s)", f.Text(), loc)
	}
	return f.Text()
}

// assignGroupIDs sorts buckets deterministically (lexicographic by
// category within each severity, declaration order for ties) and numbers
// them per severity prefix, so identical inputs always produce identical
// group identifiers.
func assignGroupIDs(groups map[string]Group, buckets []bucket) {
	bySeverity := map[Severity][]bucket{}
	for _, bk := range buckets {
		bySeverity[bk.severity] = append(bySeverity[bk.severity], bk)
	}
	for sev, bks := range bySeverity {
		sort.SliceStable(bks, func(i, j int) bool {
			return bks[i].category < bks[j].category
		})
		for i, bk := range bks {
			id := fmt.Sprintf("%s%02d", sev.GroupPrefix(), i+1)
			groups[id] = Group{
				Description: bk.description,
				Severity:    bk.severity,
				Items:       bk.items,
			}
		}
	}
}

// withCheckName attaches the check name to a configuration error.
func withCheckName(err error, name string) error {
	if ce, ok := err.(*check.ConfigurationError); ok && ce.Check == "" {
		named := *ce
		named.Check = name
		return &named
	}
	return err
}
