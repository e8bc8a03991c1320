package waiver

import (
	"log/slog"

	"halcyon-eda/signoff/pkg/check"
	"halcyon-eda/signoff/pkg/match"
)

// WaivedFinding pairs a waived finding with the table key that matched it.
type WaivedFinding struct {
	Finding check.Finding
	Key     string
}

// Classification is the disjoint bucketing of a finding list: every input
// finding appears in exactly one of Clean, Waived, or Unwaived.
//
// Clean holds findings the resolver was never asked to classify (the
// caller's pattern filter routes them here); Classify itself only fills
// Waived and Unwaived.
type Classification struct {
	Clean         []check.Finding
	Waived        []WaivedFinding
	Unwaived      []check.Finding
	UnusedWaivers []Entry
}

// Total returns |Clean| + |Waived| + |Unwaived|.
func (c *Classification) Total() int {
	return len(c.Clean) + len(c.Waived) + len(c.Unwaived)
}

// Resolver classifies findings against a waiver table. It is stateless
// between calls and safe for concurrent use.
type Resolver struct {
	strategy string
	opts     match.Options
	logger   *slog.Logger
}

// NewResolver creates a resolver with the given waiver lookup strategy
// (check.StrategyFirstMatch or check.StrategyWordSubset) and matching
// options.
func NewResolver(strategy string, opts match.Options) *Resolver {
	if strategy == "" {
		strategy = check.StrategyFirstMatch
	}
	return &Resolver{
		strategy: strategy,
		opts:     opts,
		logger:   slog.Default().With("component", "waiver.resolver"),
	}
}

// Classify buckets findings into waived and unwaived against the table and
// computes the unused waiver entries. Classification order equals input
// finding order. A nil or empty table sends every finding to unwaived.
func (r *Resolver) Classify(findings []check.Finding, table *Table) Classification {
	var cls Classification

	matched := make(map[string]bool)
	for _, f := range findings {
		key, ok := r.lookup(f.Text(), table)
		if !ok {
			cls.Unwaived = append(cls.Unwaived, f)
			continue
		}
		matched[key] = true
		cls.Waived = append(cls.Waived, WaivedFinding{Finding: f, Key: key})
		r.logger.Debug("finding waived",
			"finding", f.Name,
			"waiver_key", key,
		)
	}

	if table != nil {
		for _, e := range table.Entries() {
			if !matched[e.Key] {
				cls.UnusedWaivers = append(cls.UnusedWaivers, e)
			}
		}
	}

	return cls
}

// lookup runs the configured waiver lookup for one finding text.
func (r *Resolver) lookup(text string, table *Table) (string, bool) {
	if table == nil || table.Len() == 0 {
		return "", false
	}
	if r.strategy == check.StrategyWordSubset {
		return match.WordSubsetMatch(text, table.Keys(), r.opts)
	}
	return match.FirstMatch(text, table.Keys(), r.opts)
}
