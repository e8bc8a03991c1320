// Package report aggregates classified findings into the structured,
// severity-tagged result of a single check.
//
// The Builder composes the mode detector (pkg/check), the pattern matcher
// (pkg/match), and the waiver resolver (pkg/waiver) by explicit injection.
// It buckets findings into groups keyed by issue category, assigns stable
// group identifiers (ERROR01, INFO01, WARN01, ...), computes the numeric
// summary value and the pass/fail verdict, and renders the item strings the
// report writer consumes. Results are built once and never mutated.
package report
