// Package waiver builds waiver tables from declared waive items and
// classifies findings against them.
//
// Classification is a deterministic single pass: every finding lands in
// exactly one of the waived or unwaived buckets, in input order, and the
// table keys that matched no finding are reported as unused. The lookup
// itself delegates to pkg/match; the first-match strategy's declaration
// order dependency is preserved as a documented contract.
package waiver
