// Package match implements the string matching strategies used by the
// signoff engine: regex-tagged patterns, shell-style wildcards, exact
// comparison, and the ordered waiver lookups (first-match and word-subset).
//
// All functions are pure and stateless. Patterns are never cached between
// calls; a pattern that fails to compile simply does not match. Matching is
// case-insensitive unless Options.CaseSensitive is set.
package match
