// Package check defines the data model shared by every signoff check: the
// normalized Finding records handed over by the external log parsers, the
// declarative check configuration (requirement value, pattern items, waiver
// value, waive items), and the evaluation mode detector that selects one of
// the four fixed evaluation strategies from that configuration.
//
// The package holds no evaluation logic beyond mode detection; pattern
// matching lives in pkg/match, waiver classification in pkg/waiver, and
// result aggregation in pkg/report.
package check
