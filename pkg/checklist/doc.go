/*
Package checklist runs a configured checklist: it loads the findings file
of each check, evaluates every check through the report builder, and
collects the results into a run summary.

Checks are independent; the runner evaluates them concurrently under a
configurable parallelism bound while preserving checklist order in the
results. Each run carries a unique run identifier for history records and
logs.

Watch mode wraps the runner with a debounced fsnotify watcher that
re-runs the checklist whenever the configuration file or a findings file
changes.
*/
package checklist
