/*
Package history persists checklist run results for later inspection.

Every completed run stores one record per check: the detected mode, the
numeric value, the verdict, and the full report groups as JSON. The store
is backed by SQLite; retention pruning keeps the database bounded by age
and by total record count.

The Storage interface decouples consumers from the backend:

	store, err := history.NewSQLiteStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, rec := range history.RecordsFromRun(summary) {
		if err := store.Store(ctx, rec); err != nil {
			return err
		}
	}

In watch mode the retention Pruner runs on a cron schedule; the history
prune command invokes the same pruner once.
*/
package history
