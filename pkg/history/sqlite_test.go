package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"halcyon-eda/signoff/pkg/report"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	cfg := DefaultSQLiteConfig()
	cfg.Path = filepath.Join(t.TempDir(), "history.db")

	store, err := NewSQLiteStorage(cfg)
	if err != nil {
		t.Fatalf("NewSQLiteStorage failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRecord(check string, pass bool, createdAt time.Time) *RunRecord {
	return &RunRecord{
		ID:        uuid.New().String(),
		RunID:     "run-1",
		Checklist: "tapeout",
		Check:     check,
		Mode:      1,
		Value:     "N/A",
		Pass:      pass,
		Groups: map[string]report.Group{
			"INFO01": {
				Description: "no findings to classify",
				Severity:    report.SeverityInfo,
				Items:       []string{"check input contained no findings"},
			},
		},
		Duration:  25 * time.Millisecond,
		CreatedAt: createdAt,
	}
}

func TestSQLiteStoreAndQuery(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	rec := testRecord("drc:summary", true, time.Now().UTC())
	if err := store.Store(ctx, rec); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	records, err := store.Query(ctx, &Query{RunID: "run-1"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}

	got := records[0]
	if got.Check != "drc:summary" || !got.Pass || got.Value != "N/A" {
		t.Errorf("record mismatch: %+v", got)
	}
	if got.Duration != 25*time.Millisecond {
		t.Errorf("duration = %v, want 25ms", got.Duration)
	}
	group, ok := got.Groups["INFO01"]
	if !ok {
		t.Fatalf("expected INFO01 group, got %v", got.Groups)
	}
	if group.Severity != report.SeverityInfo || len(group.Items) != 1 {
		t.Errorf("group mismatch: %+v", group)
	}
}

func TestSQLiteQueryFilters(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	now := time.Now().UTC()

	records := []*RunRecord{
		testRecord("drc:summary", true, now.Add(-2*time.Hour)),
		testRecord("lint:errors", false, now.Add(-1*time.Hour)),
		testRecord("sta:setup", true, now),
	}
	for _, rec := range records {
		if err := store.Store(ctx, rec); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
	}

	t.Run("by check", func(t *testing.T) {
		got, err := store.Query(ctx, &Query{Check: "lint:errors"})
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(got) != 1 || got[0].Check != "lint:errors" {
			t.Errorf("got %d records, want the lint record", len(got))
		}
	})

	t.Run("only failed", func(t *testing.T) {
		got, err := store.Query(ctx, &Query{OnlyFailed: true})
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(got) != 1 || got[0].Check != "lint:errors" {
			t.Errorf("got %v, want only the failing record", got)
		}
	})

	t.Run("since bound", func(t *testing.T) {
		since := now.Add(-90 * time.Minute)
		got, err := store.Query(ctx, &Query{Since: &since})
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("records = %d, want 2", len(got))
		}
	})

	t.Run("newest first", func(t *testing.T) {
		got, err := store.Query(ctx, &Query{})
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("records = %d, want 3", len(got))
		}
		if got[0].Check != "sta:setup" || got[2].Check != "drc:summary" {
			t.Errorf("unexpected order: %s, %s, %s", got[0].Check, got[1].Check, got[2].Check)
		}
	})
}

func TestSQLiteCountAndDelete(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		rec := testRecord("drc:summary", true, now.Add(time.Duration(-i)*time.Hour))
		if err := store.Store(ctx, rec); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
	}

	count, err := store.Count(ctx, &Query{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}

	cutoff := now.Add(-150 * time.Minute)
	deleted, err := store.Delete(ctx, &Query{Until: &cutoff})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	count, err = store.Count(ctx, &Query{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestSQLiteStoreErroredCheck(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	rec := &RunRecord{
		ID:        uuid.New().String(),
		RunID:     "run-2",
		Check:     "broken",
		Error:     `check "broken": findings: no input produced`,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.Store(ctx, rec); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, err := store.Query(ctx, &Query{RunID: "run-2", OnlyFailed: true})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	if got[0].Error == "" {
		t.Error("expected the error message to round-trip")
	}
	if got[0].Groups != nil {
		t.Errorf("expected nil groups, got %v", got[0].Groups)
	}
}
