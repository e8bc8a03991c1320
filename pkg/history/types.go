package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"halcyon-eda/signoff/pkg/checklist"
	"halcyon-eda/signoff/pkg/report"
)

// RunRecord is one persisted check evaluation within a checklist run.
type RunRecord struct {
	// ID uniquely identifies this record.
	ID string `json:"id"`

	// RunID groups all records of one checklist run.
	RunID string `json:"run_id"`

	// Checklist is the checklist name the run was executed for.
	Checklist string `json:"checklist,omitempty"`

	// Check is the check name.
	Check string `json:"check"`

	// Mode is the detected evaluation mode (1-4), 0 when evaluation
	// failed before mode detection.
	Mode int `json:"mode"`

	// Value is the rendered numeric summary ("N/A" for boolean modes).
	Value string `json:"value"`

	// Pass is the check verdict.
	Pass bool `json:"pass"`

	// Error is the evaluation error message, empty on success.
	Error string `json:"error,omitempty"`

	// Groups holds the report groups keyed by group identifier.
	Groups map[string]report.Group `json:"groups,omitempty"`

	// Duration is how long the check took to evaluate.
	Duration time.Duration `json:"duration_ns"`

	// CreatedAt is when the record was stored.
	CreatedAt time.Time `json:"created_at"`
}

// RecordsFromRun converts a run summary into storable records, one per
// check, in checklist order.
func RecordsFromRun(summary *checklist.RunSummary) []*RunRecord {
	now := time.Now().UTC()
	records := make([]*RunRecord, 0, len(summary.Results))
	for _, res := range summary.Results {
		rec := &RunRecord{
			ID:        uuid.New().String(),
			RunID:     summary.RunID,
			Checklist: summary.Checklist,
			Check:     res.Check,
			Error:     res.Error,
			Duration:  res.Duration,
			CreatedAt: now,
		}
		if res.Result != nil {
			rec.Mode = int(res.Result.Mode)
			rec.Value = res.Result.Value.String()
			rec.Pass = res.Result.IsPass
			rec.Groups = res.Result.Groups
		}
		records = append(records, rec)
	}
	return records
}

// Query filters run records. Zero-valued fields do not filter.
type Query struct {
	// RunID restricts results to one run.
	RunID string

	// Check restricts results to one check name.
	Check string

	// Since and Until bound the record creation time.
	Since *time.Time
	Until *time.Time

	// OnlyFailed restricts results to failing or errored checks.
	OnlyFailed bool

	// Limit caps the number of returned records (default 100).
	Limit int

	// Offset skips that many records for pagination.
	Offset int
}

// Storage persists and retrieves run records.
type Storage interface {
	// Store persists one run record.
	Store(ctx context.Context, record *RunRecord) error

	// Query retrieves records matching the filters, newest first.
	Query(ctx context.Context, query *Query) ([]*RunRecord, error)

	// Count returns the number of records matching the filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes records matching the filters and returns how many
	// were removed.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases backend resources.
	Close() error
}
