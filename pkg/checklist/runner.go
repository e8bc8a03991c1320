package checklist

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"halcyon-eda/signoff/pkg/config"
	"halcyon-eda/signoff/pkg/report"
)

// Result is the outcome of one check within a run: either a built check
// result or the error that prevented evaluation. Exactly one of Result
// and Err is set.
type Result struct {
	// Check is the check name from the checklist entry.
	Check string `json:"check"`

	// Description is the free-text description from the checklist entry.
	Description string `json:"description,omitempty"`

	Result *report.CheckResult `json:"result,omitempty"`
	Err    error               `json:"-"`

	// Error carries the error message for JSON output.
	Error string `json:"error,omitempty"`

	// Duration is how long the check took to load and evaluate.
	Duration time.Duration `json:"duration_ns"`
}

// RunSummary is the outcome of one checklist run. Results appear in
// checklist declaration order regardless of evaluation order.
type RunSummary struct {
	// RunID uniquely identifies this run in logs and history records.
	RunID string `json:"run_id"`

	// Checklist is the checklist name from the configuration.
	Checklist string `json:"checklist,omitempty"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`

	Results []Result `json:"results"`
}

// AllPass reports whether every check evaluated successfully and passed.
func (s *RunSummary) AllPass() bool {
	for _, r := range s.Results {
		if r.Err != nil || r.Result == nil || !r.Result.IsPass {
			return false
		}
	}
	return true
}

// Failed returns the names of checks that failed or errored.
func (s *RunSummary) Failed() []string {
	var failed []string
	for _, r := range s.Results {
		if r.Err != nil || r.Result == nil || !r.Result.IsPass {
			failed = append(failed, r.Check)
		}
	}
	return failed
}

// Runner evaluates a checklist. Checks run concurrently under the
// configured parallelism bound.
type Runner struct {
	cfg     *config.ChecklistConfig
	metrics *Metrics
	logger  *slog.Logger

	// OnCheckDone, when set, is called after each check completes. It may
	// be called from multiple goroutines.
	OnCheckDone func(Result)
}

// NewRunner creates a Runner for a checklist configuration. Metrics may
// be nil when no collection is wanted.
func NewRunner(cfg *config.ChecklistConfig, metrics *Metrics) *Runner {
	return &Runner{
		cfg:     cfg,
		metrics: metrics,
		logger:  slog.Default().With("component", "checklist.runner"),
	}
}

// Run evaluates every check in the checklist and returns the run summary.
// Per-check failures (unreadable findings, configuration errors) are
// captured in the corresponding Result; Run itself only fails when the
// context is cancelled before the run completes.
func (r *Runner) Run(ctx context.Context) (*RunSummary, error) {
	started := time.Now()
	summary := &RunSummary{
		RunID:     uuid.New().String(),
		Checklist: r.cfg.Name,
		StartedAt: started,
		Results:   make([]Result, len(r.cfg.Checks)),
	}

	r.logger.Info("checklist run started",
		"run_id", summary.RunID,
		"checks", len(r.cfg.Checks),
		"parallelism", r.parallelism(),
	)

	sem := make(chan struct{}, r.parallelism())
	var wg sync.WaitGroup

	for i := range r.cfg.Checks {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			res := r.runCheck(&r.cfg.Checks[i])
			summary.Results[i] = res
			if r.OnCheckDone != nil {
				r.OnCheckDone(res)
			}
		}(i)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary.Duration = time.Since(started)
	r.observe(summary)

	r.logger.Info("checklist run finished",
		"run_id", summary.RunID,
		"pass", summary.AllPass(),
		"duration_ms", summary.Duration.Milliseconds(),
	)

	return summary, nil
}

// runCheck loads one check's findings and evaluates it.
func (r *Runner) runCheck(entry *config.CheckEntry) Result {
	started := time.Now()
	res := Result{Check: entry.Name, Description: entry.Description}

	findings, err := LoadFindings(entry.Findings)
	if err == nil {
		res.Result, err = report.ForConfig(&entry.Config).Build(entry.Name, &entry.Config, findings)
	}
	if err != nil {
		res.Err = err
		res.Error = err.Error()
		r.logger.Error("check evaluation failed", "check", entry.Name, "error", err)
	}

	res.Duration = time.Since(started)
	return res
}

// observe records run metrics, if a collector is attached.
func (r *Runner) observe(summary *RunSummary) {
	if r.metrics == nil {
		return
	}
	r.metrics.ObserveRun(summary)
}

func (r *Runner) parallelism() int {
	if r.cfg.Parallelism > 0 {
		return r.cfg.Parallelism
	}
	return config.DefaultParallelism
}
