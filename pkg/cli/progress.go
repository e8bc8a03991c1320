package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// ProgressReporter reports per-check completion during a checklist run.
type ProgressReporter interface {
	Start(total int64)
	Update(done int64)
	Finish()
	Error(err error)
}

// CheckProgress renders a single-line bar, redrawn in place as checks
// complete. Safe for concurrent Update calls from runner workers.
type CheckProgress struct {
	mu      sync.Mutex
	total   int64
	done    int64
	started time.Time
	w       io.Writer
}

// NewProgressReporter creates a reporter writing to w, or os.Stderr when
// w is nil so the bar never interleaves with the report on stdout.
func NewProgressReporter(w io.Writer) ProgressReporter {
	if w == nil {
		w = os.Stderr
	}
	return &CheckProgress{w: w}
}

// Start resets the bar for a run of total checks.
func (p *CheckProgress) Start(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.done = 0
	p.started = time.Now()
	p.render()
}

// Update redraws the bar with done completed checks.
func (p *CheckProgress) Update(done int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = done
	p.render()
}

// Finish draws the completed bar and terminates the line.
func (p *CheckProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = p.total
	p.render()
	fmt.Fprintln(p.w)
}

// Error breaks out of the bar line and reports err.
func (p *CheckProgress) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, "\n✗ %v\n", err)
}

func (p *CheckProgress) render() {
	if p.total == 0 {
		return
	}

	const width = 30
	filled := int(float64(width) * float64(p.done) / float64(p.total))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	rate := 0.0
	if elapsed := time.Since(p.started).Seconds(); elapsed > 0 {
		rate = float64(p.done) / elapsed
	}

	fmt.Fprintf(p.w, "\r[%s] %d/%d checks (%.1f/s)", bar, p.done, p.total, rate)
}
