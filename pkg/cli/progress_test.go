package cli

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestCheckProgress(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(4)
	progress.Update(2)
	progress.Finish()

	out := buf.String()
	if !strings.Contains(out, "2/4 checks") {
		t.Errorf("output missing intermediate state:\n%q", out)
	}
	if !strings.Contains(out, "4/4 checks") {
		t.Errorf("output missing completed state:\n%q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Finish should terminate the bar line")
	}
}

func TestCheckProgressZeroTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(0)
	progress.Update(0)
	progress.Finish()

	// Only the terminating newline; no bar for an empty checklist.
	if got := buf.String(); got != "\n" {
		t.Errorf("output = %q, want a bare newline", got)
	}
}

func TestCheckProgressError(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(2)
	progress.Error(errors.New("findings file vanished"))

	if !strings.Contains(buf.String(), "findings file vanished") {
		t.Errorf("output missing error text:\n%q", buf.String())
	}
}

func TestCheckProgressConcurrentUpdates(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				progress.Update(int64(n*10 + j))
			}
		}(i)
	}
	wg.Wait()
	progress.Finish()

	if !strings.Contains(buf.String(), "100/100 checks") {
		t.Errorf("output missing completed state:\n%q", buf.String())
	}
}

func TestNewProgressReporterNilWriter(t *testing.T) {
	progress := NewProgressReporter(nil)
	if progress == nil {
		t.Fatal("NewProgressReporter(nil) returned nil")
	}
}
