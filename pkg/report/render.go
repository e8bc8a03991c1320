package report

import (
	"fmt"
	"io"
)

// Render writes a CheckResult as the lines of a structured text report:
// a header with mode, value, and verdict, then every group in identifier
// order with its items indented beneath it.
func Render(w io.Writer, r *CheckResult) error {
	verdict := "PASS"
	if !r.IsPass {
		verdict = "FAIL"
	}
	if r.Check != "" {
		if _, err := fmt.Fprintf(w, "Check: %s\n", r.Check); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Mode: %d (%s)  Value: %s  Result: %s\n",
		int(r.Mode), r.Mode, r.Value, verdict); err != nil {
		return err
	}

	for _, id := range r.GroupIDs() {
		g := r.Groups[id]
		if _, err := fmt.Fprintf(w, "%s: %s\n", id, g.Description); err != nil {
			return err
		}
		for _, item := range g.Items {
			if _, err := fmt.Fprintf(w, "  - %s\n", item); err != nil {
				return err
			}
		}
	}
	return nil
}
