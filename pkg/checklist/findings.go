package checklist

import (
	"encoding/json"
	"fmt"
	"os"

	"halcyon-eda/signoff/pkg/check"
)

// LoadFindings reads a findings file: a JSON array of normalized finding
// records produced by an external log parser. A missing or unreadable
// file is a configuration error attributed to the check, not a clean
// empty input; a parser that produced nothing writes an empty array.
func LoadFindings(path string) ([]check.Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &check.ConfigurationError{
			Field:   "findings",
			Message: fmt.Sprintf("no input produced: cannot read findings file %q", path),
			Cause:   err,
		}
	}

	var findings []check.Finding
	if err := json.Unmarshal(data, &findings); err != nil {
		return nil, &check.ConfigurationError{
			Field:   "findings",
			Message: fmt.Sprintf("findings file %q is not a JSON finding array", path),
			Cause:   err,
		}
	}

	for i, f := range findings {
		if f.Name == "" {
			return nil, &check.ConfigurationError{
				Field:   "findings",
				Message: fmt.Sprintf("findings file %q: record %d has no name", path, i),
			}
		}
	}

	return findings, nil
}
