package waiver

import (
	"strings"

	"halcyon-eda/signoff/pkg/check"
)

// Entry is one normalized waiver table entry.
type Entry struct {
	Key    string `json:"key"`
	Reason string `json:"reason,omitempty"`
}

// Table is an ordered key -> reason waiver table built once per check run.
// Keys are unique; a duplicate key overwrites the earlier reason but keeps
// the original declaration position, so lookup order stays deterministic.
type Table struct {
	keys    []string
	reasons map[string]string
}

// NewTable normalizes declared waive items into a Table. An item with an
// empty key is a configuration error.
func NewTable(items []check.WaiverItem) (*Table, error) {
	t := &Table{reasons: make(map[string]string, len(items))}
	for _, item := range items {
		key := strings.TrimSpace(item.Key)
		if key == "" {
			return nil, &check.ConfigurationError{
				Field:   "waivers.waive_items",
				Message: "waive item has an empty key",
			}
		}
		if _, seen := t.reasons[key]; !seen {
			t.keys = append(t.keys, key)
		}
		t.reasons[key] = strings.TrimSpace(item.Reason)
	}
	return t, nil
}

// Len returns the number of distinct keys.
func (t *Table) Len() int {
	return len(t.keys)
}

// Keys returns the table keys in declaration order. The returned slice is
// shared; callers must not mutate it.
func (t *Table) Keys() []string {
	return t.keys
}

// Reason returns the declared justification for a key, or "" when the key
// is unknown or carries no reason.
func (t *Table) Reason(key string) string {
	return t.reasons[key]
}

// Entries returns the table as entries in declaration order.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.keys))
	for _, k := range t.keys {
		entries = append(entries, Entry{Key: k, Reason: t.reasons[k]})
	}
	return entries
}
