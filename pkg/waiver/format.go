package waiver

import "strings"

// reasonSeparator joins a rendered item and its waiver justification.
const reasonSeparator = " : "

// FormatReason renders a report item string: the base text, the waiver
// justification when one was declared, and the requested marker tag. The
// tag is never duplicated if the text already carries it, which makes the
// display-only downgrade idempotent.
func FormatReason(base, reason, tag string) string {
	out := base
	if reason != "" {
		out += reasonSeparator + reason
	}
	if tag != "" && !strings.Contains(out, tag) {
		out += " " + tag
	}
	return out
}
