package check

import (
	"errors"
	"fmt"
)

// ErrAmbiguousMode indicates a requirement/waiver combination that matches
// none of the four evaluation modes.
var ErrAmbiguousMode = errors.New("configuration matches no evaluation mode")

// ConfigurationError indicates malformed or contradictory check
// configuration. It is terminal and non-retryable for the one check it
// names; other checks in the same run are unaffected.
type ConfigurationError struct {
	// Check is the check name, when known at the point of failure.
	Check string

	// Field is the dotted configuration field the error refers to
	// (e.g. "requirements.pattern_items").
	Field string

	Message string
	Cause   error
}

// Error returns the error message.
func (e *ConfigurationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	if e.Check != "" {
		msg = fmt.Sprintf("check %q: %s", e.Check, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a ConfigurationError for a field.
func NewConfigurationError(field, message string) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: message}
}

// IsConfigurationError reports whether err is (or wraps) a
// ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
