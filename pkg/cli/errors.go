package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the signoff command.
const (
	// ExitOK means every check passed.
	ExitOK = 0

	// ExitChecksFailed means the checklist ran but at least one check
	// failed.
	ExitChecksFailed = 1

	// ExitUsage means a configuration or usage error prevented the
	// checklist from running.
	ExitUsage = 2
)

// ErrChecksFailed is returned by the run command when the checklist
// completed with at least one failing check.
var ErrChecksFailed = errors.New("one or more checks failed")

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps a command error onto the process exit code. A failing
// checklist is a distinct, scriptable outcome; every other error is
// treated as a configuration or usage problem.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, ErrChecksFailed) {
		return ExitChecksFailed
	}
	return ExitUsage
}
