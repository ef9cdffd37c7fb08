package shell

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the shell package.
var (
	// ErrCommandSpawn indicates the executable was missing or could not be started.
	ErrCommandSpawn = errors.New("shell: command could not be started")

	// ErrCommandFailed indicates the command ran and exited unsuccessfully.
	ErrCommandFailed = errors.New("shell: command failed")

	// ErrEmptyCommand indicates a command string with no program name.
	ErrEmptyCommand = errors.New("shell: empty command")
)

// CommandSpawnError reports a command that never started.
type CommandSpawnError struct {
	Command string
	Err     error
}

func (e *CommandSpawnError) Error() string {
	return fmt.Sprintf("start %q: %v", e.Command, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *CommandSpawnError) Unwrap() []error { return []error{ErrCommandSpawn, e.Err} }

// CommandFailedError reports a command that exited non-zero or was killed.
// Err is set when the failure came from the context, e.g. a timeout.
type CommandFailedError struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *CommandFailedError) Error() string {
	msg := fmt.Sprintf("%q exited with code %d", e.Command, e.ExitCode)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Unwrap exposes the sentinel and, when present, the context error.
func (e *CommandFailedError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrCommandFailed, e.Err}
	}
	return []error{ErrCommandFailed}
}
