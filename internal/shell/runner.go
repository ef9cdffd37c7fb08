// Package shell runs external programs such as git and npm for the
// scaffolding pipeline. Commands are executed directly, never through a
// shell interpreter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Command describes one external program invocation.
type Command struct {
	Name    string
	Args    []string
	Dir     string        // working directory; empty means the current one
	Timeout time.Duration // zero means no timeout beyond the caller's context
}

// String renders the command line for messages.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// CommandResult holds the captured output of a finished command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// ParseCommand splits a command line on whitespace. Quoting is not
// interpreted.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}
	return Command{Name: fields[0], Args: fields[1:]}, nil
}

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*CommandResult, error)
}

// RunFunc adapts a function to the Runner interface (used for testing).
type RunFunc func(ctx context.Context, cmd Command) (*CommandResult, error)

// Run calls f.
func (f RunFunc) Run(ctx context.Context, cmd Command) (*CommandResult, error) {
	return f(ctx, cmd)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	lookPath func(string) (string, error)
	env      []string
	logger   *slog.Logger
}

// ExecRunnerOption configures an ExecRunner.
type ExecRunnerOption func(*ExecRunner)

// WithLogger sets the logger for command tracing.
func WithLogger(l *slog.Logger) ExecRunnerOption {
	return func(r *ExecRunner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithEnv appends KEY=VALUE pairs to every command's environment.
func WithEnv(env ...string) ExecRunnerOption {
	return func(r *ExecRunner) { r.env = append(r.env, env...) }
}

// WithLookPath overrides executable resolution (used for testing).
func WithLookPath(fn func(string) (string, error)) ExecRunnerOption {
	return func(r *ExecRunner) { r.lookPath = fn }
}

// NewExecRunner creates an ExecRunner. Commands inherit the process
// environment plus GIT_TERMINAL_PROMPT=0 so git never waits for input.
func NewExecRunner(opts ...ExecRunnerOption) *ExecRunner {
	r := &ExecRunner{
		lookPath: exec.LookPath,
		env:      []string{"GIT_TERMINAL_PROMPT=0"},
		logger:   slog.Default().With("module", "shell"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts cmd, waits for it and captures its output. A non-zero exit
// returns the result together with a *CommandFailedError.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*CommandResult, error) {
	line := cmd.String()

	path, err := r.lookPath(cmd.Name)
	if err != nil {
		return nil, &CommandSpawnError{Command: line, Err: err}
	}

	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(os.Environ(), r.env...)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	if err := c.Start(); err != nil {
		return nil, &CommandSpawnError{Command: line, Err: err}
	}
	waitErr := c.Wait()

	result := &CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	r.logger.Debug("command finished", "command", line, "dir", cmd.Dir, "duration", result.Duration)

	if waitErr == nil {
		return result, nil
	}

	result.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	}

	failed := &CommandFailedError{
		Command:  line,
		ExitCode: result.ExitCode,
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		failed.Err = ctxErr
	} else if exitErr == nil {
		failed.Err = fmt.Errorf("wait: %w", waitErr)
	}
	return result, failed
}
