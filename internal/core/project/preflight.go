package project

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/eddo81/wpkit/internal/filesystem"
	"github.com/eddo81/wpkit/internal/shell"
)

// probeTimeout bounds each "<tool> --version" call.
const probeTimeout = 10 * time.Second

// PreflightChecker verifies that a run can start. It never writes.
type PreflightChecker struct {
	fs     filesystem.FileSystem
	runner shell.Runner
	logger *slog.Logger
}

// NewPreflightChecker creates a PreflightChecker. A nil logger discards output.
func NewPreflightChecker(fsys filesystem.FileSystem, runner shell.Runner, logger *slog.Logger) *PreflightChecker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &PreflightChecker{fs: fsys, runner: runner, logger: logger}
}

// Check fails with *DestinationExistsError when anything is present at
// root. Otherwise every tool is probed and each unavailable one is
// reported as a *ToolUnavailableError, joined into one error.
func (p *PreflightChecker) Check(ctx context.Context, root string, tools []string) error {
	if p.fs.Exists(root) {
		p.logger.Debug("destination exists", "root", root)
		return &DestinationExistsError{Path: root}
	}

	var errs []error
	for _, tool := range tools {
		res, err := p.runner.Run(ctx, shell.Command{
			Name:    tool,
			Args:    []string{"--version"},
			Timeout: probeTimeout,
		})
		if err != nil {
			p.logger.Debug("tool unavailable", "tool", tool, "error", err)
			errs = append(errs, &ToolUnavailableError{Tool: tool, Err: err})
			continue
		}
		p.logger.Debug("tool available", "tool", tool, "version", firstLine(res.Stdout))
	}
	return errors.Join(errs...)
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' || r == '\r' {
			return s[:i]
		}
	}
	return s
}
