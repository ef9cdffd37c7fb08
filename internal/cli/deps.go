// Package cli provides the Cobra command tree for wpkit. This file defines
// the Dependencies struct (Composition Root) that wires the config, the
// filesystem, the command runner and the terminal UI together.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/eddo81/wpkit/internal/config"
	"github.com/eddo81/wpkit/internal/filesystem"
	"github.com/eddo81/wpkit/internal/shell"
	"github.com/eddo81/wpkit/internal/ui"
)

// Dependencies holds the services used by CLI commands.
type Dependencies struct {
	Config   *config.Config
	FS       filesystem.FileSystem
	Runner   shell.Runner
	Theme    *ui.Theme
	Headless *ui.HeadlessManager
	Logger   *slog.Logger
}

// deps is the dependencies instance of the running command, set by
// InitDependencies.
var deps *Dependencies

// newRunner builds the external command runner. Tests replace it.
var newRunner = func(logger *slog.Logger) shell.Runner {
	return shell.NewExecRunner(shell.WithLogger(logger))
}

// newFileSystem builds the filesystem commands write through. Tests replace it.
var newFileSystem = func() filesystem.FileSystem {
	return filesystem.NewOSFileSystem()
}

// InitDependencies loads the config, applies the persistent flags and
// wires the dependencies. It runs before every command.
func InitDependencies(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewLoader().Load(getStringFlag(cmd, "config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if level := getStringFlag(cmd, "log-level"); level != "" {
		cfg.System.LogLevel = level
	}
	if getBoolFlag(cmd, "no-color") {
		cfg.System.NoColor = true
	}
	level, err := config.ParseLogLevel(cfg.System.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), level)
	slog.SetDefault(logger)

	deps = &Dependencies{
		Config:   cfg,
		FS:       newFileSystem(),
		Runner:   newRunner(logger),
		Theme:    ui.NewTheme(cfg.System.NoColor),
		Headless: ui.NewHeadlessManager(),
		Logger:   logger,
	}
	return nil
}

// newLogger creates the process logger: text on stderr at level.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// getStringSliceFlag retrieves a string slice flag value from the command.
func getStringSliceFlag(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil
	}
	return val
}
