package config

import (
	"github.com/eddo81/wpkit/pkg/models"
)

// Default value constants.
const (
	DefaultLogLevel       = "warn"
	DefaultInstallCommand = "npm install"
)

// NewDefaultConfig returns the compiled defaults: readme, license and
// editorconfig on, tailwind off, a single "main" entrypoint, and no
// install, git or clone step.
func NewDefaultConfig() *Config {
	return &Config{
		Features: FeaturesConfig{
			Readme:       true,
			License:      true,
			EditorConfig: true,
		},
		Entrypoints: []string{models.DefaultEntrypoint},
		Install: InstallConfig{
			Command: DefaultInstallCommand,
		},
		System: SystemConfig{
			LogLevel: DefaultLogLevel,
		},
	}
}

// applyDefaults fills values a file left empty.
func applyDefaults(cfg *Config) {
	if len(cfg.Entrypoints) == 0 {
		cfg.Entrypoints = []string{models.DefaultEntrypoint}
	}
	if cfg.Install.Command == "" {
		cfg.Install.Command = DefaultInstallCommand
	}
	if cfg.System.LogLevel == "" {
		cfg.System.LogLevel = DefaultLogLevel
	}
}
