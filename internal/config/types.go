package config

import (
	"time"

	"github.com/eddo81/wpkit/pkg/models"
)

// Config is the root of the wpkit defaults file. Command-line flags
// override every value.
type Config struct {
	Author      AuthorConfig   `yaml:"author"`
	Features    FeaturesConfig `yaml:"features"`
	Entrypoints []string       `yaml:"entrypoints"`
	Install     InstallConfig  `yaml:"install"`
	Git         GitConfig      `yaml:"git"`
	Clone       CloneConfig    `yaml:"clone"`
	System      SystemConfig   `yaml:"system"`
}

// AuthorConfig pre-fills the author prompts.
type AuthorConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// FeaturesConfig toggles the optional parts of the boilerplate.
type FeaturesConfig struct {
	Tailwind     bool `yaml:"tailwind"`
	Readme       bool `yaml:"readme"`
	License      bool `yaml:"license"`
	EditorConfig bool `yaml:"editorconfig"`
}

// Flags returns the enabled features in a stable order.
func (f FeaturesConfig) Flags() []models.FeatureFlag {
	flags := make([]models.FeatureFlag, 0, 4)
	if f.Tailwind {
		flags = append(flags, models.FeatureTailwind)
	}
	if f.Readme {
		flags = append(flags, models.FeatureReadme)
	}
	if f.License {
		flags = append(flags, models.FeatureLicense)
	}
	if f.EditorConfig {
		flags = append(flags, models.FeatureEditorConfig)
	}
	return flags
}

// InstallConfig controls the dependency installation step.
type InstallConfig struct {
	Enabled bool   `yaml:"enabled"`
	Command string `yaml:"command"` // split on whitespace, no shell quoting
}

// GitConfig controls the repository initialization step.
type GitConfig struct {
	Init bool `yaml:"init"`
}

// CloneConfig selects the clone variant when URL is set.
type CloneConfig struct {
	URL string `yaml:"url"`
}

// SystemConfig holds process-wide settings.
type SystemConfig struct {
	LogLevel       string        `yaml:"log_level"`
	NoColor        bool          `yaml:"no_color"`
	CommandTimeout time.Duration `yaml:"command_timeout"` // zero means no timeout
}
