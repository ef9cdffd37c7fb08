package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eddo81/wpkit/internal/defs"
)

// EnvConfigPath names the environment variable that overrides the
// config file location.
const EnvConfigPath = "WPKIT_CONFIG"

// Loader reads the wpkit config file.
type Loader struct {
	getenv  func(string) string
	homeDir func() (string, error)
	logger  *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithGetenv overrides environment lookup (used for testing).
func WithGetenv(fn func(string) string) LoaderOption {
	return func(l *Loader) { l.getenv = fn }
}

// WithHomeDir overrides home directory lookup (used for testing).
func WithHomeDir(fn func() (string, error)) LoaderOption {
	return func(l *Loader) { l.homeDir = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a new Loader instance.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		getenv:  os.Getenv,
		homeDir: os.UserHomeDir,
		logger:  slog.Default().With("module", "config"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path resolves the config file location: $WPKIT_CONFIG, then
// $XDG_CONFIG_HOME/wpkit/config.yaml, then ~/.config/wpkit/config.yaml.
func (l *Loader) Path() (string, error) {
	if p := l.getenv(EnvConfigPath); p != "" {
		return filepath.Clean(p), nil
	}
	if xdg := l.getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, defs.AppDirName, defs.ConfigYAML), nil
	}
	home, err := l.homeDir()
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return filepath.Join(home, ".config", defs.AppDirName, defs.ConfigYAML), nil
}

// Load reads the config at path, or at the resolved default location when
// path is empty. A missing default file yields the compiled defaults; a
// missing explicit file is ErrConfigNotFound. Environment overrides are
// applied and the result is validated.
func (l *Loader) Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		resolved, err := l.Path()
		if err != nil {
			return nil, err
		}
		path = resolved
	}

	cfg := NewDefaultConfig()
	loaded, err := loadYAMLFile(path, cfg)
	if err != nil {
		return nil, err
	}
	if !loaded {
		if explicit {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		l.logger.Debug("config file not found, using defaults", "path", path)
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg, l.getenv)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies WPKIT_LOG_LEVEL and the NO_COLOR convention.
func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if v := getenv("WPKIT_LOG_LEVEL"); v != "" {
		cfg.System.LogLevel = strings.ToLower(v)
	}
	if v := getenv("WPKIT_NO_COLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.System.NoColor = b
		}
	}
	if getenv("NO_COLOR") != "" {
		cfg.System.NoColor = true
	}
}

// loadYAMLFile unmarshals the file at path over target. Returns (true, nil)
// if the file was found and parsed, (false, nil) if it does not exist, or
// (false, error) on failure.
func loadYAMLFile(path string, target any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w: %v", path, ErrInvalidYAML, err)
	}
	return true, nil
}
