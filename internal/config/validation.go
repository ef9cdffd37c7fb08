package config

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/eddo81/wpkit/internal/naming"
	"github.com/eddo81/wpkit/pkg/models"
)

// emailPattern is the address check used by the author email prompt.
var emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// logLevels maps accepted log level names to slog levels.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks the configuration for correctness and reports every
// problem at once.
func Validate(cfg *Config) error {
	var errs []ValidationError

	if cfg.Author.Email != "" {
		if err := ValidateEmail(cfg.Author.Email); err != nil {
			errs = append(errs, ValidationError{
				Field:   "author.email",
				Message: "must be a valid email address",
				Value:   cfg.Author.Email,
				Wrapped: ErrInvalidEmail,
			})
		}
	}

	errs = append(errs, validateEntrypoints(cfg.Entrypoints)...)

	if cfg.Install.Enabled && strings.TrimSpace(cfg.Install.Command) == "" {
		errs = append(errs, ValidationError{
			Field:   "install.command",
			Message: "required when install.enabled is true",
			Wrapped: ErrInvalidConfig,
		})
	}

	if url := cfg.Clone.URL; url != "" && strings.ContainsAny(url, " \t\n") {
		errs = append(errs, ValidationError{
			Field:   "clone.url",
			Message: "must not contain whitespace",
			Value:   url,
			Wrapped: ErrInvalidConfig,
		})
	}

	if _, err := ParseLogLevel(cfg.System.LogLevel); err != nil {
		errs = append(errs, ValidationError{
			Field:   "system.log_level",
			Message: "must be one of: debug, info, warn, error",
			Value:   cfg.System.LogLevel,
			Wrapped: ErrInvalidLogLevel,
		})
	}

	if cfg.System.CommandTimeout < 0 {
		errs = append(errs, ValidationError{
			Field:   "system.command_timeout",
			Message: "must not be negative",
			Value:   cfg.System.CommandTimeout,
			Wrapped: ErrInvalidConfig,
		})
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// ValidateEmail reports ErrInvalidEmail when s is not an email address.
func ValidateEmail(s string) error {
	if !emailPattern.MatchString(s) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateEntrypoint reports ErrInvalidEntrypoint unless name is already
// a dash-case, filesystem-safe identifier.
func ValidateEntrypoint(name string) error {
	if !naming.IsFilesystemSafe(name) || naming.ToDashCase(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidEntrypoint, name)
	}
	return nil
}

// ParseLogLevel converts a level name to a slog.Level. Names are
// case-insensitive.
func ParseLogLevel(s string) (slog.Level, error) {
	level, ok := logLevels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
	return level, nil
}

func validateEntrypoints(entrypoints []string) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(entrypoints))
	for i, ep := range entrypoints {
		field := fmt.Sprintf("entrypoints[%d]", i)
		if err := ValidateEntrypoint(ep); err != nil {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "must be a dash-case name such as " + models.DefaultEntrypoint + " or admin-panel",
				Value:   ep,
				Wrapped: ErrInvalidEntrypoint,
			})
			continue
		}
		if seen[ep] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "duplicate entrypoint",
				Value:   ep,
				Wrapped: ErrInvalidEntrypoint,
			})
		}
		seen[ep] = true
	}
	return errs
}
