package config

import (
	"errors"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/eddo81/wpkit/pkg/models"
)

func TestValidateDefaultConfig(t *testing.T) {
	t.Parallel()

	if err := Validate(NewDefaultConfig()); err != nil {
		t.Errorf("Validate() expected no error for defaults, got: %v", err)
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email string
		valid bool
	}{
		{"jane@example.com", true},
		{"jane.doe@example.co.uk", true},
		{"jane-doe@mail.example.org", true},
		{"jane_doe1@example.io", true},
		{"jane", false},
		{"jane@", false},
		{"@example.com", false},
		{"jane@example", false},
		{"jane@example.technology", false},
		{"jane doe@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			t.Parallel()
			err := ValidateEmail(tt.email)
			if tt.valid && err != nil {
				t.Errorf("ValidateEmail(%q) unexpected error: %v", tt.email, err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidEmail) {
				t.Errorf("ValidateEmail(%q) = %v, want ErrInvalidEmail", tt.email, err)
			}
		})
	}
}

func TestValidateEntrypoint(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"main", "admin-panel", "page2"} {
		if err := ValidateEntrypoint(name); err != nil {
			t.Errorf("ValidateEntrypoint(%q) unexpected error: %v", name, err)
		}
	}
	for _, name := range []string{"", "Main", "admin panel", "../x", "a_b", "con"} {
		if err := ValidateEntrypoint(name); !errors.Is(err, ErrInvalidEntrypoint) {
			t.Errorf("ValidateEntrypoint(%q) = %v, want ErrInvalidEntrypoint", name, err)
		}
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	cfg.Author.Email = "nope"
	cfg.Entrypoints = []string{"main", "main", "Bad Name"}
	cfg.Install.Enabled = true
	cfg.Install.Command = "  "
	cfg.Clone.URL = "https://example.com/a b.git"
	cfg.System.LogLevel = "verbose"
	cfg.System.CommandTimeout = -time.Second

	err := Validate(cfg)
	var ve *ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationErrors, got %T", err)
	}

	var fields []string
	for _, e := range ve.Errors {
		fields = append(fields, e.Field)
	}
	want := []string{
		"author.email",
		"entrypoints[1]",
		"entrypoints[2]",
		"install.command",
		"clone.url",
		"system.log_level",
		"system.command_timeout",
	}
	if !slices.Equal(fields, want) {
		t.Errorf("fields = %v, want %v", fields, want)
	}

	for _, target := range []error{ErrInvalidConfig, ErrInvalidEmail, ErrInvalidEntrypoint, ErrInvalidLogLevel} {
		if !errors.Is(err, target) {
			t.Errorf("errors.Is(err, %v) = false", target)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		"INFO":   slog.LevelInfo,
		" warn ": slog.LevelWarn,
		"error":  slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLogLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLogLevel("trace"); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("ParseLogLevel(trace) = %v, want ErrInvalidLogLevel", err)
	}
}

func TestFeaturesConfigFlags(t *testing.T) {
	t.Parallel()

	got := NewDefaultConfig().Features.Flags()
	want := []models.FeatureFlag{models.FeatureReadme, models.FeatureLicense, models.FeatureEditorConfig}
	if !slices.Equal(got, want) {
		t.Errorf("Flags() = %v, want %v", got, want)
	}

	all := FeaturesConfig{Tailwind: true, Readme: true, License: true, EditorConfig: true}.Flags()
	if len(all) != 4 || all[0] != models.FeatureTailwind {
		t.Errorf("Flags() = %v", all)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	e := &ValidationError{Field: "author.email", Message: "must be a valid email address", Value: "x"}
	want := `validation error: field "author.email": must be a valid email address (got: x)`
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}

	empty := &ValidationErrors{}
	if empty.Error() != "validation: no errors" {
		t.Errorf("Error() = %q", empty.Error())
	}
}
