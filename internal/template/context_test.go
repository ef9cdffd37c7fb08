package template

import (
	"testing"

	"github.com/eddo81/wpkit/pkg/models"
)

func TestNewTemplateContext(t *testing.T) {
	cfg := newTestConfig(t, []string{"main", "admin"}, models.FeatureTailwind, models.FeatureLicense)
	ctx := NewTemplateContext(cfg, WithVersion("v1.2.3"), WithVars(map[string]any{"port": 9000}))

	if ctx.FolderName != "demo-site" {
		t.Errorf("FolderName = %q, want %q", ctx.FolderName, "demo-site")
	}
	if ctx.PackageName != "demo_site" {
		t.Errorf("PackageName = %q, want %q", ctx.PackageName, "demo_site")
	}
	if ctx.Author != "Jane Doe <jane@example.com>" {
		t.Errorf("Author = %q", ctx.Author)
	}
	if !ctx.Tailwind || !ctx.License || ctx.Readme || ctx.EditorConfig {
		t.Errorf("feature booleans = %v/%v/%v/%v", ctx.Tailwind, ctx.License, ctx.Readme, ctx.EditorConfig)
	}
	if ctx.Version != "v1.2.3" {
		t.Errorf("Version = %q, want v1.2.3", ctx.Version)
	}
	if ctx.Entry != "" {
		t.Errorf("Entry = %q, want empty outside per-entrypoint renders", ctx.Entry)
	}
	if ctx.Vars["port"] != 9000 {
		t.Errorf("Vars[port] = %v", ctx.Vars["port"])
	}
}

func TestTemplateContextForEntry(t *testing.T) {
	base := NewTemplateContext(newTestConfig(t, []string{"main", "admin"}), WithVars(map[string]any{"a": 1, "b": 2}))

	got := base.ForEntry("admin", map[string]any{"b": 3})

	if got.Entry != "admin" {
		t.Errorf("Entry = %q, want admin", got.Entry)
	}
	if got.Vars["a"] != 1 || got.Vars["b"] != 3 {
		t.Errorf("Vars = %v, want a=1 b=3", got.Vars)
	}
	if base.Vars["b"] != 2 || base.Entry != "" {
		t.Error("ForEntry modified the base context")
	}

	got.Entrypoints[0] = "changed"
	if base.Entrypoints[0] != "main" {
		t.Error("ForEntry shares the Entrypoints slice")
	}
}
