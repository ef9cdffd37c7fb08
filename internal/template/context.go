package template

import (
	"maps"

	"github.com/eddo81/wpkit/pkg/models"
	"github.com/eddo81/wpkit/pkg/version"
)

// TemplateContext provides data for rendering project templates.
// All fields are exported for use with Go's text/template package.
type TemplateContext struct {
	// Project
	ProjectName string
	FolderName  string // dash-case, used as the npm package name
	PackageName string // snake_case
	Description string

	// Author
	AuthorName  string
	AuthorEmail string
	Author      string // "Name <email>"
	Year        int

	// Features
	Tailwind     bool
	Readme       bool
	License      bool
	EditorConfig bool

	// Entrypoints lists every bundle entry; Entry is the one being
	// rendered by a per-entrypoint template and empty otherwise.
	Entrypoints []string
	Entry       string

	// Vars holds manifest entry overrides. Missing keys fail the render.
	Vars map[string]any

	// Meta
	Version string // wpkit version
}

// ContextOption configures a TemplateContext.
type ContextOption func(*TemplateContext)

// NewTemplateContext derives the render context from cfg, then applies
// any provided options.
func NewTemplateContext(cfg models.ProjectConfig, opts ...ContextOption) *TemplateContext {
	author := cfg.Author()
	features := cfg.Features()
	ctx := &TemplateContext{
		ProjectName:  cfg.ProjectName(),
		FolderName:   cfg.FolderName(),
		PackageName:  cfg.PackageName(),
		Description:  cfg.Description(),
		AuthorName:   author.Name,
		AuthorEmail:  author.Email,
		Author:       author.Display(),
		Year:         cfg.Year(),
		Tailwind:     features.Has(models.FeatureTailwind),
		Readme:       features.Has(models.FeatureReadme),
		License:      features.Has(models.FeatureLicense),
		EditorConfig: features.Has(models.FeatureEditorConfig),
		Entrypoints:  cfg.Entrypoints(),
		Vars:         map[string]any{},
		Version:      version.GetVersion(),
	}

	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// WithVersion overrides the reported wpkit version.
func WithVersion(v string) ContextOption {
	return func(c *TemplateContext) { c.Version = v }
}

// WithVars merges vars into the context variables.
func WithVars(vars map[string]any) ContextOption {
	return func(c *TemplateContext) {
		maps.Copy(c.Vars, vars)
	}
}

// ForEntry returns a copy of c for one manifest entry: entry is the
// entrypoint being rendered (may be empty) and overrides are merged over
// the shared variables.
func (c *TemplateContext) ForEntry(entry string, overrides map[string]any) *TemplateContext {
	out := *c
	out.Entry = entry
	out.Entrypoints = append([]string(nil), c.Entrypoints...)
	out.Vars = maps.Clone(c.Vars)
	if out.Vars == nil {
		out.Vars = map[string]any{}
	}
	maps.Copy(out.Vars, overrides)
	return &out
}
