package template

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/eddo81/wpkit/internal/defs"
	"github.com/eddo81/wpkit/internal/filesystem"
	"github.com/eddo81/wpkit/pkg/models"
)

// Materializer creates a project tree from a template manifest.
type Materializer interface {
	// Materialize creates every planned file under root and returns one
	// result per file attempted. It stops at the first failure and leaves
	// what was already written in place; the returned results end with
	// the failing file.
	Materialize(ctx context.Context, m Manifest, cfg models.ProjectConfig, root string) ([]models.StepResult, error)
}

// materializer is the concrete implementation of Materializer.
type materializer struct {
	fsys     fs.FS
	out      filesystem.FileSystem
	renderer Renderer
	ctxOpts  []ContextOption
	logger   *slog.Logger
}

// MaterializerOption configures a Materializer.
type MaterializerOption func(*materializer)

// WithLogger sets the logger used for per-file debug output.
func WithLogger(l *slog.Logger) MaterializerOption {
	return func(m *materializer) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithContextOptions adds options applied to every render context.
func WithContextOptions(opts ...ContextOption) MaterializerOption {
	return func(m *materializer) { m.ctxOpts = append(m.ctxOpts, opts...) }
}

// NewMaterializer creates a Materializer reading templates from fsys and
// writing through out. In production fsys comes from go:embed or a cloned
// template repository; in tests use testing/fstest.MapFS.
func NewMaterializer(fsys fs.FS, out filesystem.FileSystem, opts ...MaterializerOption) Materializer {
	m := &materializer{
		fsys:     fsys,
		out:      out,
		renderer: NewRenderer(fsys, out),
		logger:   slog.Default().With("module", "template.materializer"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Materialize creates directories first, then files in planned order.
func (m *materializer) Materialize(ctx context.Context, manifest Manifest, cfg models.ProjectConfig, root string) ([]models.StepResult, error) {
	root = filepath.Clean(root)

	items, err := Plan(manifest, cfg)
	if err != nil {
		return nil, err
	}

	if err := m.out.MkdirAll(root, defs.DirPerm); err != nil {
		return nil, &TemplateWriteError{Path: root, Err: err}
	}
	for _, dir := range Directories(items) {
		abs := filepath.Join(root, filepath.FromSlash(dir))
		if err := m.out.MkdirAll(abs, defs.DirPerm); err != nil {
			return nil, &TemplateWriteError{Path: abs, Err: err}
		}
	}

	base := NewTemplateContext(cfg, m.ctxOpts...)
	results := make([]models.StepResult, 0, len(items))

	for _, it := range items {
		// Check context cancellation before each file
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		err := m.materializeItem(root, it, base)
		results = append(results, models.StepResult{Name: it.Dest, Succeeded: err == nil, Err: err})
		if err != nil {
			m.logger.Debug("materialize failed", "file", it.Dest, "error", err)
			return results, fmt.Errorf("materialize %s: %w", it.Dest, err)
		}
		m.logger.Debug("materialized", "file", it.Dest, "kind", it.Kind)
	}

	return results, nil
}

func (m *materializer) materializeItem(root string, it WorkItem, base *TemplateContext) error {
	if err := validateDeployPath(root, it.Dest); err != nil {
		return err
	}
	dest := filepath.Join(root, filepath.FromSlash(it.Dest))

	switch it.Kind {
	case KindRender:
		return m.renderer.Render(it.Source, dest, base.ForEntry(it.Entrypoint, it.Overrides))
	case KindCopy:
		content, err := fs.ReadFile(m.fsys, it.Source)
		if err != nil {
			return &TemplateReadError{Source: it.Source, Err: err}
		}
		return writeNewFile(m.out, dest, content)
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidManifest, it.Kind)
	}
}

// validateDeployPath ensures a destination path does not escape projectRoot.
func validateDeployPath(projectRoot, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) || strings.HasPrefix(relPath, "/") {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absProjectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}

	absPath := filepath.Join(absProjectRoot, cleaned)
	if !strings.HasPrefix(absPath, absProjectRoot+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q escapes project root", ErrPathTraversal, relPath)
	}
	return nil
}
