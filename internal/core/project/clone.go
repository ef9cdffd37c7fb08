package project

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	gitignore "github.com/denormal/go-gitignore"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/eddo81/wpkit/internal/defs"
	"github.com/eddo81/wpkit/internal/filesystem"
	"github.com/eddo81/wpkit/internal/shell"
)

// tempIDAlphabet keeps the temp directory name lowercase and portable.
const tempIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// defaultIgnorePatterns are never materialized from a cloned repository.
var defaultIgnorePatterns = []string{".git/", "node_modules/", defs.IgnoreFile}

// CloneSource fetches a template tree from a remote git repository into a
// temporary directory inside the project root.
type CloneSource struct {
	fs      filesystem.FileSystem
	runner  shell.Runner
	timeout time.Duration
	newID   func() (string, error)
	logger  *slog.Logger
}

// CloneOption configures a CloneSource.
type CloneOption func(*CloneSource)

// WithCloneTimeout bounds the git clone call.
func WithCloneTimeout(d time.Duration) CloneOption {
	return func(c *CloneSource) { c.timeout = d }
}

// WithCloneID overrides the temp directory suffix generator (used for testing).
func WithCloneID(fn func() (string, error)) CloneOption {
	return func(c *CloneSource) { c.newID = fn }
}

// WithCloneLogger sets the logger.
func WithCloneLogger(l *slog.Logger) CloneOption {
	return func(c *CloneSource) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCloneSource creates a CloneSource.
func NewCloneSource(fsys filesystem.FileSystem, runner shell.Runner, opts ...CloneOption) *CloneSource {
	c := &CloneSource{
		fs:     fsys,
		runner: runner,
		newID: func() (string, error) {
			return gonanoid.Generate(tempIDAlphabet, 8)
		},
		logger: slog.Default().With("module", "project.clone"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch shallow-clones url into <root>/temp-<id> and returns the template
// tree found there. The returned cleanup removes the temp directory; it is
// non-nil whenever the clone was attempted, including on error, and the
// caller must run it.
func (c *CloneSource) Fetch(ctx context.Context, url, root string) (fs.FS, func() error, error) {
	id, err := c.newID()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: generate temp name: %v", ErrCloneFailed, err)
	}
	temp := filepath.Join(root, defs.TempDirPrefix+id)
	cleanup := func() error {
		c.logger.Debug("removing temp clone", "dir", temp)
		return c.fs.RemoveAll(temp)
	}

	c.logger.Debug("cloning template repository", "url", url, "dir", temp)
	_, err = c.runner.Run(ctx, shell.Command{
		Name:    "git",
		Args:    []string{"clone", "--depth", "1", url, temp},
		Timeout: c.timeout,
	})
	if err != nil {
		return nil, cleanup, fmt.Errorf("%w: %w", ErrCloneFailed, err)
	}

	dir := filepath.Join(temp, filepath.FromSlash(defs.CloneTemplatesDir))
	if info, statErr := c.fs.Stat(dir); statErr != nil || !info.IsDir() {
		dir = temp
	}

	patterns := strings.Join(defaultIgnorePatterns, "\n")
	if extra, readErr := c.fs.ReadFile(filepath.Join(dir, defs.IgnoreFile)); readErr == nil {
		patterns += "\n" + string(extra)
	}

	return NewIgnoreFS(os.DirFS(dir), dir, strings.NewReader(patterns)), cleanup, nil
}

// ignoreFS hides paths matched by gitignore-style patterns. Hidden paths
// behave as if they did not exist when opened.
type ignoreFS struct {
	base   fs.FS
	ignore gitignore.GitIgnore
}

// NewIgnoreFS wraps base, hiding every path matched by the patterns read
// from r. dir is the directory the patterns are relative to.
func NewIgnoreFS(base fs.FS, dir string, r io.Reader) fs.FS {
	return &ignoreFS{
		base:   base,
		ignore: gitignore.New(r, dir, nil),
	}
}

func (f *ignoreFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if f.ignored(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return f.base.Open(name)
}

// ignored checks name and each of its parent directories.
func (f *ignoreFS) ignored(name string) bool {
	if name == "." {
		return false
	}
	parts := strings.Split(name, "/")
	for i := range parts {
		isDir := i < len(parts)-1
		if !isDir {
			info, err := fs.Stat(f.base, name)
			isDir = err == nil && info.IsDir()
		}
		rel := filepath.FromSlash(strings.Join(parts[:i+1], "/"))
		if match := f.ignore.Relative(rel, isDir); match != nil && match.Ignore() {
			return true
		}
	}
	return false
}
