package project

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eddo81/wpkit/internal/filesystem"
	"github.com/eddo81/wpkit/internal/shell"
)

// cloneInto returns an onCall hook that answers "git clone" by writing
// files into the clone target.
func cloneInto(t *testing.T, files map[string]string) func(shell.Command) error {
	t.Helper()
	return func(cmd shell.Command) error {
		if cmd.Name != "git" || len(cmd.Args) == 0 || cmd.Args[0] != "clone" {
			return nil
		}
		target := cmd.Args[len(cmd.Args)-1]
		for name, content := range files {
			path := filepath.Join(target, filepath.FromSlash(name))
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return err
			}
		}
		return nil
	}
}

func fixedID(id string) CloneOption {
	return WithCloneID(func() (string, error) { return id, nil })
}

func TestCloneFetch_UsesTemplatesDirAndHidesIgnored(t *testing.T) {
	root := filepath.Join(t.TempDir(), "demo-site")
	runner := newFakeRunner()
	runner.onCall = cloneInto(t, map[string]string{
		"README.md":                       "upstream readme",
		"src/templates/package.json.tmpl": `{"name": "{{ .PackageName }}"}`,
		"src/templates/notes/draft.md":    "draft",
		"src/templates/keep.txt":          "keep",
		"src/templates/.wpkitignore":      "notes/\n",
		"src/templates/node_modules/x.js": "x",
		"src/templates/.git/HEAD":         "ref",
	})

	src, cleanup, err := NewCloneSource(filesystem.NewOSFileSystem(), runner, fixedID("abc12345")).
		Fetch(context.Background(), "https://example.com/boilerplate.git", root)
	require.NoError(t, err)
	require.NotNil(t, cleanup)

	require.Equal(t, []string{
		"git clone --depth 1 https://example.com/boilerplate.git " + filepath.Join(root, "temp-abc12345"),
	}, runner.lines())

	data, err := fs.ReadFile(src, "keep.txt")
	require.NoError(t, err)
	require.Equal(t, "keep", string(data))

	for _, hidden := range []string{"notes/draft.md", "node_modules/x.js", ".git/HEAD", ".wpkitignore"} {
		_, err := fs.ReadFile(src, hidden)
		require.ErrorIs(t, err, fs.ErrNotExist, hidden)
	}

	require.NoError(t, cleanup())
	_, err = os.Stat(filepath.Join(root, "temp-abc12345"))
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestCloneFetch_FallsBackToRepoRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "demo-site")
	runner := newFakeRunner()
	runner.onCall = cloneInto(t, map[string]string{"index.js": "console.log(1)"})

	src, cleanup, err := NewCloneSource(filesystem.NewOSFileSystem(), runner, fixedID("root0000")).
		Fetch(context.Background(), "https://example.com/repo.git", root)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	data, err := fs.ReadFile(src, "index.js")
	require.NoError(t, err)
	require.Equal(t, "console.log(1)", string(data))
}

func TestCloneFetch_FailureStillReturnsCleanup(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	runner := newFakeRunner()
	runner.failOn("git clone", &shell.CommandFailedError{Command: "git clone", ExitCode: 128, Stderr: "repository not found"})

	src, cleanup, err := NewCloneSource(mfs, runner, fixedID("dead0000")).
		Fetch(context.Background(), "https://example.com/missing.git", "/workspace/demo-site")
	require.ErrorIs(t, err, ErrCloneFailed)
	require.ErrorIs(t, err, shell.ErrCommandFailed)
	require.Nil(t, src)
	require.NotNil(t, cleanup)

	require.NoError(t, cleanup())
	require.Equal(t, []string{"remove /workspace/demo-site/temp-dead0000"}, mfs.Mutations())
}

func TestCloneFetch_IDError(t *testing.T) {
	runner := newFakeRunner()
	c := NewCloneSource(filesystem.NewMockFileSystem(), runner, WithCloneID(func() (string, error) {
		return "", errors.New("entropy exhausted")
	}))

	_, cleanup, err := c.Fetch(context.Background(), "https://example.com/repo.git", "/workspace/demo-site")
	require.ErrorIs(t, err, ErrCloneFailed)
	require.Nil(t, cleanup)
	require.Empty(t, runner.lines())
}

func TestCloneFetch_DefaultIDIsLowercase(t *testing.T) {
	runner := newFakeRunner()
	runner.failOn("git clone", errors.New("offline"))

	_, _, _ = NewCloneSource(filesystem.NewMockFileSystem(), runner).
		Fetch(context.Background(), "https://example.com/repo.git", "/workspace/demo-site")

	lines := runner.lines()
	require.Len(t, lines, 1)
	target := lines[0][strings.LastIndex(lines[0], " ")+1:]
	name := filepath.Base(target)
	require.True(t, strings.HasPrefix(name, "temp-"), name)
	require.Len(t, strings.TrimPrefix(name, "temp-"), 8)
	require.Equal(t, strings.ToLower(name), name)
}

func TestIgnoreFS(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"a.txt":         "a",
		"build/out.js":  "out",
		"src/debug.log": "log",
		"src/main.js":   "main",
	} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	fsys := NewIgnoreFS(os.DirFS(dir), dir, strings.NewReader("build/\n*.log\n"))

	_, err := fs.ReadFile(fsys, "a.txt")
	require.NoError(t, err)
	_, err = fs.ReadFile(fsys, "src/main.js")
	require.NoError(t, err)
	_, err = fs.ReadFile(fsys, "build/out.js")
	require.ErrorIs(t, err, fs.ErrNotExist)
	_, err = fs.ReadFile(fsys, "src/debug.log")
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = fsys.Open("../escape")
	require.ErrorIs(t, err, fs.ErrInvalid)
}
