package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MockFileSystem provides in-memory filesystem for testing.
// Every mutating call is recorded so tests can assert that nothing
// was written.
type MockFileSystem struct {
	files      map[string]*MockFile
	currentDir string
	mutations  []string
	failures   map[string]error
}

// MockFile represents a file in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() any           { return nil }

// NewMockFileSystem creates a new MockFileSystem
func NewMockFileSystem() *MockFileSystem {
	mfs := &MockFileSystem{
		files:      make(map[string]*MockFile),
		currentDir: "/workspace",
		failures:   make(map[string]error),
	}
	mfs.AddDir(mfs.currentDir)
	return mfs
}

// AddFile seeds a file and its parents. Seeding is not recorded as a mutation.
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    0o644,
		ModTime: time.Now(),
	}
	mfs.addParents(cleanPath)
}

// AddDir seeds a directory and its parents. Seeding is not recorded as a mutation.
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := filepath.Clean(path)
	if _, exists := mfs.files[cleanPath]; !exists {
		mfs.files[cleanPath] = &MockFile{
			Mode:    0o755 | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}
	mfs.addParents(cleanPath)
}

func (mfs *MockFileSystem) addParents(cleanPath string) {
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != "/" && dir != cleanPath {
		if _, exists := mfs.files[dir]; !exists {
			mfs.files[dir] = &MockFile{Mode: 0o755 | fs.ModeDir, ModTime: time.Now(), IsDir: true}
		}
		cleanPath = dir
		dir = filepath.Dir(dir)
	}
}

// FailOn makes the given operation ("write", "mkdir", "remove") on path
// return err.
func (mfs *MockFileSystem) FailOn(op, path string, err error) {
	mfs.failures[op+" "+filepath.Clean(path)] = err
}

// Mutations returns the recorded mutating calls as "op path" strings,
// in call order.
func (mfs *MockFileSystem) Mutations() []string {
	return append([]string(nil), mfs.mutations...)
}

func (mfs *MockFileSystem) record(op, path string) error {
	mfs.mutations = append(mfs.mutations, op+" "+path)
	if err, ok := mfs.failures[op+" "+path]; ok {
		return &fs.PathError{Op: op, Path: path, Err: err}
	}
	return nil
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return nil, errors.New("is a directory")
	}
	return file.Content, nil
}

// writeFile stores data at path, replacing any file there.
func (mfs *MockFileSystem) writeFile(path string, data []byte, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)
	if err := mfs.record("write", cleanPath); err != nil {
		return err
	}
	if !mfs.isDir(filepath.Dir(cleanPath)) {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if f, exists := mfs.files[cleanPath]; exists && f.IsDir {
		return &fs.PathError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}

	mfs.files[cleanPath] = &MockFile{
		Content: append([]byte(nil), data...),
		Mode:    perm,
		ModTime: time.Now(),
	}
	return nil
}

func (mfs *MockFileSystem) CreateFile(path string, data []byte, perm fs.FileMode) error {
	if _, exists := mfs.files[filepath.Clean(path)]; exists {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrExist}
	}
	return mfs.writeFile(path, data, perm)
}

func (mfs *MockFileSystem) RemoveAll(path string) error {
	cleanPath := filepath.Clean(path)
	if err := mfs.record("remove", cleanPath); err != nil {
		return err
	}
	for p := range mfs.files {
		if p == cleanPath || strings.HasPrefix(p, cleanPath+string(filepath.Separator)) {
			delete(mfs.files, p)
		}
	}
	return nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)
	if err := mfs.record("mkdir", cleanPath); err != nil {
		return err
	}

	var missing []string
	for dir := cleanPath; dir != "." && dir != "/"; dir = filepath.Dir(dir) {
		f, exists := mfs.files[dir]
		if exists {
			if !f.IsDir {
				return &fs.PathError{Op: "mkdir", Path: dir, Err: errors.New("not a directory")}
			}
			break
		}
		missing = append(missing, dir)
	}
	for _, dir := range missing {
		mfs.files[dir] = &MockFile{Mode: perm | fs.ModeDir, ModTime: time.Now(), IsDir: true}
	}
	return nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return infoFor(path, file), nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.files[filepath.Clean(path)]
	return exists
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

// SetCurrentDir sets the current working directory for the mock
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.currentDir = dir
	mfs.AddDir(dir)
}

// Files returns the sorted paths of all regular files under root.
func (mfs *MockFileSystem) Files(root string) []string {
	cleanRoot := filepath.Clean(root)
	var out []string
	for p, f := range mfs.files {
		if !f.IsDir && strings.HasPrefix(p, cleanRoot+string(filepath.Separator)) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// String prints the filesystem tree, one path per line.
func (mfs *MockFileSystem) String() string {
	var paths []string
	for p := range mfs.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var b strings.Builder
	for _, p := range paths {
		marker := "f"
		if mfs.files[p].IsDir {
			marker = "d"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, p)
	}
	return b.String()
}

func (mfs *MockFileSystem) isDir(path string) bool {
	if path == "." || path == "/" {
		return true
	}
	f, ok := mfs.files[path]
	return ok && f.IsDir
}

func infoFor(path string, f *MockFile) *mockFileInfo {
	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(f.Content)),
		mode:    f.Mode,
		modTime: f.ModTime,
		isDir:   f.IsDir,
	}
}
