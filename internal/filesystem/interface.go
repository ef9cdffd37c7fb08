// Package filesystem abstracts the file operations that create or inspect a
// project on disk so they can be replaced by an in-memory spy in tests.
package filesystem

import (
	"io/fs"
)

// FileSystem provides an abstraction over file operations for testability
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	// CreateFile writes a new file and fails with fs.ErrExist when any
	// directory entry is already present at path.
	CreateFile(path string, data []byte, perm fs.FileMode) error
	RemoveAll(path string) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Path operations
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
	Getwd() (string, error)
}
