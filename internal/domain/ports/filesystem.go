package ports

import (
	"io/fs"
	"os"
	"path/filepath"
)

//go:generate mockery --name FileSystem --output ../../../test/mocks --outpkg mocks

// FileSystem abstracts the file operations used by the repository and sinks
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Stat(name string) (os.FileInfo, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
}

// RealFileSystem implements FileSystem using actual OS operations
type RealFileSystem struct{}

// NewRealFileSystem creates a new real file system implementation
func NewRealFileSystem() FileSystem {
	return &RealFileSystem{}
}

// ReadFile reads the entire file content
func (fsys *RealFileSystem) ReadFile(name string) ([]byte, error) {
	// #nosec G304 - paths are built from the configured content and output directories
	return os.ReadFile(name)
}

// WriteFile writes data to a file, replacing it if it exists
func (fsys *RealFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// MkdirAll creates a directory and all parent directories
func (fsys *RealFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Stat returns file information
func (fsys *RealFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// WalkDir walks the file tree rooted at root
func (fsys *RealFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}
