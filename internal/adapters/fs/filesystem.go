package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/impacted/internal/core/ports"
)

var (
	_ ports.FileSystem = (*OSFS)(nil)
	_ ports.FileSystem = (*MapFSAdapter)(nil)
)

// OSFS implements ports.FileSystem using the standard library.
type OSFS struct{}

// NewOSFS creates a new OSFS instance.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Stat returns file info for the given path.
func (o *OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the entire file at path.
func (o *OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- paths come from the dependency graph walk
	return os.ReadFile(path)
}

// Realpath resolves the symbolic links of path.
func (o *OSFS) Realpath(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// MapFSAdapter adapts an fs.FS (typically fstest.MapFS) mounted at Root to ports.FileSystem.
type MapFSAdapter struct {
	FS   fs.FS
	Root string
}

// NewMapFSAdapter creates a new MapFSAdapter with the given root path and filesystem.
func NewMapFSAdapter(root string, fsys fs.FS) *MapFSAdapter {
	return &MapFSAdapter{
		FS:   fsys,
		Root: root,
	}
}

// Stat returns file info for the given path.
func (m *MapFSAdapter) Stat(path string) (fs.FileInfo, error) {
	return fs.Stat(m.FS, m.toRelPath(path))
}

// ReadFile reads the entire file at path.
func (m *MapFSAdapter) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(m.FS, m.toRelPath(path))
}

// Realpath returns the cleaned path. fs.FS has no symbolic links.
func (m *MapFSAdapter) Realpath(path string) (string, error) {
	return filepath.Clean(path), nil
}

// toRelPath converts an absolute path into a slash-separated path within FS.
// Paths outside Root are returned unchanged so that fs operations fail with fs.ErrInvalid.
func (m *MapFSAdapter) toRelPath(absPath string) string {
	if !filepath.IsAbs(absPath) {
		return filepath.ToSlash(absPath)
	}

	clean := filepath.Clean(absPath)
	if clean == m.Root {
		return "."
	}
	if m.Root != "/" && !strings.HasPrefix(clean, m.Root+string(filepath.Separator)) {
		return absPath
	}

	rel := strings.TrimPrefix(clean, m.Root)
	rel = strings.TrimPrefix(rel, string(filepath.Separator))
	if rel == "" {
		return "."
	}
	return filepath.ToSlash(rel)
}
