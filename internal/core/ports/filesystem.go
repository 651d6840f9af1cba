package ports

import "io/fs"

// FileSystem abstracts the read-only filesystem operations of the engine.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Stat returns file info for the given path.
	Stat(path string) (fs.FileInfo, error)
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Realpath returns path with every symbolic link resolved.
	Realpath(path string) (string, error)
}
