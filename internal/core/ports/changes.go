package ports

import (
	"context"
	"io"
)

// ChangeSource supplies the files changed since some baseline.
//
//go:generate mockgen -source=changes.go -destination=mocks/mock_changes.go -package=mocks
type ChangeSource interface {
	// ChangedFiles returns the absolute paths of the changed files.
	ChangedFiles(ctx context.Context) ([]string, error)
}

// ChangeSourceFactory creates change sources for the supported inputs.
type ChangeSourceFactory interface {
	// Lines reads newline-separated paths from r, resolved against dir.
	Lines(r io.Reader, dir string) ChangeSource
	// Git compares the working tree of the repository enclosing dir with ref.
	Git(dir, ref string) ChangeSource
	// Patch reads a unified diff from r, resolving touched files against dir.
	Patch(r io.Reader, dir string) ChangeSource
}
