package ports

import (
	"context"
	"iter"
)

// ChangeKind classifies a file system event.
type ChangeKind uint8

const (
	// ChangeModified indicates a file was created or written.
	ChangeModified ChangeKind = iota
	// ChangeRemoved indicates a file was removed or renamed away.
	ChangeRemoved
)

// FileEvent is a single source file change observed by a Watcher.
type FileEvent struct {
	// Path is the absolute path of the changed file.
	Path string
	// Kind is the type of change.
	Kind ChangeKind
}

// Watcher reports changes to source files below a root directory.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching root recursively until ctx is done or Stop is called.
	Start(ctx context.Context, root string) error
	// Stop releases the watcher.
	Stop() error
	// Events yields file events. The sequence ends when the watcher stops.
	Events() iter.Seq[FileEvent]
}

// WatcherFactory opens a new Watcher. Watch handles are only acquired in watch mode.
type WatcherFactory func() (Watcher, error)
