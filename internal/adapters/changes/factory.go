package changes

import (
	"io"

	"go.trai.ch/impacted/internal/core/ports"
)

var _ ports.ChangeSourceFactory = (*Factory)(nil)

// Factory implements ports.ChangeSourceFactory.
type Factory struct{}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Lines returns a LineSource.
func (f *Factory) Lines(r io.Reader, dir string) ports.ChangeSource {
	return NewLineSource(r, dir)
}

// Git returns a GitSource.
func (f *Factory) Git(dir, ref string) ports.ChangeSource {
	return NewGitSource(dir, ref)
}

// Patch returns a PatchSource.
func (f *Factory) Patch(r io.Reader, dir string) ports.ChangeSource {
	return NewPatchSource(r, dir)
}
