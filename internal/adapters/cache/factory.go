package cache

import (
	"go.trai.ch/impacted/internal/adapters/cas"
	"go.trai.ch/impacted/internal/core/ports"
)

var _ ports.CacheFactory = (*Factory)(nil)

// Factory opens caches persisted through cas stores.
type Factory struct {
	fsys ports.FileSystem
}

// NewFactory creates a Factory whose caches stat files through fsys.
func NewFactory(fsys ports.FileSystem) *Factory {
	return &Factory{fsys: fsys}
}

// Open returns a cache persisted at path, or an in-memory cache for an empty path.
func (f *Factory) Open(path string) ports.PersistentCache {
	if path == "" {
		return New(f.fsys, nil)
	}
	return New(f.fsys, cas.NewStore(path))
}
