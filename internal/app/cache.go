package app

import (
	"fmt"
	"path/filepath"

	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/zerr"
)

// CacheInfo describes the persisted extraction cache.
type CacheInfo struct {
	Path    string
	Entries int
}

// CacheStats loads the persisted cache and reports its size.
func (a *App) CacheStats(opts Options) (CacheInfo, error) {
	path, err := a.cachePath(opts)
	if err != nil {
		return CacheInfo{}, err
	}

	cache := a.caches.Open(path)
	if err := cache.Load(); err != nil {
		return CacheInfo{Path: path}, zerr.With(zerr.Wrap(err, "failed to load cache"), "path", path)
	}
	return CacheInfo{Path: path, Entries: cache.Stats().Size}, nil
}

// ClearCache removes the persisted cache and returns its path.
func (a *App) ClearCache(opts Options) (string, error) {
	path, err := a.cachePath(opts)
	if err != nil {
		return "", err
	}

	if err := a.caches.Open(path).Clear(); err != nil {
		return path, zerr.With(zerr.Wrap(err, "failed to clear cache"), "path", path)
	}
	a.logger.Info(fmt.Sprintf("removed %s", path))
	return path, nil
}

// cachePath returns the configured cache file, or the default location below the project root.
func (a *App) cachePath(opts Options) (string, error) {
	opts.NoCache = false
	s, err := a.resolve(opts)
	if err != nil {
		return "", err
	}
	if s.cacheFile != "" {
		return s.cacheFile, nil
	}
	return filepath.Join(s.root, domain.DefaultCachePath()), nil
}
