package ports

import "go.trai.ch/impacted/internal/core/domain"

// ExtractionCache memoizes extracted specifiers per file.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ExtractionCache interface {
	// Get returns the cached specifiers of path if the entry is still fresh.
	Get(path string) ([]string, bool)
	// Set stores the specifiers of path along with its current modification time.
	Set(path string, specifiers []string)
	// Stats returns the cumulative cache counters.
	Stats() domain.CacheStats
}

// CacheStore persists extraction cache entries as a whole.
type CacheStore interface {
	// Load returns the persisted entries. A missing store yields an empty map and no error.
	Load() (map[string]domain.CacheEntry, error)
	// Save replaces the persisted entries.
	Save(entries map[string]domain.CacheEntry) error
	// Remove deletes the persisted entries.
	Remove() error
	// Path returns the location of the store.
	Path() string
}

// PersistentCache is an ExtractionCache loaded from and flushed to a CacheStore explicitly.
type PersistentCache interface {
	ExtractionCache
	// Load replaces the entries with the persisted ones. On error the cache is left empty.
	Load() error
	// Save persists the current entries.
	Save() error
	// Clear drops all entries, resets the counters and removes the persisted entries.
	Clear() error
}

// CacheFactory opens extraction caches.
type CacheFactory interface {
	// Open returns a cache persisted at path. An empty path yields a cache that is never persisted.
	Open(path string) PersistentCache
}
