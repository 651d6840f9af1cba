// Package cache implements the modification-time validated extraction cache.
package cache

import (
	"maps"
	"slices"
	"sync"

	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/core/ports"
)

var _ ports.PersistentCache = (*Cache)(nil)

// Cache implements ports.PersistentCache.
// Entries are trusted only while the file's modification time equals the stored one.
type Cache struct {
	fsys  ports.FileSystem
	store ports.CacheStore

	mu      sync.Mutex
	entries map[string]domain.CacheEntry
	hits    uint64
	misses  uint64
}

// New creates an empty cache. store may be nil, in which case Load and Save do nothing.
func New(fsys ports.FileSystem, store ports.CacheStore) *Cache {
	return &Cache{
		fsys:    fsys,
		store:   store,
		entries: make(map[string]domain.CacheEntry),
	}
}

// Get returns the cached specifiers of path.
// A missing entry, a file that cannot be stat'd or a changed modification time count
// as a miss; stale entries are evicted.
func (c *Cache) Get(path string) ([]string, bool) {
	c.mu.Lock()
	entry, ok := c.entries[path]
	if !ok {
		c.misses++
		c.mu.Unlock()
		return nil, false
	}
	c.mu.Unlock()

	info, err := c.fsys.Stat(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil || info.ModTime().UnixNano() != entry.ModTime {
		if current, ok := c.entries[path]; ok && current.ModTime == entry.ModTime {
			delete(c.entries, path)
		}
		c.misses++
		return nil, false
	}

	c.hits++
	return slices.Clone(entry.Specifiers), true
}

// Set stores specifiers for path with its current modification time.
// Nothing is stored when path cannot be stat'd.
func (c *Cache) Set(path string, specifiers []string) {
	info, err := c.fsys.Stat(path)
	if err != nil {
		return
	}

	specs := slices.Clone(specifiers)
	if specs == nil {
		specs = []string{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = domain.CacheEntry{
		ModTime:    info.ModTime().UnixNano(),
		Specifiers: specs,
	}
}

// Stats returns the cumulative counters and the current entry count.
func (c *Cache) Stats() domain.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.CacheStats{
		Hits:   c.hits,
		Misses: c.misses,
		Size:   len(c.entries),
	}
}

// Load replaces the entries with the persisted ones.
// On error the cache is left empty and the error is returned for reporting.
func (c *Cache) Load() error {
	if c.store == nil {
		return nil
	}

	entries, err := c.store.Load()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.entries = make(map[string]domain.CacheEntry)
		return err
	}
	if entries == nil {
		entries = make(map[string]domain.CacheEntry)
	}
	c.entries = entries
	return nil
}

// Save persists a snapshot of the current entries.
func (c *Cache) Save() error {
	if c.store == nil {
		return nil
	}

	c.mu.Lock()
	snapshot := maps.Clone(c.entries)
	c.mu.Unlock()

	return c.store.Save(snapshot)
}

// Clear drops all entries, resets the counters and removes the persisted file.
func (c *Cache) Clear() error {
	c.mu.Lock()
	c.entries = make(map[string]domain.CacheEntry)
	c.hits, c.misses = 0, 0
	c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	return c.store.Remove()
}

// Path returns the location of the persisted cache, or "" for an in-memory cache.
func (c *Cache) Path() string {
	if c.store == nil {
		return ""
	}
	return c.store.Path()
}
