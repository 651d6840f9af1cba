package resolver

import (
	"encoding/json"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/impacted/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// ManifestFileName is the name of a package manifest.
const ManifestFileName = "package.json"

// Manifest holds the fields of a package.json relevant to module resolution.
type Manifest struct {
	// Path is the absolute path of the manifest file.
	Path string `json:"-"`
	// Dir is the directory containing the manifest.
	Dir     string         `json:"-"`
	Name    string         `json:"name"`
	Main    string         `json:"main"`
	Imports map[string]any `json:"imports"`
	Exports any            `json:"exports"`

	modTime int64
}

// ManifestReader reads and parses a manifest file.
type ManifestReader interface {
	Read(path string) (*Manifest, error)
}

// ReadManifest reads and parses the manifest at path.
func ReadManifest(fsys ports.FileSystem, path string) (*Manifest, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse manifest"), "path", path)
	}
	m.Path = path
	m.Dir = filepath.Dir(path)
	return &m, nil
}

// FindManifest returns the nearest readable manifest in startDir or one of its ancestors.
// Unreadable or malformed manifests are skipped. The filesystem root is checked last.
func FindManifest(reader ManifestReader, startDir string) (*Manifest, bool) {
	dir := filepath.Clean(startDir)
	for {
		if m, err := reader.Read(filepath.Join(dir, ManifestFileName)); err == nil {
			return m, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, false
		}
		dir = parent
	}
}

// ManifestCache is a ManifestReader memoizing parsed manifests in a bounded LRU.
// Entries are validated by modification time and concurrent reads of one path are collapsed.
type ManifestCache struct {
	fsys    ports.FileSystem
	entries *lru.Cache[string, *Manifest]
	group   singleflight.Group
}

// DefaultManifestCacheSize bounds the number of parsed manifests kept in memory.
const DefaultManifestCacheSize = 4096

// NewManifestCache creates a ManifestCache holding at most size manifests.
func NewManifestCache(fsys ports.FileSystem, size int) (*ManifestCache, error) {
	entries, err := lru.New[string, *Manifest](size)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create manifest cache")
	}
	return &ManifestCache{fsys: fsys, entries: entries}, nil
}

// Read returns the parsed manifest at path.
func (c *ManifestCache) Read(path string) (*Manifest, error) {
	info, err := c.fsys.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, zerr.With(zerr.New("manifest path is a directory"), "path", path)
	}
	modTime := info.ModTime().UnixNano()

	if m, ok := c.entries.Get(path); ok && m.modTime == modTime {
		return m, nil
	}

	v, err, _ := c.group.Do(path, func() (any, error) {
		m, err := ReadManifest(c.fsys, path)
		if err != nil {
			return nil, err
		}
		m.modTime = modTime
		c.entries.Add(path, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Manifest), nil
}

// Len returns the number of cached manifests.
func (c *ManifestCache) Len() int {
	return c.entries.Len()
}
