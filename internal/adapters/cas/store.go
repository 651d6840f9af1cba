// Package cas persists extraction results in a single checksummed JSON file.
package cas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/core/ports"
	"go.trai.ch/zerr"
)

// FormatVersion is the version of the on-disk envelope.
const FormatVersion = 1

var _ ports.CacheStore = (*Store)(nil)

type envelope struct {
	Version  int                          `json:"version"`
	Checksum string                       `json:"checksum"`
	Entries  map[string]domain.CacheEntry `json:"entries"`
}

// Store implements ports.CacheStore using a flat JSON file.
type Store struct {
	path string
}

// NewStore creates a Store backed by the file at the given path.
// The file is not touched until Load or Save is called.
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load reads all entries. A missing or empty file yields an empty map.
func (s *Store) Load() (map[string]domain.CacheEntry, error) {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]domain.CacheEntry), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", s.path)
	}

	if len(data) == 0 {
		return make(map[string]domain.CacheEntry), nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCorrupt.Error()), "path", s.path)
	}

	if env.Version != FormatVersion {
		return nil, zerr.With(zerr.With(domain.ErrCacheVersion, "path", s.path), "version", env.Version)
	}

	if env.Entries == nil {
		env.Entries = make(map[string]domain.CacheEntry)
	}

	sum, err := checksum(env.Entries)
	if err != nil {
		return nil, err
	}
	if sum != env.Checksum {
		return nil, zerr.With(zerr.With(domain.ErrCacheCorrupt, "path", s.path), "reason", "checksum mismatch")
	}

	return env.Entries, nil
}

// Save replaces the file content with entries.
// The file is written next to its destination and renamed into place.
func (s *Store) Save(entries map[string]domain.CacheEntry) error {
	if entries == nil {
		entries = make(map[string]domain.CacheEntry)
	}

	sum, err := checksum(entries)
	if err != nil {
		return err
	}

	data, err := json.Marshal(envelope{
		Version:  FormatVersion,
		Checksum: sum,
		Entries:  entries,
	})
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache entries")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for cache file"), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", s.path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Already renamed on success

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", s.path)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", s.path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", s.path)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", s.path)
	}
	return nil
}

// Remove deletes the backing file. A missing file is not an error.
func (s *Store) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to remove cache file"), "path", s.path)
	}
	return nil
}

// checksum hashes the canonical JSON encoding of entries. encoding/json sorts map keys.
func checksum(entries map[string]domain.CacheEntry) (string, error) {
	data, err := json.Marshal(entries)
	if err != nil {
		return "", zerr.Wrap(err, "failed to marshal cache entries")
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}
