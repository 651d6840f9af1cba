package fs

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TestFileLister = (*Lister)(nil)

// Lister expands a domain.TestSpec into absolute test file paths.
type Lister struct {
	walker *Walker
}

// NewLister creates a new Lister.
func NewLister(walker *Walker) *Lister {
	return &Lister{walker: walker}
}

// List returns the sorted, de-duplicated absolute paths selected by spec.
// Glob patterns are matched against slash-separated paths relative to root.
// Explicit files are resolved against root without checking that they exist.
func (l *Lister) List(ctx context.Context, root string, spec domain.TestSpec) ([]string, error) {
	patterns := make([]string, 0, len(spec.Patterns))
	for _, p := range spec.Patterns {
		p = normalizePattern(root, p)
		if !doublestar.ValidatePattern(p) {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidPattern, "malformed glob"), "pattern", p)
		}
		patterns = append(patterns, p)
	}

	seen := make(map[string]struct{})
	for _, f := range spec.Files {
		seen[absolute(root, f)] = struct{}{}
	}

	if len(patterns) > 0 {
		for path := range l.walker.WalkFiles(root) {
			if err := ctx.Err(); err != nil {
				return nil, zerr.Wrap(err, domain.ErrListTestsFailed.Error())
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if slices.ContainsFunc(patterns, func(p string) bool {
				return doublestar.MatchUnvalidated(p, rel)
			}) {
				seen[path] = struct{}{}
			}
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	slices.Sort(files)
	return files, nil
}

// normalizePattern makes a pattern relative to root and slash-separated.
func normalizePattern(root, pattern string) string {
	if filepath.IsAbs(pattern) {
		if rel, err := filepath.Rel(root, pattern); err == nil && !strings.HasPrefix(rel, "..") {
			pattern = rel
		}
	}
	pattern = filepath.ToSlash(pattern)
	return strings.TrimPrefix(pattern, "./")
}

func absolute(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
