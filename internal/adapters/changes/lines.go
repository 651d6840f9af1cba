// Package changes provides the sources of changed file lists.
package changes

import (
	"bufio"
	"context"
	"io"
	"path/filepath"
	"strings"

	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ChangeSource = (*LineSource)(nil)

// LineSource reads newline-separated paths, typically from stdin.
type LineSource struct {
	r   io.Reader
	dir string
}

// NewLineSource creates a LineSource reading from r and resolving paths against dir.
func NewLineSource(r io.Reader, dir string) *LineSource {
	return &LineSource{r: r, dir: dir}
}

// ChangedFiles returns the trimmed, non-blank lines as absolute paths in input order.
// Duplicates are dropped.
func (s *LineSource) ChangedFiles(ctx context.Context) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(s.r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		path := resolve(s.dir, line)
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrChangesReadFailed.Error())
	}
	return files, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, filepath.FromSlash(path))
}
