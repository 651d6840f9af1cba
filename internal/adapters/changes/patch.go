package changes

import (
	"context"
	"io"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/core/ports"
	"go.trai.ch/zerr"
)

const devNull = "/dev/null"

var _ ports.ChangeSource = (*PatchSource)(nil)

// PatchSource extracts the touched files from a unified diff.
type PatchSource struct {
	r   io.Reader
	dir string
}

// NewPatchSource creates a PatchSource reading the diff from r.
func NewPatchSource(r io.Reader, dir string) *PatchSource {
	return &PatchSource{r: r, dir: dir}
}

// ChangedFiles returns the old and new names of every file in the diff.
// Renames contribute both names; /dev/null is skipped.
func (s *PatchSource) ChangedFiles(ctx context.Context) ([]string, error) {
	data, err := io.ReadAll(s.r)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrChangesReadFailed.Error())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fileDiffs, err := diff.ParseMultiFileDiff(data)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrDiffParseFailed.Error())
	}

	var files []string
	seen := make(map[string]struct{})
	add := func(name string) {
		name = stripPrefix(name)
		if name == "" || name == devNull {
			return
		}
		path := resolve(s.dir, name)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, fd := range fileDiffs {
		add(fd.OrigName)
		add(fd.NewName)
	}
	return files, nil
}

// stripPrefix removes the a/ and b/ prefixes git puts on diff file names.
func stripPrefix(name string) string {
	name = strings.TrimSpace(name)
	if name == devNull {
		return name
	}
	if rest, ok := strings.CutPrefix(name, "a/"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(name, "b/"); ok {
		return rest
	}
	return name
}
