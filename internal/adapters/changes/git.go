package changes

import (
	"context"
	"errors"
	"path/filepath"
	"slices"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ChangeSource = (*GitSource)(nil)

// GitSource lists the files that differ between a revision and the working tree,
// the equivalent of `git diff --name-only <ref>`.
type GitSource struct {
	dir string
	ref string
}

// NewGitSource creates a GitSource for the repository enclosing dir.
func NewGitSource(dir, ref string) *GitSource {
	return &GitSource{dir: dir, ref: ref}
}

// ChangedFiles returns the committed changes since ref plus staged and unstaged
// modifications, as absolute paths under the repository root. Untracked files are excluded.
func (s *GitSource) ChangedFiles(ctx context.Context) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(s.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, zerr.With(domain.ErrNotGitRepository, "dir", s.dir)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGitDiffFailed.Error()), "dir", s.dir)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGitDiffFailed.Error()), "dir", s.dir)
	}
	root := wt.Filesystem.Root()

	base, err := s.revisionTree(repo, plumbing.Revision(s.ref))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGitRevision.Error()), "ref", s.ref)
	}

	names := make(map[string]struct{})

	head, err := s.revisionTree(repo, plumbing.Revision(plumbing.HEAD))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGitRevision.Error()), "ref", plumbing.HEAD)
	}
	changes, err := object.DiffTreeWithOptions(ctx, base, head, nil)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGitDiffFailed.Error()), "ref", s.ref)
	}
	for _, change := range changes {
		if change.From.Name != "" {
			names[change.From.Name] = struct{}{}
		}
		if change.To.Name != "" {
			names[change.To.Name] = struct{}{}
		}
	}

	status, err := wt.Status()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGitDiffFailed.Error()), "dir", root)
	}
	for name, st := range status {
		if st.Worktree == git.Untracked && st.Staging == git.Untracked {
			continue
		}
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		names[name] = struct{}{}
	}

	files := make([]string, 0, len(names))
	for name := range names {
		files = append(files, filepath.Join(root, filepath.FromSlash(name)))
	}
	slices.Sort(files)
	return files, nil
}

func (s *GitSource) revisionTree(repo *git.Repository, rev plumbing.Revision) (*object.Tree, error) {
	hash, err := repo.ResolveRevision(rev)
	if err != nil {
		return nil, err
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, err
	}
	return commit.Tree()
}
