package changes_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/impacted/internal/adapters/changes"
	"go.trai.ch/impacted/internal/core/domain"
)

type gitFixture struct {
	t    *testing.T
	root string
	repo *git.Repository
	wt   *git.Worktree
}

func newGitFixture(t *testing.T) *gitFixture {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &gitFixture{t: t, root: root, repo: repo, wt: wt}
}

func (f *gitFixture) write(name, content string) {
	f.t.Helper()
	path := filepath.Join(f.root, name)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0o600))
}

func (f *gitFixture) commit(msg string, names ...string) plumbing.Hash {
	f.t.Helper()
	for _, name := range names {
		_, err := f.wt.Add(name)
		require.NoError(f.t, err)
	}
	hash, err := f.wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Unix(1_700_000_000, 0)},
	})
	require.NoError(f.t, err)
	return hash
}

func TestGitSource(t *testing.T) {
	t.Parallel()

	f := newGitFixture(t)
	f.write("src/a.ts", "export const a = 1\n")
	f.write("src/b.ts", "export const b = 1\n")
	f.write("src/c.ts", "export const c = 1\n")
	base := f.commit("initial", "src/a.ts", "src/b.ts", "src/c.ts")

	f.write("src/a.ts", "export const a = 2\n")
	f.commit("change a", "src/a.ts")

	f.write("src/b.ts", "export const b = 2\n")
	_, err := f.wt.Add("src/b.ts")
	require.NoError(t, err)

	f.write("src/c.ts", "export const c = 2\n")
	f.write("src/untracked.ts", "export const u = 1\n")

	got, err := changes.NewGitSource(filepath.Join(f.root, "src"), base.String()).ChangedFiles(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(f.root, "src/a.ts"),
		filepath.Join(f.root, "src/b.ts"),
		filepath.Join(f.root, "src/c.ts"),
	}, got)
}

func TestGitSource_HeadIsClean(t *testing.T) {
	t.Parallel()

	f := newGitFixture(t)
	f.write("index.js", "module.exports = 1\n")
	f.commit("initial", "index.js")

	got, err := changes.NewGitSource(f.root, "HEAD").ChangedFiles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGitSource_UnknownRevision(t *testing.T) {
	t.Parallel()

	f := newGitFixture(t)
	f.write("index.js", "module.exports = 1\n")
	f.commit("initial", "index.js")

	_, err := changes.NewGitSource(f.root, "does-not-exist").ChangedFiles(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrGitRevision.Error())
}

func TestGitSource_NotARepository(t *testing.T) {
	t.Parallel()

	_, err := changes.NewGitSource(t.TempDir(), "HEAD").ChangedFiles(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrNotGitRepository.Error())
}
