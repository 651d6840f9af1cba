package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/impacted/internal/adapters/fs"
	"go.trai.ch/impacted/internal/core/domain"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, nil, 0o600))
	}
}

func TestLister_List(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"src/a.ts",
		"src/a.test.ts",
		"src/nested/b.spec.tsx",
		"lib/c.test.js",
		"node_modules/pkg/x.test.js",
		".git/hooks/y.test.js",
		"README.md",
	)

	abs := func(rel ...string) []string {
		out := make([]string, 0, len(rel))
		for _, r := range rel {
			out = append(out, filepath.Join(root, filepath.FromSlash(r)))
		}
		slices.Sort(out)
		return out
	}

	tests := []struct {
		name string
		spec domain.TestSpec
		want []string
	}{
		{
			name: "default pattern",
			spec: domain.NewTestSpec(domain.DefaultTestPattern),
			want: abs("src/a.test.ts", "src/nested/b.spec.tsx", "lib/c.test.js"),
		},
		{
			name: "dot slash prefix",
			spec: domain.NewTestSpec("./src/**/*.test.ts"),
			want: abs("src/a.test.ts"),
		},
		{
			name: "absolute pattern",
			spec: domain.NewTestSpec(filepath.Join(root, "lib") + "/*.test.js"),
			want: abs("lib/c.test.js"),
		},
		{
			name: "overlapping patterns deduplicated",
			spec: domain.NewTestSpec("src/**/*.test.ts", "**/a.test.ts"),
			want: abs("src/a.test.ts"),
		},
		{
			name: "explicit files",
			spec: domain.NewTestSpec("src/a.test.ts", filepath.Join(root, "lib", "c.test.js"), "missing.test.ts"),
			want: abs("src/a.test.ts", "lib/c.test.js", "missing.test.ts"),
		},
		{
			name: "no match",
			spec: domain.NewTestSpec("**/*.e2e.ts"),
			want: []string{},
		},
	}

	lister := fs.NewLister(fs.NewWalker())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lister.List(context.Background(), root, tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLister_List_InvalidPattern(t *testing.T) {
	lister := fs.NewLister(fs.NewWalker())

	_, err := lister.List(context.Background(), t.TempDir(), domain.NewTestSpec("src/[a-.ts"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPattern)
}

func TestLister_List_Canceled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.test.ts")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fs.NewLister(fs.NewWalker()).List(ctx, root, domain.NewTestSpec("**/*.test.ts"))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.ts", "dir/b.ts", "node_modules/c.js", ".jj/d", ".git/e")

	var got []string
	for path := range fs.NewWalker().WalkFiles(root) {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
	}
	slices.Sort(got)

	assert.Equal(t, []string{"a.ts", "dir/b.ts"}, got)
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.ts", "b.ts", "c.ts")

	count := 0
	for range fs.NewWalker().WalkFiles(root) {
		count++
		break
	}

	assert.Equal(t, 1, count)
}
