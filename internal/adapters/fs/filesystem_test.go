package fs_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adapterfs "go.trai.ch/impacted/internal/adapters/fs"
)

func TestMapFSAdapter(t *testing.T) {
	mtime := time.Unix(1700000000, 0)
	fsys := adapterfs.NewMapFSAdapter("/repo", fstest.MapFS{
		"src/a.ts": {Data: []byte("import './b'"), ModTime: mtime},
	})

	data, err := fsys.ReadFile("/repo/src/a.ts")
	require.NoError(t, err)
	assert.Equal(t, "import './b'", string(data))

	info, err := fsys.Stat("/repo/src/a.ts")
	require.NoError(t, err)
	assert.Equal(t, mtime, info.ModTime())

	info, err = fsys.Stat("/repo")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = fsys.Stat("/repo/src/missing.ts")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = fsys.ReadFile("/elsewhere/a.ts")
	assert.Error(t, err)

	real, err := fsys.Realpath("/repo/src/../src/a.ts")
	require.NoError(t, err)
	assert.Equal(t, "/repo/src/a.ts", real)
}

func TestOSFS_Realpath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "packages", "lib")
	require.NoError(t, os.MkdirAll(target, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(target, "index.js"), nil, 0o600))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "linked")))

	fsys := adapterfs.NewOSFS()
	want, err := fsys.Realpath(filepath.Join(target, "index.js"))
	require.NoError(t, err)

	got, err := fsys.Realpath(filepath.Join(dir, "linked", "index.js"))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = fsys.Realpath(filepath.Join(dir, "missing.js"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
