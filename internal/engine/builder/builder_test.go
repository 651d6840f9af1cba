package builder_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/impacted/internal/adapters/cache"
	"go.trai.ch/impacted/internal/adapters/fs"
	"go.trai.ch/impacted/internal/adapters/parser"
	"go.trai.ch/impacted/internal/adapters/resolver"
	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/core/ports/mocks"
	"go.trai.ch/impacted/internal/engine/builder"
	"go.trai.ch/impacted/internal/engine/impact"
	"go.uber.org/mock/gomock"
)

func file(src string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(src)}
}

func edges(g *domain.Graph) map[string][]string {
	out := make(map[string][]string, g.Len())
	for _, f := range g.Files() {
		deps := g.Dependencies(f)
		if deps == nil {
			deps = []string{}
		}
		out[f] = deps
	}
	return out
}

var project = fstest.MapFS{
	"package.json":              file(`{"name":"app","imports":{"#utils":"./src/utils.js"}}`),
	"src/utils.js":              file(`export const x = 1;`),
	"src/m.ts":                  file(`export const m = 1;`),
	"src/h.ts":                  file(`import { m } from './m'; export const h = m;`),
	"src/cycle-a.ts":            file(`import './cycle-b';`),
	"src/cycle-b.ts":            file(`export * from './cycle-a';`),
	"src/data.json":             file(`{}`),
	"dist/out.js":               file(`module.exports = {};`),
	"node_modules/dep/index.js": file(`module.exports = 1;`),
	"test/t1.test.ts": file(`
import { m } from '../src/m';
import fs from 'node:fs';
import missing from 'missing-package';
import data from '../src/data.json';
import out from '../dist/out.js';
import dep from 'dep';
`),
	"test/t2.test.ts":     file(`const name = './dynamic'; require(name);`),
	"test/t3.test.ts":     file(`import { h } from '../src/h';`),
	"test/alias.test.js":  file(`const { x } = require('#utils');`),
	"test/rel.test.js":    file(`import { x } from '../src/utils.js';`),
	"test/cycle.test.ts":  file(`import('../src/cycle-a');`),
	"test/broken.test.ts": file(`import { from '../src/m'`),
}

var entries = []string{
	"/repo/test/t1.test.ts",
	"/repo/test/t2.test.ts",
	"/repo/test/t3.test.ts",
	"/repo/test/alias.test.js",
	"/repo/test/rel.test.js",
	"/repo/test/cycle.test.ts",
	"/repo/README.md",
	"/repo/test/../test/t1.test.ts",
}

func newBuilder(t *testing.T) (*builder.Builder, *fs.MapFSAdapter) {
	t.Helper()
	fsys := fs.NewMapFSAdapter("/repo", project)
	manifests, err := resolver.NewManifestCache(fsys, 16)
	require.NoError(t, err)
	return builder.New(fsys, parser.New(nil), resolver.New(fsys, manifests)), fsys
}

func TestBuilder_Build(t *testing.T) {
	b, fsys := newBuilder(t)
	c := cache.New(fsys, nil)

	graph, stats, err := b.Build(context.Background(), entries, builder.Options{Cache: c, Workers: 4})
	require.NoError(t, err)

	want := map[string][]string{
		"/repo/test/t1.test.ts":    {"/repo/src/m.ts"},
		"/repo/test/t2.test.ts":    {},
		"/repo/test/t3.test.ts":    {"/repo/src/h.ts"},
		"/repo/test/alias.test.js": {"/repo/src/utils.js"},
		"/repo/test/rel.test.js":   {"/repo/src/utils.js"},
		"/repo/test/cycle.test.ts": {"/repo/src/cycle-a.ts"},
		"/repo/src/m.ts":           {},
		"/repo/src/h.ts":           {"/repo/src/m.ts"},
		"/repo/src/utils.js":       {},
		"/repo/src/cycle-a.ts":     {"/repo/src/cycle-b.ts"},
		"/repo/src/cycle-b.ts":     {"/repo/src/cycle-a.ts"},
	}
	if diff := cmp.Diff(want, edges(graph)); diff != "" {
		t.Errorf("graph mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 11, stats.Processed)
	assert.Equal(t, 11, stats.Extracted)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.ParseFailures)
	assert.Equal(t, 8, stats.Edges)

	t.Run("served from cache", func(t *testing.T) {
		again, stats, err := b.Build(context.Background(), entries, builder.Options{Cache: c, Workers: 1})
		require.NoError(t, err)

		if diff := cmp.Diff(edges(graph), edges(again)); diff != "" {
			t.Errorf("cached graph mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, 11, stats.Processed)
		assert.Equal(t, 0, stats.Extracted)
		assert.Equal(t, uint64(11), c.Stats().Hits)
	})
}

func TestBuilder_Build_AliasMatchesRelativeImport(t *testing.T) {
	b, _ := newBuilder(t)

	graph, _, err := b.Build(context.Background(),
		[]string{"/repo/test/alias.test.js", "/repo/test/rel.test.js"}, builder.Options{})
	require.NoError(t, err)

	assert.Equal(t, graph.Dependencies("/repo/test/rel.test.js"), graph.Dependencies("/repo/test/alias.test.js"))
}

func TestBuilder_Build_ParseFailure(t *testing.T) {
	b, _ := newBuilder(t)

	graph, stats, err := b.Build(context.Background(), []string{"/repo/test/broken.test.ts"}, builder.Options{})
	require.NoError(t, err)

	assert.True(t, graph.Has("/repo/test/broken.test.ts"))
	assert.Empty(t, graph.Dependencies("/repo/test/broken.test.ts"))
	assert.Equal(t, 1, stats.ParseFailures)
}

func TestBuilder_Build_CustomExclude(t *testing.T) {
	b, _ := newBuilder(t)

	graph, _, err := b.Build(context.Background(), []string{"/repo/test/t1.test.ts"},
		builder.Options{Exclude: []string{}})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/repo/dist/out.js",
		"/repo/node_modules/dep/index.js",
		"/repo/src/m.ts",
	}, graph.Dependencies("/repo/test/t1.test.ts"))

	graph, stats, err := b.Build(context.Background(), []string{"/repo/test/t3.test.ts"},
		builder.Options{Exclude: []string{"/src/"}})
	require.NoError(t, err)

	assert.Empty(t, graph.Dependencies("/repo/test/t3.test.ts"))
	assert.Equal(t, 1, stats.Processed)
}

func TestBuilder_Build_Deterministic(t *testing.T) {
	b, _ := newBuilder(t)

	first, _, err := b.Build(context.Background(), entries, builder.Options{Workers: 1})
	require.NoError(t, err)
	for range 5 {
		next, _, err := b.Build(context.Background(), entries, builder.Options{Workers: 16})
		require.NoError(t, err)
		if diff := cmp.Diff(edges(first), edges(next)); diff != "" {
			t.Fatalf("graph depends on scheduling (-want +got):\n%s", diff)
		}
	}
}

func TestBuilder_Build_UnreadableFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	fsys := mocks.NewMockFileSystem(ctrl)
	extractor := mocks.NewMockSpecifierExtractor(ctrl)
	res := mocks.NewMockModuleResolver(ctrl)
	c := mocks.NewMockExtractionCache(ctrl)
	fsys.EXPECT().Realpath(gomock.Any()).DoAndReturn(func(p string) (string, error) { return p, nil }).AnyTimes()

	c.EXPECT().Get("/repo/a.test.ts").Return(nil, false)
	fsys.EXPECT().ReadFile("/repo/a.test.ts").Return(nil, errors.New("permission denied"))

	graph, stats, err := builder.New(fsys, extractor, res).
		Build(context.Background(), []string{"/repo/a.test.ts"}, builder.Options{Cache: c})
	require.NoError(t, err)

	assert.True(t, graph.Has("/repo/a.test.ts"))
	assert.Empty(t, graph.Dependencies("/repo/a.test.ts"))
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 0, stats.Extracted)
}

func TestBuilder_Build_CachesExtraction(t *testing.T) {
	ctrl := gomock.NewController(t)
	fsys := mocks.NewMockFileSystem(ctrl)
	extractor := mocks.NewMockSpecifierExtractor(ctrl)
	res := mocks.NewMockModuleResolver(ctrl)
	c := mocks.NewMockExtractionCache(ctrl)
	fsys.EXPECT().Realpath(gomock.Any()).DoAndReturn(func(p string) (string, error) { return p, nil }).AnyTimes()

	source := []byte(`import './b'; import './b.js';`)
	gomock.InOrder(
		c.EXPECT().Get("/repo/a.test.ts").Return(nil, false),
		fsys.EXPECT().ReadFile("/repo/a.test.ts").Return(source, nil),
		extractor.EXPECT().Extract(gomock.Any(), "/repo/a.test.ts", source).Return([]string{"./b", "./b.js"}, true),
		c.EXPECT().Set("/repo/a.test.ts", []string{"./b", "./b.js"}),
	)
	res.EXPECT().Resolve("./b", "/repo/a.test.ts").Return("/repo/b.js", true)
	res.EXPECT().Resolve("./b.js", "/repo/a.test.ts").Return("/repo/./b.js", true)
	c.EXPECT().Get("/repo/b.js").Return([]string{}, true)

	graph, stats, err := builder.New(fsys, extractor, res).
		Build(context.Background(), []string{"/repo/a.test.ts"}, builder.Options{Cache: c})
	require.NoError(t, err)

	assert.Equal(t, []string{"/repo/b.js"}, graph.Dependencies("/repo/a.test.ts"))
	assert.Equal(t, 1, stats.Edges)
	assert.Equal(t, 2, stats.Processed)
	assert.Equal(t, 1, stats.Extracted)
}

func TestBuilder_Build_Canceled(t *testing.T) {
	b, _ := newBuilder(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := b.Build(ctx, entries, builder.Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuilder_Build_NoEntries(t *testing.T) {
	b, _ := newBuilder(t)

	graph, stats, err := b.Build(context.Background(), nil, builder.Options{})
	require.NoError(t, err)

	assert.Equal(t, 0, graph.Len())
	assert.Equal(t, domain.BuildStats{Duration: stats.Duration}, stats)
}

func TestBuilder_Build_SymlinkedWorkspace(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, data string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	}
	write("packages/lib/package.json", `{"name": "lib"}`)
	write("packages/lib/index.js", "module.exports = 1;")
	write("test/a.test.js", "require('lib');")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules"), 0o750))
	require.NoError(t, os.Symlink(filepath.Join("..", "packages", "lib"), filepath.Join(dir, "node_modules", "lib")))

	fsys := fs.NewOSFS()
	manifests, err := resolver.NewManifestCache(fsys, 16)
	require.NoError(t, err)
	b := builder.New(fsys, parser.New(nil), resolver.New(fsys, manifests))

	test := b.Canonical(filepath.Join(dir, "test", "a.test.js"))
	lib := b.Canonical(filepath.Join(dir, "node_modules", "lib", "index.js"))
	assert.NotContains(t, lib, "node_modules")

	graph, _, err := b.Build(context.Background(), []string{filepath.Join(dir, "test", "a.test.js")}, builder.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{lib}, graph.Dependencies(test))

	changed := b.Canonical(filepath.Join(dir, "packages", "lib", "index.js"))
	assert.Equal(t, []string{test}, impact.Analyze([]string{changed}, []string{test}, graph))
}

func TestBuilder_Canonical_MissingFile(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	require.NoError(t, os.MkdirAll(real, 0o750))
	require.NoError(t, os.Symlink(real, filepath.Join(dir, "link")))

	b := builder.New(fs.NewOSFS(), nil, nil)
	want, err := filepath.EvalSymlinks(real)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(want, "gone.ts"), b.Canonical(filepath.Join(dir, "link", "gone.ts")))
	assert.Equal(t, "/", b.Canonical("/"))
}
