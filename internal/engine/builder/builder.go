// Package builder constructs the forward module dependency graph from a set of entry files.
package builder

import (
	"context"
	"path/filepath"
	"runtime"
	"time"

	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options configures a single graph construction.
type Options struct {
	// Exclude lists path fragments that drop a file from the graph.
	// A nil slice selects domain.DefaultExcludes; an empty slice excludes nothing.
	Exclude []string
	// Cache memoizes extracted specifiers. It may be nil.
	Cache ports.ExtractionCache
	// Workers bounds the number of files processed concurrently. Zero or less means runtime.NumCPU.
	Workers int
}

// Builder walks import relationships breadth-first starting at the entry files.
type Builder struct {
	fsys      ports.FileSystem
	extractor ports.SpecifierExtractor
	resolver  ports.ModuleResolver
}

// New creates a new Builder.
func New(fsys ports.FileSystem, extractor ports.SpecifierExtractor, resolver ports.ModuleResolver) *Builder {
	return &Builder{
		fsys:      fsys,
		extractor: extractor,
		resolver:  resolver,
	}
}

// Canonical returns the symlink-free identity of path.
// A path that does not exist keeps its name below the resolved parent directory,
// so removed files still match the graph they were recorded in.
func (b *Builder) Canonical(path string) string {
	path = filepath.Clean(path)
	if real, err := b.fsys.Realpath(path); err == nil {
		return real
	}
	dir := filepath.Dir(path)
	if dir == path {
		return path
	}
	if real, err := b.fsys.Realpath(dir); err == nil {
		return filepath.Join(real, filepath.Base(path))
	}
	return path
}

// fileResult is the outcome of processing one file of a level.
type fileResult struct {
	deps        []string
	extracted   bool
	parseFailed bool
}

// Build returns the forward graph reachable from entries.
// Every file is visited at most once, so cyclic imports terminate.
// The graph only depends on the inputs, not on worker scheduling.
// ctx is checked between levels.
func (b *Builder) Build(ctx context.Context, entries []string, opts Options) (*domain.Graph, domain.BuildStats, error) {
	start := time.Now()

	exclude := opts.Exclude
	if exclude == nil {
		exclude = domain.DefaultExcludes()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	graph := domain.NewGraph()
	var stats domain.BuildStats

	visited := make(map[string]struct{})
	var level []string
	for _, entry := range entries {
		entry = b.Canonical(entry)
		if _, seen := visited[entry]; seen {
			continue
		}
		visited[entry] = struct{}{}
		level = append(level, entry)
	}

	for len(level) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, stats, zerr.Wrap(err, "graph construction interrupted")
		}

		files := level[:0:0]
		for _, file := range level {
			if domain.IsExcluded(file, exclude) || !domain.IsSupported(file) {
				stats.Skipped++
				continue
			}
			files = append(files, file)
		}

		results := make([]fileResult, len(files))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i, file := range files {
			g.Go(func() error {
				results[i] = b.process(gctx, file, exclude, opts.Cache)
				return nil
			})
		}
		_ = g.Wait()

		var next []string
		for i, file := range files {
			res := results[i]
			stats.Processed++
			if res.extracted {
				stats.Extracted++
			}
			if res.parseFailed {
				stats.ParseFailures++
			}

			graph.AddFile(file)
			for _, dep := range res.deps {
				graph.AddEdge(file, dep)
				if _, seen := visited[dep]; !seen {
					visited[dep] = struct{}{}
					next = append(next, dep)
				}
			}
		}
		level = next
	}

	stats.Edges = graph.EdgeCount()
	stats.Duration = time.Since(start)
	return graph, stats, nil
}

// process returns the resolved, filtered dependencies of one file.
func (b *Builder) process(ctx context.Context, file string, exclude []string, cache ports.ExtractionCache) fileResult {
	var res fileResult

	specifiers, ok := lookup(cache, file)
	if !ok {
		specifiers, res.extracted, res.parseFailed = b.extract(ctx, file)
		if res.extracted && cache != nil {
			cache.Set(file, specifiers)
		}
	}

	seen := make(map[string]struct{}, len(specifiers))
	for _, specifier := range specifiers {
		target, ok := b.resolver.Resolve(specifier, file)
		if !ok {
			continue
		}
		target = filepath.Clean(target)
		if domain.IsExcluded(target, exclude) || !domain.IsSupported(target) {
			continue
		}
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}
		res.deps = append(res.deps, target)
	}
	return res
}

// extract reads and parses file. An unreadable file yields no specifiers and is not cached.
func (b *Builder) extract(ctx context.Context, file string) (specifiers []string, extracted, parseFailed bool) {
	source, err := b.fsys.ReadFile(file)
	if err != nil {
		return nil, false, false
	}
	specifiers, ok := b.extractor.Extract(ctx, file, source)
	return specifiers, true, !ok
}

func lookup(cache ports.ExtractionCache, file string) ([]string, bool) {
	if cache == nil {
		return nil, false
	}
	return cache.Get(file)
}
