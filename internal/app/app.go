// Package app implements the application layer for impacted.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/core/ports"
	"go.trai.ch/impacted/internal/engine/builder"
	"go.trai.ch/impacted/internal/engine/impact"
	"go.trai.ch/zerr"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	lister       ports.TestFileLister
	builder      *builder.Builder
	changes      ports.ChangeSourceFactory
	caches       ports.CacheFactory
	watchers     ports.WatcherFactory
	telemetry    ports.Telemetry
	metrics      ports.Metrics
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	lister ports.TestFileLister,
	graphBuilder *builder.Builder,
	changes ports.ChangeSourceFactory,
	caches ports.CacheFactory,
	watchers ports.WatcherFactory,
	telemetry ports.Telemetry,
	metrics ports.Metrics,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		lister:       lister,
		builder:      graphBuilder,
		changes:      changes,
		caches:       caches,
		watchers:     watchers,
		telemetry:    telemetry,
		metrics:      metrics,
		logger:       log,
	}
}

// Close flushes the telemetry session.
func (a *App) Close() error {
	return a.telemetry.Close()
}

// Request is the input of FindImpacted.
type Request struct {
	// Changed lists the changed files. Relative paths are resolved against Dir.
	Changed []string
	// Tests selects the candidate test files.
	Tests domain.TestSpec
	// Dir is the working directory. Test patterns are matched relative to it.
	Dir string
	// Exclude lists path fragments dropped from the graph. Nil selects the defaults.
	Exclude []string
	// Cache is used for the analysis when set. It is neither loaded nor saved.
	Cache ports.ExtractionCache
	// CacheFile names a persisted cache that is loaded before and saved after the analysis.
	// It is ignored when Cache is set.
	CacheFile string
	// Workers bounds the number of files processed concurrently.
	Workers int
}

// analysis is the outcome of one FindImpacted call.
type analysis struct {
	// tests are the symlink-free identities of the listed test files.
	tests []string
	// listed maps every identity in tests back to the path it was listed under.
	listed   map[string]string
	graph    *domain.Graph
	impacted []string
}

// FindImpacted returns the sorted test files affected by the changed files.
func (a *App) FindImpacted(ctx context.Context, req Request) ([]string, error) {
	res, err := a.analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	return res.impacted, nil
}

func (a *App) analyze(ctx context.Context, req Request) (*analysis, error) {
	res := &analysis{impacted: []string{}}
	if len(req.Changed) == 0 {
		return res, nil
	}
	if req.Tests.IsEmpty() {
		a.logger.Debug("no test file patterns given")
		return res, nil
	}

	dir, err := workingDir(req.Dir)
	if err != nil {
		return nil, err
	}

	changed := make([]string, 0, len(req.Changed))
	for _, c := range req.Changed {
		changed = append(changed, a.builder.Canonical(absolute(dir, c)))
	}

	tests, err := a.listTests(ctx, dir, req.Tests)
	if err != nil {
		return nil, err
	}
	if len(tests) == 0 {
		a.logger.Debug("no test files matched")
		return res, nil
	}
	res.tests, res.listed = a.identify(tests)

	cache := req.Cache
	var persistent ports.PersistentCache
	cacheFile := ""
	if cache == nil && req.CacheFile != "" {
		cacheFile = absolute(dir, req.CacheFile)
		persistent = a.caches.Open(cacheFile)
		if err := persistent.Load(); err != nil {
			a.logger.Warn(fmt.Sprintf("ignoring unreadable cache %s: %v", cacheFile, err))
		}
		cache = persistent
	}

	graph, err := a.buildGraph(ctx, res.tests, builder.Options{
		Exclude: req.Exclude,
		Cache:   cache,
		Workers: req.Workers,
	})
	if err != nil {
		return nil, err
	}
	res.graph = graph

	_, vertex := a.telemetry.Record(ctx, "analyze impact")
	res.impacted = res.display(impact.Analyze(changed, res.tests, graph))
	vertex.Complete(nil)

	if cache != nil {
		a.metrics.ObserveCache(cache.Stats())
	}
	a.metrics.ObserveImpact(len(changed), len(res.impacted))

	if persistent != nil {
		if err := persistent.Save(); err != nil {
			a.logger.Warn(fmt.Sprintf("could not save cache %s: %v", cacheFile, err))
		}
	}

	return res, nil
}

// identify returns the symlink-free identities of tests and the listed path of each.
func (a *App) identify(tests []string) ([]string, map[string]string) {
	ids := make([]string, 0, len(tests))
	listed := make(map[string]string, len(tests))
	for _, test := range tests {
		id := a.builder.Canonical(test)
		listed[id] = test
		ids = append(ids, id)
	}
	return ids, listed
}

// display maps impacted identities back to their listed paths, sorted.
func (res *analysis) display(impacted []string) []string {
	out := make([]string, 0, len(impacted))
	for _, id := range impacted {
		if test, ok := res.listed[id]; ok {
			out = append(out, test)
			continue
		}
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (a *App) listTests(ctx context.Context, dir string, spec domain.TestSpec) ([]string, error) {
	ctx, vertex := a.telemetry.Record(ctx, "list tests")
	tests, err := a.lister.List(ctx, dir, spec)
	vertex.Complete(err)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to list test files"), "dir", dir)
	}
	a.logger.Debug(fmt.Sprintf("found %d test files", len(tests)))
	return tests, nil
}

func (a *App) buildGraph(ctx context.Context, entries []string, opts builder.Options) (*domain.Graph, error) {
	ctx, vertex := a.telemetry.Record(ctx, "build graph")
	graph, stats, err := a.builder.Build(ctx, entries, opts)
	if err != nil {
		vertex.Complete(err)
		return nil, err
	}
	if stats.Processed > 0 && stats.Extracted == 0 {
		vertex.Cached()
	}
	vertex.Complete(nil)

	a.metrics.ObserveBuild(stats, graph.Len())
	a.logger.Debug(fmt.Sprintf(
		"graph: %d files, %d edges, %d parsed, %d skipped, %d parse failures",
		graph.Len(), stats.Edges, stats.Extracted, stats.Skipped, stats.ParseFailures,
	))
	return graph, nil
}

func absolute(dir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}
