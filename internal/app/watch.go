package app

import (
	"context"
	"fmt"
	"io"
	"slices"

	"go.trai.ch/impacted/internal/adapters/watcher" //nolint:depguard // Debouncing is wired in the app layer
	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/core/ports"
	"go.trai.ch/impacted/internal/engine/builder"
	"go.trai.ch/impacted/internal/engine/impact"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// WatchOptions configures the Watch method.
type WatchOptions struct {
	Options
	// Stdout receives the impacted test files of every batch.
	Stdout io.Writer
}

// Watch reports the impacted test files for every debounced batch of file changes
// below the working directory until ctx is canceled.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	s, err := a.resolve(opts.Options)
	if err != nil {
		return err
	}
	if s.tests.IsEmpty() {
		return domain.ErrNoPatterns
	}

	w, err := a.watchers()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := w.Start(ctx, s.dir); err != nil {
		_ = w.Stop()
		return err
	}

	session := &watchSession{
		app:      a,
		settings: s,
		cache:    a.caches.Open(""),
		out:      opts.Stdout,
	}
	if err := session.warm(ctx); err != nil {
		_ = w.Stop()
		return err
	}
	a.logger.Info("watching " + s.dir)

	batches := make(chan []ports.FileEvent)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(batch []ports.FileEvent) {
		select {
		case batches <- batch:
		case <-ctx.Done():
		}
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		for event := range w.Events() {
			debouncer.Add(event)
		}
		return nil
	})
	g.Go(func() error {
		defer func() {
			_ = w.Stop()
		}()
		for {
			select {
			case <-ctx.Done():
				return nil
			case batch := <-batches:
				if err := session.handle(ctx, batch); err != nil {
					a.logger.Error(err)
				}
			}
		}
	})
	return g.Wait()
}

// watchSession keeps the state shared by the batches of one Watch call.
type watchSession struct {
	app      *App
	settings *settings
	cache    ports.ExtractionCache
	out      io.Writer

	// prev is the latest analysis. Removed files no longer resolve, so their dependents are only known to it.
	prev *analysis
}

// warm builds the initial graph so the first batch is served from cache.
func (w *watchSession) warm(ctx context.Context) error {
	tests, err := w.app.listTests(ctx, w.settings.testDir, w.settings.tests)
	if err != nil {
		return err
	}
	prev := &analysis{}
	prev.tests, prev.listed = w.app.identify(tests)
	prev.graph, err = w.app.buildGraph(ctx, prev.tests, builder.Options{
		Exclude: w.settings.exclude,
		Cache:   w.cache,
		Workers: w.settings.workers,
	})
	if err != nil {
		return err
	}
	w.prev = prev
	return nil
}

func (w *watchSession) handle(ctx context.Context, batch []ports.FileEvent) error {
	changed := make([]string, 0, len(batch))
	var removed []string
	for _, event := range batch {
		changed = append(changed, event.Path)
		if event.Kind == ports.ChangeRemoved {
			removed = append(removed, w.app.builder.Canonical(event.Path))
		}
	}

	res, err := w.app.analyze(ctx, Request{
		Changed: changed,
		Tests:   w.settings.tests,
		Dir:     w.settings.testDir,
		Exclude: w.settings.exclude,
		Cache:   w.cache,
		Workers: w.settings.workers,
	})
	if err != nil {
		return err
	}

	impacted := res.impacted
	if len(removed) > 0 && w.prev != nil && w.prev.graph != nil {
		for _, test := range w.prev.display(impact.Analyze(removed, w.prev.tests, w.prev.graph)) {
			if !slices.Contains(impacted, test) {
				impacted = append(impacted, test)
			}
		}
		slices.Sort(impacted)
	}
	if res.graph != nil {
		w.prev = res
	}

	w.app.logger.Info(fmt.Sprintf("%d changed, %d impacted", len(changed), len(impacted)))
	for _, test := range impacted {
		if _, err := fmt.Fprintln(w.out, w.settings.display(test)); err != nil {
			return zerr.Wrap(err, "failed to write results")
		}
	}

	w.app.writeMetrics(w.settings.metricsFile)
	return nil
}
