package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/engine/builder"
	"go.trai.ch/zerr"
)

// Graph output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDot  = "dot"
)

// GraphOptions configures the Graph method.
type GraphOptions struct {
	Options
	// Format selects the output format: text, json or dot.
	Format string
	// Stdout receives the rendered graph.
	Stdout io.Writer
}

// Graph builds the forward dependency graph of the test files and renders it.
func (a *App) Graph(ctx context.Context, opts GraphOptions) error {
	render, ok := renderers[opts.Format]
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrUnknownGraphFormat, "invalid --format"), "format", opts.Format)
	}

	s, err := a.resolve(opts.Options)
	if err != nil {
		return err
	}
	if s.tests.IsEmpty() {
		return domain.ErrNoPatterns
	}

	tests, err := a.listTests(ctx, s.testDir, s.tests)
	if err != nil {
		return err
	}

	buildOpts := builder.Options{Exclude: s.exclude, Workers: s.workers}
	if s.cacheFile != "" {
		cache := a.caches.Open(s.cacheFile)
		if err := cache.Load(); err != nil {
			a.logger.Warn(fmt.Sprintf("ignoring unreadable cache %s: %v", s.cacheFile, err))
		}
		buildOpts.Cache = cache
		defer func() {
			if err := cache.Save(); err != nil {
				a.logger.Warn(fmt.Sprintf("could not save cache %s: %v", s.cacheFile, err))
			}
		}()
	}

	graph, err := a.buildGraph(ctx, tests, buildOpts)
	if err != nil {
		return err
	}

	if err := render(opts.Stdout, relativeGraph(graph, s)); err != nil {
		return zerr.Wrap(err, "failed to write graph")
	}

	a.writeMetrics(s.metricsFile)
	return nil
}

// relativeGraph rewrites the graph keys for display.
func relativeGraph(g *domain.Graph, s *settings) *domain.Graph {
	if !s.relative {
		return g
	}
	out := domain.NewGraph()
	for _, file := range g.Files() {
		out.AddFile(s.display(file))
	}
	for from, to := range g.Edges() {
		out.AddEdge(s.display(from), s.display(to))
	}
	return out
}

var renderers = map[string]func(io.Writer, *domain.Graph) error{
	FormatText: renderText,
	FormatJSON: renderJSON,
	FormatDot:  renderDot,
}

func renderText(w io.Writer, g *domain.Graph) error {
	for _, file := range g.Files() {
		if _, err := fmt.Fprintln(w, file); err != nil {
			return err
		}
		for _, dep := range g.Dependencies(file) {
			if _, err := fmt.Fprintf(w, "  -> %s\n", dep); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderJSON(w io.Writer, g *domain.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}

func renderDot(w io.Writer, g *domain.Graph) error {
	if _, err := fmt.Fprintln(w, "digraph impacted {"); err != nil {
		return err
	}
	for _, file := range g.Files() {
		if _, err := fmt.Fprintf(w, "  %s;\n", strconv.Quote(file)); err != nil {
			return err
		}
	}
	for from, to := range g.Edges() {
		if _, err := fmt.Fprintf(w, "  %s -> %s;\n", strconv.Quote(from), strconv.Quote(to)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
