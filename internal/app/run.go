package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// RunOptions configures the Run method.
type RunOptions struct {
	Options
	// Since compares the working tree against a git revision.
	Since string
	// Diff reads a unified diff from a file, or from Stdin when it is "-".
	Diff string
	// Files lists changed files explicitly.
	Files []string
	// Stdin provides changed files, one per line, when no other source is selected.
	Stdin io.Reader
	// Stdout receives the impacted test files.
	Stdout io.Writer
}

// Run prints the test files impacted by the selected changes, one per line.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	s, err := a.resolve(opts.Options)
	if err != nil {
		return err
	}

	changed, err := a.collectChanges(ctx, s.dir, opts)
	if err != nil {
		return err
	}
	a.logger.Debug(fmt.Sprintf("%d changed files", len(changed)))

	impacted, err := a.FindImpacted(ctx, Request{
		Changed:   changed,
		Tests:     s.tests,
		Dir:       s.testDir,
		Exclude:   s.exclude,
		CacheFile: s.cacheFile,
		Workers:   s.workers,
	})
	if err != nil {
		return err
	}

	for _, test := range impacted {
		if _, err := fmt.Fprintln(opts.Stdout, s.display(test)); err != nil {
			return zerr.Wrap(err, "failed to write results")
		}
	}

	a.writeMetrics(s.metricsFile)
	return nil
}

func (a *App) collectChanges(ctx context.Context, dir string, opts RunOptions) ([]string, error) {
	ctx, vertex := a.telemetry.Record(ctx, "collect changes")
	changed, err := a.readChanges(ctx, dir, opts)
	vertex.Complete(err)
	return changed, err
}

func (a *App) readChanges(ctx context.Context, dir string, opts RunOptions) ([]string, error) {
	var source ports.ChangeSource
	switch {
	case len(opts.Files) > 0:
		source = a.changes.Lines(strings.NewReader(strings.Join(opts.Files, "\n")), dir)
	case opts.Since != "":
		source = a.changes.Git(dir, opts.Since)
	case opts.Diff == "-":
		source = a.changes.Patch(opts.Stdin, dir)
	case opts.Diff != "":
		path := absolute(dir, opts.Diff)
		// #nosec G304 -- the diff path is provided by the user
		f, err := os.Open(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrChangesReadFailed.Error()), "path", path)
		}
		defer func() {
			_ = f.Close()
		}()
		source = a.changes.Patch(f, dir)
	default:
		a.warnIfTerminal(opts.Stdin)
		source = a.changes.Lines(opts.Stdin, dir)
	}
	return source.ChangedFiles(ctx)
}

// warnIfTerminal hints at the expected input when changed files would be typed interactively.
func (a *App) warnIfTerminal(r io.Reader) {
	f, ok := r.(*os.File)
	if !ok {
		return
	}
	if term.IsTerminal(int(f.Fd())) {
		a.logger.Warn("reading changed files from the terminal; pipe a file list or use --since or --diff")
	}
}

func (a *App) writeMetrics(path string) {
	if path == "" {
		return
	}
	if err := a.metrics.WriteTextfile(path); err != nil {
		a.logger.Warn(fmt.Sprintf("could not write metrics: %v", err))
	}
}
