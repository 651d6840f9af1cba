package app

import (
	"os"
	"path/filepath"

	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/zerr"
)

// Options holds the settings shared by all commands. Zero values fall back to the config file.
type Options struct {
	// Dir is the working directory. Empty selects the process working directory.
	Dir string
	// Patterns overrides the configured test patterns. Entries without glob syntax are explicit files.
	Patterns []string
	// Exclude overrides the configured exclusion fragments.
	Exclude []string
	// CacheFile overrides the configured cache file.
	CacheFile string
	// NoCache disables the persisted cache.
	NoCache bool
	// Workers overrides the configured worker count.
	Workers int
	// MetricsFile overrides the configured metrics textfile.
	MetricsFile string
	// Relative prints paths relative to the working directory.
	Relative bool
}

// settings are Options merged with the project configuration.
type settings struct {
	dir         string
	root        string
	testDir     string
	tests       domain.TestSpec
	exclude     []string
	cacheFile   string
	workers     int
	metricsFile string
	relative    bool
}

// resolve merges opts over the configuration found from the working directory.
func (a *App) resolve(opts Options) (*settings, error) {
	dir, err := workingDir(opts.Dir)
	if err != nil {
		return nil, err
	}

	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if cfg.Path != "" {
		a.logger.Debug("using config " + cfg.Path)
	}

	s := &settings{
		dir:         dir,
		root:        cfg.Root,
		testDir:     cfg.Root,
		tests:       domain.NewTestSpec(cfg.Patterns...),
		exclude:     cfg.Exclude,
		cacheFile:   cfg.CacheFile,
		workers:     cfg.Workers,
		metricsFile: cfg.MetricsFile,
		relative:    opts.Relative,
	}

	if len(opts.Patterns) > 0 {
		s.tests = domain.NewTestSpec(opts.Patterns...)
		s.testDir = dir
	}
	if len(opts.Exclude) > 0 {
		s.exclude = opts.Exclude
	}
	if opts.CacheFile != "" {
		s.cacheFile = absolute(dir, opts.CacheFile)
	}
	if opts.NoCache {
		s.cacheFile = ""
	}
	if opts.Workers > 0 {
		s.workers = opts.Workers
	}
	if opts.MetricsFile != "" {
		s.metricsFile = absolute(dir, opts.MetricsFile)
	}
	return s, nil
}

// display renders path for output.
func (s *settings) display(path string) string {
	if !s.relative {
		return path
	}
	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		return path
	}
	return rel
}

func workingDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", zerr.Wrap(err, "failed to determine working directory")
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve directory"), "dir", dir)
	}
	return abs, nil
}
