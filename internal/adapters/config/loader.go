// Package config provides the configuration loader for impacted.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only configuration schema version understood by the loader.
const SupportedVersion = "1"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     ports.FileSystem
}

// NewLoader creates a new Loader with the given logger and filesystem.
func NewLoader(logger ports.Logger, fsys ports.FileSystem) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

// Load discovers .impacted.yaml in cwd or its ancestors and resolves it against defaults.
// Without a config file the defaults rooted at cwd are returned.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, ok := l.findConfiguration(cwd)
	if !ok {
		return domain.DefaultConfig(cwd), nil
	}

	var file Configfile
	if err := l.readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if err := validate(&file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	root := filepath.Dir(configPath)
	cfg := domain.DefaultConfig(root)
	cfg.Path = configPath

	if len(file.Patterns) > 0 {
		cfg.Patterns = file.Patterns
	}
	if file.Exclude != nil {
		cfg.Exclude = file.Exclude
	}
	cfg.Workers = file.Workers

	switch {
	case file.Cache.Disabled && file.Cache.File != "":
		l.Logger.Warn(fmt.Sprintf("'cache.file' in %s has no effect while 'cache.disabled' is set", domain.ConfigFileName))
	case file.Cache.File != "":
		cfg.CacheFile = resolvePath(root, file.Cache.File)
	}

	if file.Metrics.File != "" {
		cfg.MetricsFile = resolvePath(root, file.Metrics.File)
	}

	return cfg, nil
}

func (l *Loader) findConfiguration(cwd string) (string, bool) {
	currentDir := filepath.Clean(cwd)
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := l.FS.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) readAndUnmarshalYAML(configPath string, target *Configfile) error {
	data, err := l.FS.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}

func validate(file *Configfile) error {
	if file.Version != "" && file.Version != SupportedVersion {
		return zerr.With(zerr.With(domain.ErrInvalidConfig, "field", "version"), "version", file.Version)
	}
	if file.Workers < 0 {
		return zerr.With(zerr.With(domain.ErrInvalidConfig, "field", "workers"), "workers", file.Workers)
	}
	for _, pattern := range file.Patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return zerr.With(zerr.With(domain.ErrInvalidConfig, "field", "patterns"), "pattern", pattern)
		}
	}
	return nil
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
