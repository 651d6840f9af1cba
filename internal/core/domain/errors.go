package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidPattern is returned when a test file glob pattern is malformed.
	ErrInvalidPattern = zerr.New("invalid test file pattern")

	// ErrNoPatterns is returned when neither patterns nor explicit test files are given.
	ErrNoPatterns = zerr.New("no test file patterns specified")

	// ErrListTestsFailed is returned when walking the working directory for test files fails.
	ErrListTestsFailed = zerr.New("failed to list test files")

	// ErrNotGitRepository is returned when no git repository encloses the working directory.
	ErrNotGitRepository = zerr.New("not a git repository")

	// ErrGitRevision is returned when a git revision cannot be resolved.
	ErrGitRevision = zerr.New("failed to resolve git revision")

	// ErrGitDiffFailed is returned when the working tree cannot be compared against a revision.
	ErrGitDiffFailed = zerr.New("failed to compute git changes")

	// ErrDiffParseFailed is returned when unified diff input cannot be parsed.
	ErrDiffParseFailed = zerr.New("failed to parse diff")

	// ErrChangesReadFailed is returned when the changed file list cannot be read.
	ErrChangesReadFailed = zerr.New("failed to read changed files")

	// ErrCacheReadFailed is returned when the persisted cache cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read cache file")

	// ErrCacheCorrupt is returned when the persisted cache cannot be decoded or fails its checksum.
	ErrCacheCorrupt = zerr.New("cache file is corrupt")

	// ErrCacheVersion is returned when the persisted cache was written by an incompatible version.
	ErrCacheVersion = zerr.New("unsupported cache file version")

	// ErrCacheWriteFailed is returned when the cache cannot be persisted.
	ErrCacheWriteFailed = zerr.New("failed to write cache file")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the config file holds invalid values.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrMetricsWriteFailed is returned when the metrics textfile cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics file")

	// ErrUnknownGraphFormat is returned when an unsupported graph output format is requested.
	ErrUnknownGraphFormat = zerr.New("unknown graph format")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to start file watcher")
)
