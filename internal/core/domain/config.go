package domain

// Config is the resolved configuration of one invocation.
type Config struct {
	// Root is the directory the configuration applies to.
	// It is the directory of the config file, or the working directory when none was found.
	Root string
	// Path is the config file that was loaded. Empty when defaults are in use.
	Path string
	// Patterns are the test file globs.
	Patterns []string
	// Exclude lists path fragments excluded from the graph.
	Exclude []string
	// CacheFile is the absolute path of the persisted extraction cache. Empty disables persistence.
	CacheFile string
	// Workers bounds the number of files processed concurrently.
	Workers int
	// MetricsFile is the absolute path of the prometheus textfile output. Empty disables it.
	MetricsFile string
}

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:     root,
		Patterns: []string{DefaultTestPattern},
		Exclude:  DefaultExcludes(),
	}
}
