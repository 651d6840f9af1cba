package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = ".impacted.yaml"

	// StateDirName is the name of the directory holding impacted's local state.
	StateDirName = ".impacted"

	// CacheFileName is the name of the default extraction cache file.
	CacheFileName = "cache.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the default cache file path relative to the project root.
// It joins .impacted and cache.json.
func DefaultCachePath() string {
	return filepath.Join(StateDirName, CacheFileName)
}

// DefaultTestPattern matches conventional JavaScript and TypeScript test files.
const DefaultTestPattern = "**/*.{test,spec}.{js,mjs,cjs,jsx,ts,mts,cts,tsx}"

// DefaultExcludes returns the default path fragments excluded from the graph.
func DefaultExcludes() []string {
	return []string{"node_modules", "dist"}
}
