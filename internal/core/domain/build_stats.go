package domain

import "time"

// BuildStats summarizes one graph construction.
type BuildStats struct {
	// Processed counts files that were extracted or served from cache.
	Processed int
	// Skipped counts visited files dropped by the exclusion or extension filters.
	Skipped int
	// Extracted counts files that were parsed because no valid cache entry existed.
	Extracted int
	// ParseFailures counts files where no grammar produced an error-free tree.
	ParseFailures int
	// Edges is the number of edges in the resulting graph.
	Edges int
	// Duration is the wall time of the build.
	Duration time.Duration
}
