package domain

// CacheEntry is the persisted extraction result of one file.
// ModTime is the file's modification time in Unix nanoseconds at the time of extraction.
type CacheEntry struct {
	ModTime    int64    `json:"mtime"`
	Specifiers []string `json:"imports"`
}

// CacheStats reports cumulative cache counters.
type CacheStats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Size   int    `json:"size"`
}
