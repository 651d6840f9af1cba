package ports

import "go.trai.ch/impacted/internal/core/domain"

// Metrics collects analysis counters.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveBuild records the outcome of one graph construction.
	ObserveBuild(stats domain.BuildStats, graphSize int)
	// ObserveCache records the current cache counters.
	ObserveCache(stats domain.CacheStats)
	// ObserveImpact records the number of changed files and impacted tests of one analysis.
	ObserveImpact(changed, impacted int)
	// WriteTextfile writes all metrics to path in the text exposition format.
	WriteTextfile(path string) error
}
