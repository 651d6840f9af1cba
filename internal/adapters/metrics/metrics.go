// Package metrics records analysis metrics with Prometheus and exports them as a textfile.
package metrics

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/core/ports"
	"go.trai.ch/zerr"
)

const namespace = "impacted"

var _ ports.Metrics = (*Metrics)(nil)

// Metrics implements ports.Metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	filesProcessed prometheus.Counter
	filesSkipped   prometheus.Counter
	parseFailures  prometheus.Counter
	buildDuration  prometheus.Histogram
	graphFiles     prometheus.Gauge
	graphEdges     prometheus.Gauge

	cacheHits    prometheus.Gauge
	cacheMisses  prometheus.Gauge
	cacheEntries prometheus.Gauge

	runs          prometheus.Counter
	changedFiles  prometheus.Gauge
	impactedTests prometheus.Gauge
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		filesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_processed_total",
			Help:      "Files whose specifiers were extracted or served from cache.",
		}),
		filesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_skipped_total",
			Help:      "Files reached by the traversal but excluded or unsupported.",
		}),
		parseFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_failures_total",
			Help:      "Files that could not be parsed by any grammar.",
		}),
		buildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_build_duration_seconds",
			Help:      "Time spent building the dependency graph.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		graphFiles: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_files",
			Help:      "Files in the last dependency graph.",
		}),
		graphEdges: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Edges in the last dependency graph.",
		}),
		cacheHits: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_hits",
			Help:      "Extraction cache hits of the current cache.",
		}),
		cacheMisses: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_misses",
			Help:      "Extraction cache misses of the current cache.",
		}),
		cacheEntries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Entries held by the extraction cache.",
		}),
		runs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Completed impact analyses.",
		}),
		changedFiles: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "changed_files",
			Help:      "Changed files given to the last analysis.",
		}),
		impactedTests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "impacted_tests",
			Help:      "Impacted test files found by the last analysis.",
		}),
	}
}

// ObserveBuild records one graph build.
func (m *Metrics) ObserveBuild(stats domain.BuildStats, graphSize int) {
	m.filesProcessed.Add(float64(stats.Processed))
	m.filesSkipped.Add(float64(stats.Skipped))
	m.parseFailures.Add(float64(stats.ParseFailures))
	m.buildDuration.Observe(stats.Duration.Seconds())
	m.graphFiles.Set(float64(graphSize))
	m.graphEdges.Set(float64(stats.Edges))
}

// ObserveCache records the current cache counters.
func (m *Metrics) ObserveCache(stats domain.CacheStats) {
	m.cacheHits.Set(float64(stats.Hits))
	m.cacheMisses.Set(float64(stats.Misses))
	m.cacheEntries.Set(float64(stats.Size))
}

// ObserveImpact records one completed analysis.
func (m *Metrics) ObserveImpact(changed, impacted int) {
	m.runs.Inc()
	m.changedFiles.Set(float64(changed))
	m.impactedTests.Set(float64(impacted))
}

// WriteTextfile writes all metrics to path in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsWriteFailed.Error()), "path", path)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsWriteFailed.Error()), "path", path)
	}
	return nil
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
