package devserver

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// serverMetrics are the Prometheus series a running Server exposes:
// counters for recompile outcomes and cache hits/misses, a histogram of
// recompile latency, and gauges for the size of the last compile's
// artifact and diagnostic sets.
type serverMetrics struct {
	recompilesTotal    *prometheus.CounterVec
	recomputeDuration  prometheus.Histogram
	cacheHitTotal      prometheus.Counter
	cacheMissTotal     prometheus.Counter
	artifactsGenerated prometheus.Gauge
	diagnosticsActive  prometheus.Gauge
}

// globalMetrics is a process-wide singleton: a metrics series can only be
// registered with a collector once, and a dev server started more than once
// in a process (e.g. across tests) must not try to register it twice.
var (
	globalMetrics     *serverMetrics
	globalMetricsOnce sync.Once
)

func newServerMetrics(registry prometheus.Registerer) *serverMetrics {
	globalMetricsOnce.Do(func() {
		globalMetrics = buildServerMetrics(registry)
	})
	return globalMetrics
}

func buildServerMetrics(registry prometheus.Registerer) *serverMetrics {
	factory := promauto.With(registry)
	return &serverMetrics{
		recompilesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "querido",
			Name:      "recompiles_total",
			Help:      "Total number of rescan-and-compile cycles, by outcome",
		}, []string{"outcome"}),
		recomputeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "querido",
			Name:      "recompile_duration_seconds",
			Help:      "Duration of a rescan-and-compile cycle",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheHitTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "querido",
			Name:      "compile_cache_hit_total",
			Help:      "Compiles that reused a previously memoized result",
		}),
		cacheMissTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "querido",
			Name:      "compile_cache_miss_total",
			Help:      "Compiles that recalculated because an input changed",
		}),
		artifactsGenerated: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "querido",
			Name:      "artifacts_generated",
			Help:      "Number of artifacts produced by the last compile",
		}),
		diagnosticsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "querido",
			Name:      "diagnostics_active",
			Help:      "Number of diagnostics outstanding from the last compile",
		}),
	}
}
