// Package prometheus provides a Prometheus implementation of resource.Metrics.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/grimsleynate/ToD-Game-Engine/resource"
)

// cacheMetrics implements resource.Metrics using Prometheus.
type cacheMetrics struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	created   prometheus.Counter
	racesLost prometheus.Counter
	releases  *prometheus.CounterVec
	entries   prometheus.Gauge
}

// NewCacheMetrics creates Prometheus metrics for one resource cache.
// Every series carries a cache=<name> label, so several caches can share a
// registry as long as their names differ. Registration panics on a duplicate
// name, like prometheus.MustRegister.
func NewCacheMetrics(reg prometheus.Registerer, name string) resource.Metrics {
	m := &cacheMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tod_resource_cache_hits_total",
			Help: "Total number of lookups that found a cached resource",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tod_resource_cache_misses_total",
			Help: "Total number of lookups that ran a factory",
		}),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tod_resource_cache_created_total",
			Help: "Total number of resources published to the cache",
		}),
		racesLost: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tod_resource_cache_races_lost_total",
			Help: "Total number of built resources discarded because another insert won",
		}),
		releases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tod_resource_cache_releases_total",
			Help: "Total number of resource release routines run",
		}, []string{"success"}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tod_resource_cache_entries",
			Help: "Current number of cached resources",
		}),
	}

	prometheus.WrapRegistererWith(prometheus.Labels{"cache": name}, reg).MustRegister(
		m.hits,
		m.misses,
		m.created,
		m.racesLost,
		m.releases,
		m.entries,
	)

	return m
}

func (m *cacheMetrics) CacheHit()        { m.hits.Inc() }
func (m *cacheMetrics) CacheMiss()       { m.misses.Inc() }
func (m *cacheMetrics) ResourceCreated() { m.created.Inc() }
func (m *cacheMetrics) RaceLost()        { m.racesLost.Inc() }
func (m *cacheMetrics) Entries(n int)    { m.entries.Set(float64(n)) }

func (m *cacheMetrics) ResourceReleased(success bool) {
	m.releases.WithLabelValues(boolToStr(success)).Inc()
}

func boolToStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

var _ resource.Metrics = (*cacheMetrics)(nil)
