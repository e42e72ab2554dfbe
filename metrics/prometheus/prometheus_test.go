package prometheus

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grimsleynate/ToD-Game-Engine/resource"
)

type buffer struct {
	err error
}

func (b *buffer) Release() error { return b.err }

func TestNewCacheMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCacheMetrics(reg, "gpu")
	require.NotNil(t, m)

	m.CacheHit()
	m.CacheMiss()
	m.ResourceCreated()
	m.RaceLost()
	m.ResourceReleased(true)
	m.ResourceReleased(false)
	m.Entries(3)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
		for _, metric := range mf.GetMetric() {
			var cacheLabel string
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == "cache" {
					cacheLabel = lp.GetValue()
				}
			}
			assert.Equal(t, "gpu", cacheLabel, "metric %s", mf.GetName())
		}
	}

	assert.True(t, names["tod_resource_cache_hits_total"])
	assert.True(t, names["tod_resource_cache_misses_total"])
	assert.True(t, names["tod_resource_cache_created_total"])
	assert.True(t, names["tod_resource_cache_races_lost_total"])
	assert.True(t, names["tod_resource_cache_releases_total"])
	assert.True(t, names["tod_resource_cache_entries"])
}

func TestCacheMetricsWiredIntoCache(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCacheMetrics(reg, "meshes").(*cacheMetrics)
	c := resource.New(resource.WithMetrics(m))

	_, err := resource.GetOrCreate(c, "triangle", func() (*buffer, error) { return &buffer{}, nil })
	require.NoError(t, err)
	_, err = resource.GetOrCreate(c, "triangle", func() (*buffer, error) { return &buffer{}, nil })
	require.NoError(t, err)
	_, err = resource.GetOrCreate(c, "quad", func() (*buffer, error) {
		return &buffer{err: errors.New("device lost")}, nil
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.hits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.misses))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.created))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.entries))

	c.Dispose()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.releases.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.releases.WithLabelValues("false")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.entries))
}

func TestNewCacheMetricsDuplicateNamePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCacheMetrics(reg, "dup")
	assert.Panics(t, func() { NewCacheMetrics(reg, "dup") })
	assert.NotPanics(t, func() { NewCacheMetrics(reg, "other") })
}
