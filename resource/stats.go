package resource

import "sync/atomic"

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Hits is the number of lookups that found a matching entry.
	Hits uint64
	// Misses is the number of GetOrCreate calls that ran a factory.
	Misses uint64
	// HitRate is the hit rate 0.0 to 1.0.
	HitRate float64
	// Created is the number of factory results published.
	Created uint64
	// RacesLost is the number of built values discarded because another
	// insert won, or the cache was disposed first.
	RacesLost uint64
	// Released is the number of release routines that ran.
	Released uint64
	// ReleaseFailures is the number of release routines that failed.
	ReleaseFailures uint64
}

// counters are updated atomically for lock-free reads.
type counters struct {
	hits            atomic.Uint64
	misses          atomic.Uint64
	created         atomic.Uint64
	racesLost       atomic.Uint64
	released        atomic.Uint64
	releaseFailures atomic.Uint64
}

func (c *counters) snapshot(n int) Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:             n,
		Hits:            hits,
		Misses:          misses,
		HitRate:         hitRate,
		Created:         c.created.Load(),
		RacesLost:       c.racesLost.Load(),
		Released:        c.released.Load(),
		ReleaseFailures: c.releaseFailures.Load(),
	}
}
