package resource

// Metrics receives cache events. Implementations must be safe for
// concurrent use. See metrics/prometheus for a Prometheus backed one.
type Metrics interface {
	// CacheHit is called when GetOrCreate or TryGet finds a matching entry.
	CacheHit()
	// CacheMiss is called when GetOrCreate has to run a factory.
	CacheMiss()
	// ResourceCreated is called when a factory result is published.
	ResourceCreated()
	// RaceLost is called when a built value loses the insert and is discarded.
	RaceLost()
	// ResourceReleased is called after each release routine runs.
	ResourceReleased(success bool)
	// Entries reports the number of cached entries after a change.
	Entries(n int)
}

type nopMetrics struct{}

func (nopMetrics) CacheHit()             {}
func (nopMetrics) CacheMiss()            {}
func (nopMetrics) ResourceCreated()      {}
func (nopMetrics) RaceLost()             {}
func (nopMetrics) ResourceReleased(bool) {}
func (nopMetrics) Entries(int)           {}

// NopMetrics returns a Metrics that discards every event.
func NopMetrics() Metrics { return nopMetrics{} }
