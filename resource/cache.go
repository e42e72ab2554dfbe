package resource

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Cache maps string keys to lazily created resources of any type.
//
// Each key holds at most one instance at a time, built by the first
// GetOrCreate that misses. Cache is safe for concurrent use and must not be
// copied after creation. A disposed Cache cannot be reused.
type Cache struct {
	shards [ShardCount]*shard
	hasher Hasher

	disposed atomic.Bool
	flights  singleflight.Group

	logger      *slog.Logger
	metrics     Metrics
	releaseHook func(key string, err error)

	stats counters

	failMu   sync.Mutex
	failures []error
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Cache{
		hasher:      o.hasher,
		logger:      o.logger,
		metrics:     o.metrics,
		releaseHook: o.releaseHook,
	}
	for i := range c.shards {
		c.shards[i] = newShard()
	}
	return c
}

func (c *Cache) shardFor(key string) *shard {
	return c.shards[c.hasher(key)&shardMask]
}

// GetOrCreate returns the instance cached under key, creating it with
// factory on a miss.
//
// The factory only runs when no entry exists for key. Concurrent misses for
// the same key share one factory call, and every caller receives the same
// instance. If a built value cannot be published because another insert
// won, it is released and the winner is returned instead.
//
// Errors:
//   - ErrEmptyKey or ErrNilFactory for invalid arguments
//   - ErrCacheDisposed after Dispose; factory is not invoked
//   - ErrEmptyResult when factory returns a nil value
//   - *TypeMismatchError when key holds a value that is not a T
//   - the factory's own error, wrapped with the key
func GetOrCreate[T any](c *Cache, key string, factory func() (T, error)) (T, error) {
	var zero T
	if key == "" {
		return zero, ErrEmptyKey
	}
	if factory == nil {
		return zero, ErrNilFactory
	}
	if c.disposed.Load() {
		return zero, ErrCacheDisposed
	}

	sh := c.shardFor(key)
	if e, ok := sh.load(key); ok {
		return typed[T](c, e, true)
	}

	v, err, _ := c.flights.Do(key, func() (any, error) {
		return c.create(sh, key, func() (any, error) {
			return factory()
		})
	})
	if err != nil {
		return zero, err
	}
	return typed[T](c, v.(*entry), false)
}

// TryGet returns the instance cached under key if it exists and is a T.
// It never runs a factory and reports false for a disposed cache.
func TryGet[T any](c *Cache, key string) (T, bool) {
	var zero T
	if key == "" || c.disposed.Load() {
		return zero, false
	}
	e, ok := c.shardFor(key).load(key)
	if !ok {
		return zero, false
	}
	v, ok := e.value.(T)
	if !ok {
		return zero, false
	}
	c.hit()
	return v, true
}

// typed asserts e's value to T. Lookups that went through create have
// already been counted, so they pass hit false.
func typed[T any](c *Cache, e *entry, hit bool) (T, error) {
	v, ok := e.value.(T)
	if !ok {
		var zero T
		return zero, &TypeMismatchError{
			Key:      e.key,
			Expected: typeName[T](),
			Actual:   fmt.Sprintf("%T", e.value),
		}
	}
	if hit {
		c.hit()
	}
	return v, nil
}

// create runs inside a single flight for key. It re-checks the shard so a
// caller that missed just before an earlier flight published still shares
// that result.
func (c *Cache) create(sh *shard, key string, factory func() (any, error)) (*entry, error) {
	if e, ok := sh.load(key); ok {
		c.hit()
		return e, nil
	}
	if c.disposed.Load() {
		return nil, ErrCacheDisposed
	}

	c.stats.misses.Add(1)
	c.metrics.CacheMiss()

	value, err := factory()
	if err != nil {
		return nil, fmt.Errorf("resource: create %q: %w", key, err)
	}
	if isNil(value) {
		return nil, fmt.Errorf("%w: key %q", ErrEmptyResult, key)
	}

	e := newEntry(key, value)
	canonical, stored, rejected := sh.insertIfAbsent(e, c.disposed.Load)
	switch {
	case rejected:
		c.discard(e, "cache disposed")
		return nil, ErrCacheDisposed
	case !stored:
		c.discard(e, "key taken")
		return canonical, nil
	}

	c.stats.created.Add(1)
	c.metrics.ResourceCreated()
	c.metrics.Entries(c.Len())
	c.logger.Debug("resource: created", "key", key, "type", fmt.Sprintf("%T", value), "releasable", e.releasable())
	return e, nil
}

// discard releases a value that lost its insert.
func (c *Cache) discard(e *entry, reason string) {
	c.stats.racesLost.Add(1)
	c.metrics.RaceLost()
	c.logger.Debug("resource: discarding unpublished value", "key", e.key, "reason", reason)
	c.release(e)
}

// Remove detaches the entry for key and releases it.
//
// It reports false with a nil error when key is absent, and false with
// ErrCacheDisposed after Dispose. The entry is gone once Remove returns even
// if its release fails; the failure is recorded, not returned.
func (c *Cache) Remove(key string) (bool, error) {
	if c.disposed.Load() {
		return false, ErrCacheDisposed
	}
	if key == "" {
		return false, nil
	}

	e, ok := c.shardFor(key).detach(key)
	if !ok {
		return false, nil
	}
	c.metrics.Entries(c.Len())
	c.release(e)
	return true, nil
}

// Dispose releases every entry and marks the cache disposed.
//
// Dispose is idempotent. Releases run in no particular order and continue
// past individual failures. Afterwards GetOrCreate and Remove fail with
// ErrCacheDisposed and TryGet reports absent for every key.
func (c *Cache) Dispose() {
	if !c.disposed.CompareAndSwap(false, true) {
		return
	}

	var released, failed int
	for _, sh := range c.shards {
		for _, e := range sh.drain() {
			if !e.releasable() {
				continue
			}
			released++
			if c.release(e) != nil {
				failed++
			}
		}
	}
	c.metrics.Entries(0)
	c.logger.Info("resource: cache disposed", "released", released, "failed", failed)
}

// release runs the entry's release routine and records a failure.
// It returns the recorded failure, if any.
func (c *Cache) release(e *entry) error {
	if !e.releasable() {
		return nil
	}

	err := e.run()
	c.stats.released.Add(1)
	c.metrics.ResourceReleased(err == nil)
	if err == nil {
		return nil
	}

	c.stats.releaseFailures.Add(1)
	rerr := &ReleaseError{Key: e.key, Err: err}
	c.failMu.Lock()
	c.failures = append(c.failures, rerr)
	c.failMu.Unlock()

	c.logger.Warn("resource: release failed", "key", e.key, "err", err)
	if c.releaseHook != nil {
		c.releaseHook(e.key, err)
	}
	return rerr
}

func (c *Cache) hit() {
	c.stats.hits.Add(1)
	c.metrics.CacheHit()
}

// Contains reports whether an entry exists for key, of any type.
func (c *Cache) Contains(key string) bool {
	if c.disposed.Load() {
		return false
	}
	_, ok := c.shardFor(key).load(key)
	return ok
}

// Len returns the total number of entries across all shards.
func (c *Cache) Len() int {
	total := 0
	for _, sh := range c.shards {
		total += sh.len()
	}
	return total
}

// Keys returns a sorted snapshot of the cached keys.
func (c *Cache) Keys() []string {
	var keys []string
	for _, sh := range c.shards {
		keys = sh.keys(keys)
	}
	slices.Sort(keys)
	return keys
}

// Disposed reports whether Dispose has been called.
func (c *Cache) Disposed() bool {
	return c.disposed.Load()
}

// Stats returns current cache statistics.
func (c *Cache) Stats() Stats {
	return c.stats.snapshot(c.Len())
}

// ReleaseFailures returns every release failure recorded so far, oldest
// first. Each element is a *ReleaseError.
func (c *Cache) ReleaseFailures() []error {
	c.failMu.Lock()
	defer c.failMu.Unlock()
	return slices.Clone(c.failures)
}
