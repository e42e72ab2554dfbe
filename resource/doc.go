// Package resource provides a concurrency-safe cache of named, lazily created
// resources with deterministic cleanup.
//
// A [Cache] maps a string key to a single canonical instance of any type.
// The instance is built on the first [GetOrCreate] for its key and shared by
// every later caller. Values that know how to tear themselves down are
// released exactly once, either by [Cache.Remove] or by [Cache.Dispose].
//
// # Usage
//
//	c := resource.New()
//	defer c.Dispose()
//
//	shader, err := resource.GetOrCreate(c, "triangle.shader", func() (*Shader, error) {
//	    return loadShader("triangle.wgsl")
//	})
//
//	if s, ok := resource.TryGet[*Shader](c, "triangle.shader"); ok {
//	    use(s)
//	}
//
// # Releasing
//
// The release capability of a value is discovered once, when the value is
// inserted. The first matching method set wins:
//
//   - [Releaser]: Release() error
//   - [io.Closer]: Close() error
//   - [Destroyer]: Destroy(), the convention used by wgpu HAL objects
//
// Values with none of these are dropped without a release call.
// Release failures (returned errors and panics) never propagate out of
// Remove or Dispose. They are logged at warn level, reported to the hook
// installed with [WithReleaseHook], and kept in [Cache.ReleaseFailures].
//
// # Concurrency
//
// Concurrent misses for the same key are collapsed so that normally only one
// factory runs. Publication of a value is a single insert-if-absent under the
// key's shard lock; a value that loses that insert is released before the
// caller receives the winner. The disposed flag is checked under the same
// lock, so a GetOrCreate racing Dispose either has its entry drained by
// Dispose or gets [ErrCacheDisposed] with its value released.
//
// There is no ordering between entries during Dispose. Resources that depend
// on each other must be torn down by the caller in order, or stored as one
// composite entry.
package resource
