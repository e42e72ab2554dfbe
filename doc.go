// Package engine is the root of the ToD game engine scaffold.
//
// The engine wires a graphics device and a handful of GPU object factories
// together through a shared resource cache:
//
//   - resource: concurrency-safe cache of named, lazily created resources
//   - gpu: releasable wgpu HAL handles and a cache-backed factory facade
//   - metrics/prometheus: Prometheus metrics for resource caches
//
// This package only holds process-wide configuration shared by the
// sub-packages, currently the logger.
package engine
