package gpu

import (
	"sync/atomic"

	"github.com/gogpu/wgpu/hal"
)

// Handle owns one HAL object and destroys it on Release.
//
// Handle implements resource.Releaser. Release is safe to call from any
// goroutine; only the first call destroys the object.
type Handle[T any] struct {
	label    string
	raw      T
	destroy  func(T)
	released atomic.Bool
}

// Handle kinds created by Resources.
type (
	ShaderModule   = Handle[hal.ShaderModule]
	PipelineLayout = Handle[hal.PipelineLayout]
	RenderPipeline = Handle[hal.RenderPipeline]
	Buffer         = Handle[hal.Buffer]
)

func newHandle[T any](label string, raw T, destroy func(T)) *Handle[T] {
	return &Handle[T]{label: label, raw: raw, destroy: destroy}
}

// Label returns the debug label the object was created with.
func (h *Handle[T]) Label() string { return h.label }

// Raw returns the underlying HAL object. It must not be used after Release.
func (h *Handle[T]) Raw() T { return h.raw }

// Released reports whether Release has been called.
func (h *Handle[T]) Released() bool { return h.released.Load() }

// Release destroys the HAL object. Subsequent calls return ErrReleased.
func (h *Handle[T]) Release() error {
	if !h.released.CompareAndSwap(false, true) {
		return ErrReleased
	}
	h.destroy(h.raw)
	return nil
}
