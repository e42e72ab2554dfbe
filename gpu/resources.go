package gpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	engine "github.com/grimsleynate/ToD-Game-Engine"
	"github.com/grimsleynate/ToD-Game-Engine/resource"
)

// Resources creates HAL objects on a device and caches them by key.
//
// Keys share one namespace across kinds. Asking for a buffer under a key
// that holds a shader module fails with *resource.TypeMismatchError.
// Resources is safe for concurrent use.
type Resources struct {
	device hal.Device
	queue  hal.Queue
	cache  *resource.Cache
	logger *slog.Logger
}

// NewResources creates an empty resource set for device. queue is only
// needed for VertexBuffer and may be nil otherwise. opts configure the
// underlying cache.
func NewResources(device hal.Device, queue hal.Queue, opts ...resource.Option) (*Resources, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	return &Resources{
		device: device,
		queue:  queue,
		cache:  resource.New(opts...),
		logger: engine.Logger(),
	}, nil
}

// Cache returns the cache backing r.
func (r *Resources) Cache() *resource.Cache {
	return r.cache
}

// ShaderModule returns the shader module cached under key, creating it from
// WGSL source on first use.
func (r *Resources) ShaderModule(key, wgsl string) (*ShaderModule, error) {
	return resource.GetOrCreate(r.cache, key, func() (*ShaderModule, error) {
		return r.createShaderModule(key, hal.ShaderSource{WGSL: wgsl})
	})
}

// ShaderModuleSPIRV is like ShaderModule but compiles the WGSL source to
// SPIR-V before handing it to the device.
func (r *Resources) ShaderModuleSPIRV(key, wgsl string) (*ShaderModule, error) {
	return resource.GetOrCreate(r.cache, key, func() (*ShaderModule, error) {
		words, err := CompileWGSL(wgsl)
		if err != nil {
			return nil, err
		}
		return r.createShaderModule(key, hal.ShaderSource{SPIRV: words})
	})
}

func (r *Resources) createShaderModule(key string, src hal.ShaderSource) (*ShaderModule, error) {
	module, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  key,
		Source: src,
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module: %w", err)
	}
	r.logger.Debug("gpu: shader module created", "key", key)
	return newHandle(key, module, r.device.DestroyShaderModule), nil
}

// PipelineLayout returns the pipeline layout cached under key, creating it
// from desc on first use. An empty desc.Label is replaced by key.
func (r *Resources) PipelineLayout(key string, desc *hal.PipelineLayoutDescriptor) (*PipelineLayout, error) {
	return resource.GetOrCreate(r.cache, key, func() (*PipelineLayout, error) {
		d := hal.PipelineLayoutDescriptor{}
		if desc != nil {
			d = *desc
		}
		if d.Label == "" {
			d.Label = key
		}
		layout, err := r.device.CreatePipelineLayout(&d)
		if err != nil {
			return nil, fmt.Errorf("create pipeline layout: %w", err)
		}
		r.logger.Debug("gpu: pipeline layout created", "key", key)
		return newHandle(d.Label, layout, r.device.DestroyPipelineLayout), nil
	})
}

// RenderPipeline returns the render pipeline cached under key. On first use
// build is called for the descriptor; it typically looks up the shader
// module and layout through r. build is not called on a cache hit.
func (r *Resources) RenderPipeline(key string, build func() (*hal.RenderPipelineDescriptor, error)) (*RenderPipeline, error) {
	if build == nil {
		return nil, resource.ErrNilFactory
	}
	return resource.GetOrCreate(r.cache, key, func() (*RenderPipeline, error) {
		desc, err := build()
		if err != nil {
			return nil, fmt.Errorf("describe render pipeline: %w", err)
		}
		if desc == nil {
			return nil, resource.ErrEmptyResult
		}
		if desc.Label == "" {
			desc.Label = key
		}
		pipeline, err := r.device.CreateRenderPipeline(desc)
		if err != nil {
			return nil, fmt.Errorf("create render pipeline: %w", err)
		}
		r.logger.Debug("gpu: render pipeline created", "key", key)
		return newHandle(desc.Label, pipeline, r.device.DestroyRenderPipeline), nil
	})
}

// VertexBuffer returns the vertex buffer cached under key. On first use a
// buffer is created and data is written to it through the queue. The
// buffer size is rounded up to a multiple of 4 bytes.
func (r *Resources) VertexBuffer(key string, data []byte) (*Buffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyVertexData
	}
	return resource.GetOrCreate(r.cache, key, func() (*Buffer, error) {
		if r.queue == nil {
			return nil, ErrNilQueue
		}

		size := (uint64(len(data)) + 3) &^ 3
		buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
			Label: key,
			Size:  size,
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("create vertex buffer: %w", err)
		}

		payload := data
		if uint64(len(payload)) != size {
			payload = make([]byte, size)
			copy(payload, data)
		}
		r.queue.WriteBuffer(buf, 0, payload)

		r.logger.Debug("gpu: vertex buffer created", "key", key, "size", size)
		return newHandle(key, buf, r.device.DestroyBuffer), nil
	})
}

// Remove destroys the object cached under key.
func (r *Resources) Remove(key string) (bool, error) {
	return r.cache.Remove(key)
}

// Close destroys every cached object. It returns the joined release
// failures recorded over the lifetime of r, or nil.
func (r *Resources) Close() error {
	r.cache.Dispose()
	return errors.Join(r.cache.ReleaseFailures()...)
}
