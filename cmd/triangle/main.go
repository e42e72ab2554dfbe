// Command triangle builds the GPU objects for a colored triangle through a
// resource cache and tears them down again.
package main

import (
	_ "embed"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan"
	"github.com/prometheus/client_golang/prometheus"

	engine "github.com/grimsleynate/ToD-Game-Engine"
	"github.com/grimsleynate/ToD-Game-Engine/gpu"
	promadapter "github.com/grimsleynate/ToD-Game-Engine/metrics/prometheus"
	"github.com/grimsleynate/ToD-Game-Engine/resource"
)

//go:embed shaders/triangle.wgsl
var triangleWGSL string

// position (x, y) followed by color (r, g, b)
var vertices = []float32{
	0.0, 0.5, 1, 0, 0,
	-0.5, -0.5, 0, 1, 0,
	0.5, -0.5, 0, 0, 1,
}

const vertexStride = 5 * 4

func main() {
	var (
		backend = flag.String("backend", "noop", "HAL backend: noop or vulkan")
		spirv   = flag.Bool("spirv", false, "compile WGSL to SPIR-V before creating the shader module")
		debug   = flag.Bool("debug", false, "enable debug logging")
		metrics = flag.Bool("metrics", false, "print cache metrics on exit")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	dev, err := openDevice(*backend)
	if err != nil {
		log.Fatalf("Failed to open device: %v", err)
	}
	defer func() {
		if err := dev.Release(); err != nil {
			log.Printf("Failed to release device: %v", err)
		}
	}()

	reg := prometheus.NewRegistry()
	res, err := gpu.NewResources(dev.Device, dev.Queue,
		resource.WithMetrics(promadapter.NewCacheMetrics(reg, "triangle")),
		resource.WithReleaseHook(func(key string, err error) {
			log.Printf("release %s: %v", key, err)
		}),
	)
	if err != nil {
		log.Fatalf("Failed to create resources: %v", err)
	}

	if err := build(res, *spirv); err != nil {
		_ = res.Close()
		log.Fatalf("Failed to build triangle: %v", err)
	}
	// A second pass is served from the cache.
	if err := build(res, *spirv); err != nil {
		_ = res.Close()
		log.Fatalf("Failed to rebuild triangle: %v", err)
	}

	s := res.Cache().Stats()
	log.Printf("Triangle ready on %s: %d objects, %d created, hit rate %.2f",
		dev.Adapter, s.Len, s.Created, s.HitRate)

	if err := res.Close(); err != nil {
		log.Printf("Release failures: %v", err)
	}

	if *metrics {
		printMetrics(reg)
	}
}

func openDevice(name string) (*gpu.Device, error) {
	switch name {
	case "vulkan":
		return gpu.Open(gputypes.BackendVulkan)
	case "noop":
		return gpu.OpenNoopDevice()
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

func build(res *gpu.Resources, spirv bool) error {
	if _, err := res.VertexBuffer("mesh/triangle", vertexBytes(vertices)); err != nil {
		return err
	}
	_, err := res.RenderPipeline("pipeline/triangle", func() (*hal.RenderPipelineDescriptor, error) {
		shader, err := shaderModule(res, spirv)
		if err != nil {
			return nil, err
		}
		layout, err := res.PipelineLayout("layout/triangle", nil)
		if err != nil {
			return nil, err
		}
		return &hal.RenderPipelineDescriptor{
			Layout: layout.Raw(),
			Vertex: hal.VertexState{
				Module:     shader.Raw(),
				EntryPoint: "vs_main",
				Buffers: []gputypes.VertexBufferLayout{
					{
						ArrayStride: vertexStride,
						StepMode:    gputypes.VertexStepModeVertex,
						Attributes: []gputypes.VertexAttribute{
							{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
							{Format: gputypes.VertexFormatFloat32x3, Offset: 2 * 4, ShaderLocation: 1},
						},
					},
				},
			},
			Fragment: &hal.FragmentState{
				Module:     shader.Raw(),
				EntryPoint: "fs_main",
				Targets: []gputypes.ColorTargetState{
					{
						Format:    gputypes.TextureFormatBGRA8Unorm,
						WriteMask: gputypes.ColorWriteMaskAll,
					},
				},
			},
			Primitive: gputypes.PrimitiveState{
				Topology: gputypes.PrimitiveTopologyTriangleList,
				CullMode: gputypes.CullModeNone,
			},
			Multisample: gputypes.MultisampleState{
				Count: 1,
				Mask:  0xFFFFFFFF,
			},
		}, nil
	})
	return err
}

func shaderModule(res *gpu.Resources, spirv bool) (*gpu.ShaderModule, error) {
	if spirv {
		return res.ShaderModuleSPIRV("shader/triangle.spv", triangleWGSL)
	}
	return res.ShaderModule("shader/triangle", triangleWGSL)
}

func vertexBytes(v []float32) []byte {
	out := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

func printMetrics(reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		log.Printf("Failed to gather metrics: %v", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			}
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += " " + lp.GetName() + "=" + lp.GetValue()
			}
			log.Printf("%s%s %g", mf.GetName(), labels, value)
		}
	}
}
