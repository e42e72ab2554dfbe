package gpu

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	engine "github.com/grimsleynate/ToD-Game-Engine"
)

// Device is an opened HAL device together with the instance that owns it.
// It implements resource.Releaser so it can live in a cache as one
// composite entry.
type Device struct {
	Instance hal.Instance
	Device   hal.Device
	Queue    hal.Queue

	// Adapter is the name of the adapter the device was opened on.
	Adapter string

	released atomic.Bool
}

// OpenNoopDevice opens a device on the noop backend. The noop backend
// accepts every call without touching real hardware, which makes it
// suitable for headless runs and tests.
func OpenNoopDevice() (*Device, error) {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("create noop instance: %w", err)
	}
	return openInstance(instance)
}

// Open opens a device on a registered HAL backend. Backends register
// themselves when their package is imported, for example
// github.com/gogpu/wgpu/hal/vulkan.
func Open(variant gputypes.Backend) (*Device, error) {
	backend, ok := hal.GetBackend(variant)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, variant)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	return openInstance(instance)
}

// openInstance opens the preferred adapter of instance, taking ownership
// of the instance. Discrete and integrated GPUs are preferred over others.
func openInstance(instance hal.Instance) (*Device, error) {
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	engine.Logger().Info("gpu: device opened", "adapter", selected.Info.Name)
	return &Device{
		Instance: instance,
		Device:   openDev.Device,
		Queue:    openDev.Queue,
		Adapter:  selected.Info.Name,
	}, nil
}

// Release destroys the device and then the instance.
// Subsequent calls return ErrReleased.
func (d *Device) Release() error {
	if !d.released.CompareAndSwap(false, true) {
		return ErrReleased
	}
	d.Device.Destroy()
	d.Instance.Destroy()
	return nil
}
