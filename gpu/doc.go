// Package gpu connects wgpu HAL objects to a resource cache.
//
// Every HAL object created here is wrapped in a [Handle] that remembers the
// device it came from and destroys the object exactly once on Release. The
// [Resources] facade builds handles on demand and caches them by name, so
// setup code can ask for "shader/triangle" from anywhere and get the same
// module back:
//
//	dev, err := gpu.OpenNoopDevice()
//	if err != nil {
//	    return err
//	}
//	defer dev.Release()
//
//	res, err := gpu.NewResources(dev.Device, dev.Queue)
//	if err != nil {
//	    return err
//	}
//	defer res.Close()
//
//	shader, err := res.ShaderModule("shader/triangle", triangleWGSL)
//
// The cache does not order teardown. HAL objects do not reference each
// other after creation, so a pipeline and the shader it was built from may
// be destroyed in either order, but every handle must be released before the
// device itself. Release the Resources before the Device.
package gpu
