package gpu

import "errors"

// GPU resource errors.
var (
	// ErrNilDevice is returned when a nil device is supplied.
	ErrNilDevice = errors.New("gpu: device is nil")

	// ErrNilQueue is returned when an upload is requested without a queue.
	ErrNilQueue = errors.New("gpu: queue is nil")

	// ErrNoAdapter is returned when an instance exposes no adapters.
	ErrNoAdapter = errors.New("gpu: no adapters found")

	// ErrBackendUnavailable is returned when a HAL backend is not registered.
	ErrBackendUnavailable = errors.New("gpu: backend not available")

	// ErrReleased is returned when releasing a handle a second time.
	ErrReleased = errors.New("gpu: resource already released")

	// ErrEmptyVertexData is returned when uploading zero bytes of vertices.
	ErrEmptyVertexData = errors.New("gpu: vertex data is empty")

	// ErrInvalidSPIRV is returned when the compiler output is not whole words.
	ErrInvalidSPIRV = errors.New("gpu: SPIR-V output is not 4-byte aligned")
)
