package soft3d

import "image"

// Default projection parameters used by Render.
const (
	DefaultFOV   = 0.78
	DefaultZNear = 0.01
	DefaultZFar  = 1.0
)

// Presenter receives each completed frame from Device.Present.
//
// The frame shares memory with the device's color buffer and is only valid
// until the next Clear; implementations that keep it must copy it.
type Presenter interface {
	Present(frame *image.RGBA) error
}

// PresenterFunc adapts an ordinary function to the Presenter interface.
type PresenterFunc func(frame *image.RGBA) error

// Present calls f(frame).
func (f PresenterFunc) Present(frame *image.RGBA) error {
	return f(frame)
}

// DeviceOption configures a Device during creation.
//
// Example:
//
//	// Serial rendering with a black background
//	dev, err := soft3d.NewDevice(640, 480, soft3d.WithBackground(soft3d.Black))
//
//	// Tiled rendering on 4 workers, presenting to a surface
//	dev, err := soft3d.NewDevice(640, 480,
//	    soft3d.WithWorkers(4),
//	    soft3d.WithPresenter(s))
type DeviceOption func(*deviceOptions)

// deviceOptions holds optional configuration for Device creation.
type deviceOptions struct {
	background Color4
	fov        float64
	znear      float64
	zfar       float64
	up         Vector3
	presenter  Presenter
	workers    int
}

// defaultOptions returns the default device options.
func defaultOptions() deviceOptions {
	return deviceOptions{
		background: Transparent,
		fov:        DefaultFOV,
		znear:      DefaultZNear,
		zfar:       DefaultZFar,
		up:         Up(),
		workers:    1,
	}
}

// WithBackground sets the color Clear fills the color buffer with.
// The default is Transparent.
func WithBackground(c Color4) DeviceOption {
	return func(o *deviceOptions) {
		o.background = c
	}
}

// WithProjection sets the vertical field of view (radians) and the near and
// far planes used to build the projection matrix in Render.
func WithProjection(fov, znear, zfar float64) DeviceOption {
	return func(o *deviceOptions) {
		o.fov = fov
		o.znear = znear
		o.zfar = zfar
	}
}

// WithUp sets the camera up vector. The default is +Y.
func WithUp(up Vector3) DeviceOption {
	return func(o *deviceOptions) {
		o.up = up
	}
}

// WithPresenter sets the surface that Present publishes frames to.
func WithPresenter(p Presenter) DeviceOption {
	return func(o *deviceOptions) {
		o.presenter = p
	}
}

// WithWorkers enables tiled parallel rasterization on n workers.
// 0 and 1 keep the single-threaded path; a negative n uses GOMAXPROCS.
// The output is identical either way.
func WithWorkers(n int) DeviceOption {
	return func(o *deviceOptions) {
		o.workers = n
	}
}
