package soft3d

import (
	"errors"
	"fmt"
	"image"
	"math"
	"runtime"

	"github.com/gogpu/soft3d/internal/parallel"
)

// ErrInvalidSize is returned by NewDevice for non-positive dimensions.
var ErrInvalidSize = errors.New("soft3d: invalid device size")

// FrameStats counts the work done since the last Clear.
type FrameStats struct {
	// Triangles is the number of faces handed to the scanline filler.
	Triangles int

	// Skipped is the number of faces dropped before filling because a
	// projected vertex was not finite or a face index was out of range.
	Skipped int

	// PixelsWritten is the number of pixels that passed the depth test.
	PixelsWritten int

	// PixelsRejected is the number of pixels discarded by the depth test.
	PixelsRejected int

	// TilesTouched is the number of tiles rasterized by the parallel path.
	// Always zero on the single-threaded path.
	TilesTouched int
}

// Add accumulates o into s.
func (s *FrameStats) Add(o FrameStats) {
	s.Triangles += o.Triangles
	s.Skipped += o.Skipped
	s.PixelsWritten += o.PixelsWritten
	s.PixelsRejected += o.PixelsRejected
	s.TilesTouched += o.TilesTouched
}

// Device is a software rasterizer owning a color buffer and a depth buffer
// of fixed size.
//
// A frame is Clear, one or more Render calls, then Present. Depth testing
// keeps the nearest fragment per pixel, so the order meshes are rendered in
// does not change the result except for exact depth ties, where the later
// write wins.
//
// Device is not safe for concurrent use. With WithWorkers(n > 1) the
// device rasterizes screen tiles in parallel internally, producing output
// identical to the single-threaded path.
type Device struct {
	width  int
	height int

	color *ColorBuffer
	depth *DepthBuffer
	opts  deviceOptions

	stats FrameStats

	// Per-frame scratch, reused across Render calls.
	tris []triangle

	// Tiled path only.
	sched     *parallel.Scheduler
	tileStats []FrameStats
}

// triangle is a projected face waiting to be filled.
type triangle struct {
	p1, p2, p3 Vector3
	color      Color4
}

// bounds returns the pixel rectangle that the scanline filler can touch
// for this triangle.
func (t *triangle) bounds() image.Rectangle {
	minX := min(t.p1.X, t.p2.X, t.p3.X)
	minY := min(t.p1.Y, t.p2.Y, t.p3.Y)
	maxX := max(t.p1.X, t.p2.X, t.p3.X)
	maxY := max(t.p1.Y, t.p2.Y, t.p3.Y)
	return image.Rect(trunc(minX), trunc(minY), trunc(maxX)+1, trunc(maxY)+1)
}

// NewDevice creates a device with a width x height back buffer.
//
// The color buffer starts transparent and the depth buffer starts at +Inf;
// call Clear before each frame to apply the configured background.
func NewDevice(width, height int, opts ...DeviceOption) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	d := &Device{
		width:  width,
		height: height,
		color:  NewColorBuffer(width, height),
		depth:  NewDepthBuffer(width, height),
		opts:   o,
	}
	if o.workers > 1 {
		d.sched = parallel.NewScheduler(width, height, o.workers)
		d.tileStats = make([]FrameStats, d.sched.Grid().TileCount())
	}

	Logger().Info("soft3d: device created",
		"width", width, "height", height, "workers", max(o.workers, 1))
	return d, nil
}

// Width returns the buffer width in pixels.
func (d *Device) Width() int {
	return d.width
}

// Height returns the buffer height in pixels.
func (d *Device) Height() int {
	return d.height
}

// ColorBuffer returns the device's color buffer.
func (d *Device) ColorBuffer() *ColorBuffer {
	return d.color
}

// DepthBuffer returns the device's depth buffer.
func (d *Device) DepthBuffer() *DepthBuffer {
	return d.depth
}

// Workers returns the number of rasterization workers (1 when serial).
func (d *Device) Workers() int {
	if d.sched == nil {
		return 1
	}
	return d.sched.Workers()
}

// Stats returns the counters accumulated since the last Clear.
func (d *Device) Stats() FrameStats {
	return d.stats
}

// Clear fills the color buffer with the background color, resets every
// depth cell to +Inf and zeroes the frame statistics.
func (d *Device) Clear() {
	d.stats = FrameStats{}

	if d.sched == nil {
		d.color.Fill(d.opts.background)
		d.depth.Reset()
		return
	}

	px := d.opts.background.bytes()
	d.sched.RunAll(func(t *parallel.Tile) {
		d.clearRect(t.Bounds(), px)
	})
}

// PutPixel writes c at (x, y) if z is not farther than the depth already
// stored there. x and y are truncated toward zero and must lie inside the
// buffer; use DrawPoint for a bounds-checked write.
func (d *Device) PutPixel(x, y, z float64, c Color4) {
	t := d.screen()
	t.putPixel(trunc(x), trunc(y), z, c.bytes())
}

// DrawPoint writes a depth-tested pixel at p, silently dropping points
// outside the visible area.
func (d *Device) DrawPoint(p Vector3, c Color4) {
	t := d.screen()
	t.drawPoint(p, c.bytes())
}

// Project transforms coord by m, applies the perspective divide and maps
// the result to pixel coordinates. Screen Y grows downward; Z is kept for
// the depth test.
func (d *Device) Project(coord Vector3, m Matrix) Vector3 {
	p := TransformCoordinates(coord, m)
	w := float64(d.width)
	h := float64(d.height)
	return Vector3{
		X: p.X*w + w/2,
		Y: -p.Y*h + h/2,
		Z: p.Z,
	}
}

// ProcessScanLine fills row y between the edges pa-pb (left) and pc-pd
// (right), interpolating depth linearly across the row.
func (d *Device) ProcessScanLine(y int, pa, pb, pc, pd Vector3, c Color4) {
	t := d.screen()
	t.processScanLine(y, pa, pb, pc, pd, c.bytes())
}

// DrawTriangle fills the screen-space triangle p1, p2, p3 with c.
// Triangles with a non-finite vertex are skipped.
func (d *Device) DrawTriangle(p1, p2, p3 Vector3, c Color4) {
	if !p1.IsFinite() || !p2.IsFinite() || !p3.IsFinite() {
		d.stats.Skipped++
		return
	}
	t := d.screen()
	t.drawTriangle(p1, p2, p3, c.bytes())
	d.stats.Triangles++
}

// Render draws every face of every mesh as seen from camera.
//
// Each mesh's world matrix (rotation then translation) is composed with
// the camera's view matrix and a perspective projection built from the
// device aspect ratio and the WithProjection parameters. Face i of a mesh
// with n faces is filled with Gray(0.25 + 0.75*i/n).
func (d *Device) Render(camera *Camera, meshes []*Mesh) {
	d.tris = d.project(camera, meshes, d.tris[:0])

	if d.sched == nil {
		t := d.screen()
		for i := range d.tris {
			tri := &d.tris[i]
			t.drawTriangle(tri.p1, tri.p2, tri.p3, tri.color.bytes())
		}
		d.stats.Triangles += len(d.tris)
		return
	}
	d.renderTiled()
}

// RenderScene renders the scene's meshes from the scene's camera.
func (d *Device) RenderScene(s *Scene) {
	d.Render(&s.Camera, s.Meshes)
}

// project transforms every face to screen space, in submission order,
// appending the drawable ones to dst.
func (d *Device) project(camera *Camera, meshes []*Mesh, dst []triangle) []triangle {
	view := camera.ViewMatrix(d.opts.up)
	proj := PerspectiveFovLH(d.opts.fov, float64(d.width)/float64(d.height),
		d.opts.znear, d.opts.zfar)

	for _, mesh := range meshes {
		if mesh == nil {
			continue
		}
		transform := mesh.WorldMatrix().Multiply(view).Multiply(proj)

		n := len(mesh.Faces)
		nv := len(mesh.Vertices)
		skipped := 0
		for i, f := range mesh.Faces {
			if f.A < 0 || f.A >= nv || f.B < 0 || f.B >= nv || f.C < 0 || f.C >= nv {
				skipped++
				continue
			}
			tri := triangle{
				p1: d.Project(mesh.Vertices[f.A], transform),
				p2: d.Project(mesh.Vertices[f.B], transform),
				p3: d.Project(mesh.Vertices[f.C], transform),
			}
			if !tri.p1.IsFinite() || !tri.p2.IsFinite() || !tri.p3.IsFinite() {
				skipped++
				continue
			}
			tri.color = Gray(0.25 + 0.75*float64(i%n)/float64(n))
			dst = append(dst, tri)
		}
		if skipped > 0 {
			Logger().Warn("soft3d: skipped degenerate faces",
				"mesh", mesh.Name, "skipped", skipped, "faces", n)
			d.stats.Skipped += skipped
		}
	}
	return dst
}

// renderTiled bins d.tris into screen tiles and fills every dirty tile on
// the worker pool. Each worker owns its tile's pixels and walks the tile's
// bin in submission order, so the result matches the serial path.
func (d *Device) renderTiled() {
	d.sched.Reset()
	for i := range d.tris {
		d.sched.Bin(i, d.tris[i].bounds())
	}

	touched := d.sched.Run(func(tile *parallel.Tile) {
		st := &d.tileStats[tile.Index]
		t := d.target(tile.Bounds(), st)
		for _, i := range tile.Items {
			tri := &d.tris[i]
			t.drawTriangle(tri.p1, tri.p2, tri.p3, tri.color.bytes())
		}
	})

	for i := range d.tileStats {
		d.stats.Add(d.tileStats[i])
		d.tileStats[i] = FrameStats{}
	}
	d.stats.Triangles += len(d.tris)
	d.stats.TilesTouched += touched
}

// Present hands the color buffer to the configured Presenter. It is a
// no-op without one.
func (d *Device) Present() error {
	p := d.opts.presenter
	if p == nil {
		return nil
	}
	if err := p.Present(d.color.RGBA()); err != nil {
		Logger().Warn("soft3d: present failed", "err", err)
		return fmt.Errorf("soft3d: present: %w", err)
	}
	Logger().Debug("soft3d: frame presented",
		"triangles", d.stats.Triangles,
		"skipped", d.stats.Skipped,
		"written", d.stats.PixelsWritten,
		"rejected", d.stats.PixelsRejected,
		"tiles", d.stats.TilesTouched)
	return nil
}

// SetPresenter replaces the Presenter used by Present. nil disables
// presenting.
func (d *Device) SetPresenter(p Presenter) {
	d.opts.presenter = p
}

// Close stops the worker pool. The device falls back to the serial path
// and remains usable.
func (d *Device) Close() {
	if d.sched == nil {
		return
	}
	d.sched.Close()
	d.sched = nil
	d.tileStats = nil
}

// screen returns a raster target covering the whole buffer.
func (d *Device) screen() target {
	return d.target(image.Rect(0, 0, d.width, d.height), &d.stats)
}

func (d *Device) target(clip image.Rectangle, stats *FrameStats) target {
	return target{
		color: d.color,
		depth: d.depth.data,
		width: d.width,
		clip:  clip,
		stats: stats,
	}
}

// clearRect resets the pixels of r to px and their depth to +Inf.
func (d *Device) clearRect(r image.Rectangle, px [4]uint8) {
	far := math.Inf(1)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := y * d.width
		for x := r.Min.X; x < r.Max.X; x++ {
			d.color.set(row+x, px)
			d.depth.data[row+x] = far
		}
	}
}
