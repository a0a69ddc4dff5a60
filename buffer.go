package soft3d

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// ColorBuffer is the device's back buffer: width*height pixels, 4 bytes per
// pixel in R, G, B, A order.
type ColorBuffer struct {
	width  int
	height int
	data   []uint8
}

// NewColorBuffer creates a zeroed (transparent) color buffer.
func NewColorBuffer(width, height int) *ColorBuffer {
	return &ColorBuffer{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the buffer.
func (b *ColorBuffer) Width() int {
	return b.width
}

// Height returns the height of the buffer.
func (b *ColorBuffer) Height() int {
	return b.height
}

// Data returns the raw pixel data (RGBA format).
func (b *ColorBuffer) Data() []uint8 {
	return b.data
}

// Fill sets every pixel to c.
func (b *ColorBuffer) Fill(c Color4) {
	if len(b.data) == 0 {
		return
	}
	px := c.bytes()
	copy(b.data, px[:])
	// Double the initialized prefix until the whole buffer is filled.
	for n := 4; n < len(b.data); n *= 2 {
		copy(b.data[n:], b.data[:n])
	}
}

// PixelAt returns the color of a single pixel.
// Out-of-bounds coordinates return Transparent.
func (b *ColorBuffer) PixelAt(x, y int) Color4 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Transparent
	}
	i := (y*b.width + x) * 4
	return Color4{
		R: float64(b.data[i+0]) / 255,
		G: float64(b.data[i+1]) / 255,
		B: float64(b.data[i+2]) / 255,
		A: float64(b.data[i+3]) / 255,
	}
}

// set writes c at the linear pixel index. No bounds check.
func (b *ColorBuffer) set(index int, c [4]uint8) {
	i := index * 4
	b.data[i+0] = c[0]
	b.data[i+1] = c[1]
	b.data[i+2] = c[2]
	b.data[i+3] = c[3]
}

// RGBA returns an *image.RGBA that shares memory with the buffer.
// Writes through either value are visible in the other.
func (b *ColorBuffer) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    b.data,
		Stride: b.width * 4,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// ToImage returns a copy of the buffer as an image.RGBA.
func (b *ColorBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.data)
	return img
}

// SavePNG saves the buffer to a PNG file.
func (b *ColorBuffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, b.RGBA()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (b *ColorBuffer) At(x, y int) color.Color {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.RGBA{}
	}
	i := (y*b.width + x) * 4
	return color.RGBA{R: b.data[i], G: b.data[i+1], B: b.data[i+2], A: b.data[i+3]}
}

// Bounds implements the image.Image interface.
func (b *ColorBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *ColorBuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// DepthBuffer stores the nearest depth written so far for every pixel.
type DepthBuffer struct {
	width  int
	height int
	data   []float64
}

// NewDepthBuffer creates a depth buffer with every cell at +Inf.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{
		width:  width,
		height: height,
		data:   make([]float64, width*height),
	}
	d.Reset()
	return d
}

// Reset sets every cell to +Inf so that the first write to any pixel
// always passes the depth test.
func (d *DepthBuffer) Reset() {
	far := math.Inf(1)
	for i := range d.data {
		d.data[i] = far
	}
}

// At returns the stored depth at (x, y), or +Inf outside the buffer.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return math.Inf(1)
	}
	return d.data[y*d.width+x]
}

// Data returns the raw depth values in row-major order.
func (d *DepthBuffer) Data() []float64 {
	return d.data
}
