// Package hud draws a status line on top of rendered frames.
package hud

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/soft3d"
)

// Padding around the text, in pixels.
const padding = 3

var (
	face     = basicfont.Face7x13
	textSrc  = image.NewUniform(color.RGBA{255, 255, 255, 255})
	backdrop = image.NewUniform(color.RGBA{0, 0, 0, 160})
	printer  = message.NewPrinter(language.English)
)

// Label formats the status line for a frame.
func Label(frame int, st soft3d.FrameStats) string {
	return printer.Sprintf("frame %d  tris %d  px %d  rejected %d",
		frame, st.Triangles, st.PixelsWritten, st.PixelsRejected)
}

// Bounds returns the rectangle Draw covers for text.
func Bounds(text string) image.Rectangle {
	w := font.MeasureString(face, text).Ceil()
	h := face.Height
	return image.Rect(0, 0, w+2*padding, h+2*padding)
}

// Draw writes text in the top-left corner of dst over a translucent
// backdrop, clipped to dst.
func Draw(dst draw.Image, text string) {
	r := Bounds(text).Add(dst.Bounds().Min).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, backdrop, image.Point{}, draw.Over)

	d := font.Drawer{
		Dst:  dst,
		Src:  textSrc,
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(r.Min.X + padding),
			Y: fixed.I(r.Min.Y + padding + face.Ascent),
		},
	}
	d.DrawString(text)
}

// Overlay returns a function suitable for driver.Loop.Overlay that draws
// the frame label onto the device's color buffer.
func Overlay() func(d *soft3d.Device, frame int) {
	return func(d *soft3d.Device, frame int) {
		Draw(d.ColorBuffer().RGBA(), Label(frame, d.Stats()))
	}
}
