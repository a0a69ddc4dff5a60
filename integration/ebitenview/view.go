// Package ebitenview shows a driver.Loop in a desktop window.
//
// Each ebiten tick runs one loop step and each draw uploads the device's
// color buffer to the screen. Ebiten treats the pixels as premultiplied,
// so use an opaque background.
package ebitenview

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/driver"
)

// View is an ebiten.Game driving a frame loop.
type View struct {
	loop  *driver.Loop
	frame *ebiten.Image
}

// New creates a view for loop. The loop's FPS is ignored; ebiten's tick
// rate paces the frames.
func New(loop *driver.Loop) *View {
	return &View{loop: loop}
}

// Update renders the next frame. It ends the game on Escape or once the
// loop reaches MaxFrames.
func (v *View) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if v.loop.MaxFrames > 0 && v.loop.Frame() >= v.loop.MaxFrames {
		return ebiten.Termination
	}
	return v.loop.Step()
}

// Draw copies the last rendered frame to screen.
func (v *View) Draw(screen *ebiten.Image) {
	d := v.loop.Device
	if v.frame == nil {
		v.frame = ebiten.NewImage(d.Width(), d.Height())
	}
	v.frame.WritePixels(d.ColorBuffer().Data())
	screen.DrawImage(v.frame, nil)
}

// Layout keeps the logical screen at the device size; ebiten scales it to
// the window.
func (v *View) Layout(_, _ int) (int, int) {
	return v.loop.Device.Width(), v.loop.Device.Height()
}

// Run opens a window of the device size times scale and blocks until it
// is closed.
func Run(loop *driver.Loop, title string, scale int) error {
	d := loop.Device
	scale = max(scale, 1)

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(d.Width()*scale, d.Height()*scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if loop.FPS > 0 {
		ebiten.SetTPS(loop.FPS)
	}

	soft3d.Logger().Info("soft3d: window opened", "title", title,
		"width", d.Width(), "height", d.Height(), "scale", scale)
	return ebiten.RunGame(New(loop))
}
