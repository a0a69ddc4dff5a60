// Package driver runs the per-frame loop around a soft3d.Device.
//
// Each frame is, strictly in order:
//
//	Device.Clear → Update(scene, frame) → Device.RenderScene → Overlay → Device.Present
//
// The loop is single-threaded; the device may still rasterize on several
// workers internally.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/soft3d"
)

// ErrNotConfigured is returned when a Loop has no scene or no device.
var ErrNotConfigured = errors.New("driver: loop needs a scene and a device")

// UpdateFunc advances the scene before frame is rendered. frame counts
// from 0.
type UpdateFunc func(scene *soft3d.Scene, frame int)

// Loop drives repeated renders of one scene on one device.
type Loop struct {
	Scene  *soft3d.Scene
	Device *soft3d.Device

	// Update runs after Clear and before RenderScene. May be nil.
	Update UpdateFunc

	// Overlay runs after RenderScene and before Present, for drawing on
	// top of the frame. May be nil.
	Overlay func(d *soft3d.Device, frame int)

	// OnFrame is called after each successful Present. May be nil.
	OnFrame func(frame int, stats soft3d.FrameStats)

	// FPS caps the frame rate. 0 renders frames back to back.
	FPS int

	// MaxFrames stops Run after that many frames. 0 means run until the
	// context is cancelled.
	MaxFrames int

	frame int
}

// Frame returns the number of frames completed so far.
func (l *Loop) Frame() int {
	return l.frame
}

// Step renders exactly one frame.
func (l *Loop) Step() error {
	if l.Scene == nil || l.Device == nil {
		return ErrNotConfigured
	}

	n := l.frame
	l.Device.Clear()
	if l.Update != nil {
		l.Update(l.Scene, n)
	}
	l.Device.RenderScene(l.Scene)
	if l.Overlay != nil {
		l.Overlay(l.Device, n)
	}
	if err := l.Device.Present(); err != nil {
		return fmt.Errorf("driver: frame %d: %w", n, err)
	}

	l.frame++
	if l.OnFrame != nil {
		l.OnFrame(n, l.Device.Stats())
	}
	return nil
}

// Run renders frames until MaxFrames is reached, Step fails or ctx is
// cancelled. Cancellation is checked between frames and returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	if l.Scene == nil || l.Device == nil {
		return ErrNotConfigured
	}
	if l.FPS < 0 {
		return fmt.Errorf("driver: invalid fps: %d", l.FPS)
	}

	var tick <-chan time.Time
	if l.FPS > 0 {
		t := time.NewTicker(time.Second / time.Duration(l.FPS))
		defer t.Stop()
		tick = t.C
	}

	log := soft3d.Logger()
	log.Info("soft3d: loop started", "fps", l.FPS, "max_frames", l.MaxFrames)
	start := time.Now()
	first := l.frame

	for l.MaxFrames <= 0 || l.frame < l.MaxFrames {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := l.Step(); err != nil {
			return err
		}
	}

	log.Info("soft3d: loop finished",
		"frames", l.frame-first, "elapsed", time.Since(start))
	return nil
}

// Spin returns an UpdateFunc that turns every mesh by dy radians about its
// Y axis each frame.
func Spin(dy float64) UpdateFunc {
	return func(scene *soft3d.Scene, _ int) {
		for _, m := range scene.Meshes {
			if m != nil {
				m.Rotation.Y += dy
			}
		}
	}
}

// DefaultSpin is the per-frame rotation used by the command-line viewers.
const DefaultSpin = 0.01
