// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"sync"
)

// ImageSurface keeps a copy of the most recently presented frame.
//
// Unlike the other surfaces, ImageSurface is safe for concurrent use, so a
// UI goroutine may call Snapshot while a render loop presents.
//
// Example:
//
//	s := surface.NewImageSurface(320, 240)
//	dev, _ := soft3d.NewDevice(320, 240, soft3d.WithPresenter(s))
//	...
//	img := s.Snapshot()
type ImageSurface struct {
	mu     sync.Mutex
	img    *image.RGBA
	frames int
	closed bool
}

// NewImageSurface creates a surface whose snapshot starts as a transparent
// width x height image. Non-positive dimensions are clamped to 1.
func NewImageSurface(width, height int) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &ImageSurface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Width returns the width of the stored frame.
func (s *ImageSurface) Width() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img.Rect.Dx()
}

// Height returns the height of the stored frame.
func (s *ImageSurface) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img.Rect.Dy()
}

// Present copies frame. A frame of a different size replaces the stored
// image's dimensions.
func (s *ImageSurface) Present(frame *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	b := frame.Bounds()
	if s.img.Rect.Dx() != b.Dx() || s.img.Rect.Dy() != b.Dy() {
		s.img = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	}
	rowBytes := b.Dx() * 4
	for y := range b.Dy() {
		src := frame.PixOffset(b.Min.X, b.Min.Y+y)
		dst := y * s.img.Stride
		copy(s.img.Pix[dst:dst+rowBytes], frame.Pix[src:src+rowBytes])
	}
	s.frames++
	return nil
}

// Frames returns the number of frames presented so far.
func (s *ImageSurface) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Snapshot returns a copy of the last presented frame, or nil after Close.
func (s *ImageSurface) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	result := image.NewRGBA(s.img.Rect)
	copy(result.Pix, s.img.Pix)
	return result
}

// Close releases the stored frame.
func (s *ImageSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
