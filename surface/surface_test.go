// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/gogpu/soft3d"
)

var (
	_ soft3d.Presenter = (*ImageSurface)(nil)
	_ soft3d.Presenter = (*PNGSurface)(nil)
	_ soft3d.Presenter = (*ANSISurface)(nil)
)

func solidFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestNewImageSurfaceInvalidSize(t *testing.T) {
	s := NewImageSurface(0, -3)
	if s.Width() != 1 || s.Height() != 1 {
		t.Errorf("expected 1x1, got %dx%d", s.Width(), s.Height())
	}
}

func TestImageSurfacePresentCopies(t *testing.T) {
	s := NewImageSurface(4, 4)
	frame := solidFrame(4, 4, color.RGBA{255, 0, 0, 255})

	if err := s.Present(frame); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	frame.SetRGBA(1, 1, color.RGBA{0, 0, 255, 255})

	snap := s.Snapshot()
	if got := snap.RGBAAt(1, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("snapshot pixel = %v, want red (frame must be copied)", got)
	}
	snap.SetRGBA(2, 2, color.RGBA{})
	if got := s.Snapshot().RGBAAt(2, 2); got.A != 255 {
		t.Error("Snapshot() must return a copy")
	}
	if s.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", s.Frames())
	}
}

func TestImageSurfacePresentResizes(t *testing.T) {
	s := NewImageSurface(2, 2)
	if err := s.Present(solidFrame(6, 3, color.RGBA{1, 2, 3, 255})); err != nil {
		t.Fatal(err)
	}
	if s.Width() != 6 || s.Height() != 3 {
		t.Errorf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
}

func TestImageSurfacePresentSubImage(t *testing.T) {
	full := solidFrame(8, 8, color.RGBA{0, 0, 0, 255})
	full.SetRGBA(5, 6, color.RGBA{9, 9, 9, 255})
	sub := full.SubImage(image.Rect(4, 4, 8, 8)).(*image.RGBA)

	s := NewImageSurface(4, 4)
	if err := s.Present(sub); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().RGBAAt(1, 2); got != (color.RGBA{9, 9, 9, 255}) {
		t.Errorf("pixel (1,2) = %v, want {9 9 9 255}", got)
	}
}

func TestImageSurfaceClose(t *testing.T) {
	s := NewImageSurface(2, 2)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if s.Snapshot() != nil {
		t.Error("Snapshot() after Close should be nil")
	}
	if err := s.Present(solidFrame(2, 2, color.RGBA{})); !errors.Is(err, ErrClosed) {
		t.Errorf("Present() after Close = %v, want ErrClosed", err)
	}
}

func TestPNGSurface(t *testing.T) {
	dir := t.TempDir()
	s, err := NewPNGSurface(dir + "/frames")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })

	for i := range 3 {
		c := color.RGBA{uint8(i * 100), 0, 0, 255}
		if err := s.Present(solidFrame(5, 3, c)); err != nil {
			t.Fatalf("Present(%d) error = %v", i, err)
		}
	}
	if s.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", s.Frames())
	}

	for i := range 3 {
		path := s.Path(i)
		if want := fmt.Sprintf("frame-%05d.png", i); !strings.HasSuffix(path, want) {
			t.Errorf("Path(%d) = %s, want suffix %s", i, path, want)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		_ = f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
		if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
			t.Errorf("%s size = %v, want 5x3", path, b)
		}
		r, _, _, _ := img.At(2, 1).RGBA()
		if want := uint32(i*100) * 0x101; r != want {
			t.Errorf("%s red = %d, want %d", path, r, want)
		}
	}

	_ = s.Close()
	if err := s.Present(solidFrame(1, 1, color.RGBA{})); !errors.Is(err, ErrClosed) {
		t.Errorf("Present() after Close = %v, want ErrClosed", err)
	}
}

func TestANSISurfaceFit(t *testing.T) {
	tests := []struct {
		columns, rows int
		frame         image.Rectangle
		want          image.Rectangle
	}{
		{80, 24, image.Rect(0, 0, 640, 480), image.Rect(0, 0, 64, 48)},
		{80, 24, image.Rect(0, 0, 160, 48), image.Rect(0, 0, 80, 24)},
		{12, 10, image.Rect(0, 0, 3, 3), image.Rect(0, 0, 12, 12)},
		{4, 2, image.Rect(0, 0, 100, 1), image.Rect(0, 0, 4, 2)},
	}
	for _, tt := range tests {
		s := NewANSISurface(&bytes.Buffer{}, tt.columns, tt.rows)
		if got := s.fit(tt.frame); got != tt.want {
			t.Errorf("%dx%d fit(%v) = %v, want %v", tt.columns, tt.rows, tt.frame, got, tt.want)
		}
	}
}

func TestANSISurfacePresent(t *testing.T) {
	var out bytes.Buffer
	s := NewANSISurface(&out, 4, 2)

	frame := solidFrame(4, 4, color.RGBA{255, 0, 0, 255})
	if err := s.Present(frame); err != nil {
		t.Fatalf("Present() error = %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "\x1b[?25l\x1b[2J\x1b[H") {
		t.Errorf("first frame should hide the cursor and clear the screen, got %q", got[:min(len(got), 16)])
	}
	// One style per row: the whole row shares one color pair.
	if n := strings.Count(got, "\x1b[38;2;255;0;0;48;2;255;0;0m"); n != 2 {
		t.Errorf("style count = %d, want 2", n)
	}
	if n := strings.Count(got, upperHalfBlock); n != 8 {
		t.Errorf("cell count = %d, want 8", n)
	}
	if n := strings.Count(got, "\r\n"); n != 2 {
		t.Errorf("row count = %d, want 2", n)
	}

	out.Reset()
	if err := s.Present(frame); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "\x1b[2J") {
		t.Error("later frames should not clear the screen")
	}

	out.Reset()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out.String(), "\x1b[?25h") {
		t.Errorf("Close() output = %q, want cursor restored", out.String())
	}
}

func TestANSISurfaceDefaultSize(t *testing.T) {
	s := NewANSISurface(&bytes.Buffer{}, 0, 0)
	if c, r := s.Size(); c != defaultColumns || r != defaultRows {
		t.Errorf("Size() = %dx%d, want %dx%d", c, r, defaultColumns, defaultRows)
	}
}

func TestDevicePresentsToSurface(t *testing.T) {
	s := NewImageSurface(1, 1)
	d, err := soft3d.NewDevice(16, 16,
		soft3d.WithBackground(soft3d.Blue),
		soft3d.WithPresenter(s))
	if err != nil {
		t.Fatal(err)
	}
	d.Clear()
	if err := d.Present(); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().RGBAAt(8, 8); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("presented pixel = %v, want blue", got)
	}
}
