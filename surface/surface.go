// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"
	"io"
)

// ErrClosed is returned by Present after Close.
var ErrClosed = errors.New("surface: closed")

// ErrNotTerminal is returned by the ansi backend when Options.Out is nil
// and stdout is not a terminal.
var ErrNotTerminal = errors.New("surface: stdout is not a terminal")

// Surface is a destination for rendered frames. Every Surface satisfies
// soft3d.Presenter.
//
// Surfaces are NOT thread-safe unless documented otherwise. Present is
// called from the goroutine driving the device.
type Surface interface {
	// Present publishes frame. The frame is owned by the caller and is
	// only valid for the duration of the call.
	Present(frame *image.RGBA) error

	// Close releases all resources associated with the surface.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// Options configures surface creation through the registry. Backends
// ignore fields they do not use.
type Options struct {
	// Width and Height are the frame dimensions in pixels.
	Width  int
	Height int

	// Dir is the output directory of the png backend. Empty means the
	// current directory.
	Dir string

	// Out is the destination of the ansi backend. Nil means os.Stdout,
	// which must then be a terminal.
	Out io.Writer

	// Columns and Rows bound the ansi backend's output in terminal cells.
	// Zero means the terminal size, or 80x24 when Out is not a terminal.
	Columns int
	Rows    int
}
