// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides presentation targets for soft3d frames.
//
// A Surface receives each finished frame from soft3d.Device.Present and
// publishes it somewhere: an in-memory snapshot, a numbered PNG sequence
// or a truecolor terminal.
//
// # Surface Types
//
//   - ImageSurface: keeps a copy of the last frame (tests, embedding)
//   - PNGSurface: writes frame-00000.png, frame-00001.png, ... into a directory
//   - ANSISurface: draws frames with half-block characters on a terminal
//
// # Registry
//
// Backends are registered by name with a priority and an availability
// check, so applications can pick one from a flag:
//
//	s, err := surface.NewSurfaceByName("png", surface.Options{
//	    Width: 640, Height: 480, Dir: "out",
//	})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	dev, err := soft3d.NewDevice(640, 480, soft3d.WithPresenter(s))
//
// NewSurface picks the highest-priority backend that is available; the
// ANSI backend is only available when standard output is a terminal.
package surface
