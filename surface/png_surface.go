// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGSurface writes every presented frame to its own numbered PNG file.
type PNGSurface struct {
	dir    string
	next   int
	enc    png.Encoder
	closed bool
}

// NewPNGSurface creates a surface writing into dir, creating it if needed.
// An empty dir means the current directory.
func NewPNGSurface(dir string) (*PNGSurface, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("surface: create output dir: %w", err)
	}
	return &PNGSurface{
		dir: dir,
		enc: png.Encoder{CompressionLevel: png.BestSpeed},
	}, nil
}

// Path returns the file name used for frame n.
func (s *PNGSurface) Path(n int) string {
	return filepath.Join(s.dir, fmt.Sprintf("frame-%05d.png", n))
}

// Frames returns the number of frames written so far.
func (s *PNGSurface) Frames() int {
	return s.next
}

// Present encodes frame to the next file in the sequence.
func (s *PNGSurface) Present(frame *image.RGBA) error {
	if s.closed {
		return ErrClosed
	}

	path := s.Path(s.next)
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := s.enc.Encode(w, frame); err != nil {
		_ = f.Close()
		return fmt.Errorf("surface: encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	s.next++
	return nil
}

// Close stops accepting frames. Files already written are kept.
func (s *PNGSurface) Close() error {
	s.closed = true
	return nil
}
