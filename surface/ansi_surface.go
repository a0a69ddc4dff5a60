// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"bytes"
	"image"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/image/draw"
	"golang.org/x/term"
)

// Default terminal size used when the output is not a terminal.
const (
	defaultColumns = 80
	defaultRows    = 24
)

// upperHalfBlock paints the top half of a cell in the foreground color and
// the bottom half in the background color, giving two pixels per cell.
const upperHalfBlock = "▀"

// ANSISurface draws frames on a truecolor terminal.
//
// Each frame is scaled to fit the terminal, keeping its aspect ratio, and
// drawn from the home position so successive frames overwrite each other.
type ANSISurface struct {
	w       io.Writer
	columns int
	rows    int

	scaled *image.RGBA
	buf    bytes.Buffer
	frames int
	closed bool
}

// NewANSISurface creates a surface writing escape sequences to w.
// Zero columns or rows are taken from the terminal size when w is a
// terminal, and default to 80x24 otherwise.
func NewANSISurface(w io.Writer, columns, rows int) *ANSISurface {
	if columns <= 0 || rows <= 0 {
		tc, tr := terminalSize(w)
		if columns <= 0 {
			columns = tc
		}
		if rows <= 0 {
			rows = tr
		}
	}
	return &ANSISurface{w: w, columns: columns, rows: rows}
}

func terminalSize(w io.Writer) (columns, rows int) {
	if f, ok := w.(*os.File); ok {
		if c, r, err := term.GetSize(int(f.Fd())); err == nil && c > 0 && r > 0 {
			// Keep the last line free so the cursor does not scroll.
			return c, max(r-1, 1)
		}
	}
	return defaultColumns, defaultRows
}

// Size returns the output size in terminal cells.
func (s *ANSISurface) Size() (columns, rows int) {
	return s.columns, s.rows
}

// fit returns the pixel size frame is scaled to: at most columns wide and
// 2*rows tall, with an even height.
func (s *ANSISurface) fit(frame image.Rectangle) image.Rectangle {
	fw, fh := float64(frame.Dx()), float64(frame.Dy())
	scale := min(float64(s.columns)/fw, float64(2*s.rows)/fh)
	w := max(int(fw*scale), 1)
	h := max(int(fh*scale), 1)
	h = min((h+1)&^1, 2*s.rows)
	return image.Rect(0, 0, w, h)
}

// Present scales frame to the terminal and writes it in one call.
func (s *ANSISurface) Present(frame *image.RGBA) error {
	if s.closed {
		return ErrClosed
	}

	r := s.fit(frame.Bounds())
	if s.scaled == nil || s.scaled.Rect != r {
		s.scaled = image.NewRGBA(r)
	}
	draw.ApproxBiLinear.Scale(s.scaled, r, frame, frame.Bounds(), draw.Src, nil)

	s.buf.Reset()
	if s.frames == 0 {
		s.buf.WriteString(ansi.HideCursor)
		s.buf.WriteString(ansi.EraseEntireScreen)
	}
	s.buf.WriteString(ansi.CursorHomePosition)
	s.encode(&s.buf, s.scaled)

	if _, err := s.w.Write(s.buf.Bytes()); err != nil {
		return err
	}
	s.frames++
	return nil
}

// encode writes img as rows of half-block cells. Consecutive cells with the
// same colors share one style sequence.
func (s *ANSISurface) encode(buf *bytes.Buffer, img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var last [2]ansi.RGBColor
		styled := false
		for x := b.Min.X; x < b.Max.X; x++ {
			cell := [2]ansi.RGBColor{rgb(img, x, y), rgb(img, x, y+1)}
			if !styled || cell != last {
				buf.WriteString(ansi.Style{}.
					ForegroundColor(cell[0]).
					BackgroundColor(cell[1]).
					String())
				last, styled = cell, true
			}
			buf.WriteString(upperHalfBlock)
		}
		buf.WriteString(ansi.ResetStyle)
		buf.WriteString("\r\n")
	}
}

// rgb returns the opaque color of img at (x, y); rows past the bottom
// edge are black.
func rgb(img *image.RGBA, x, y int) ansi.RGBColor {
	if !(image.Point{x, y}.In(img.Rect)) {
		return ansi.RGBColor{}
	}
	c := img.RGBAAt(x, y)
	return ansi.RGBColor{R: c.R, G: c.G, B: c.B}
}

// Close restores the cursor. It does not close the underlying writer.
func (s *ANSISurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.frames == 0 {
		return nil
	}
	_, err := io.WriteString(s.w, ansi.ResetStyle+ansi.ShowCursor)
	return err
}
