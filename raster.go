package soft3d

import (
	"image"
	"math"
)

// target is a clipped view of a device's buffers. Every write lands inside
// clip, which is the whole screen on the serial path and a single tile on
// the parallel path.
type target struct {
	color *ColorBuffer
	depth []float64
	width int
	clip  image.Rectangle
	stats *FrameStats
}

// putPixel performs the depth test and writes px at (x, y).
// A stored depth strictly nearer than z keeps the old pixel.
func (t *target) putPixel(x, y int, z float64, px [4]uint8) {
	index := x + y*t.width
	if t.depth[index] < z {
		t.stats.PixelsRejected++
		return
	}
	t.depth[index] = z
	t.color.set(index, px)
	t.stats.PixelsWritten++
}

// drawPoint writes p if it lies inside the clip rectangle.
func (t *target) drawPoint(p Vector3, px [4]uint8) {
	if p.X >= float64(t.clip.Min.X) && p.Y >= float64(t.clip.Min.Y) &&
		p.X < float64(t.clip.Max.X) && p.Y < float64(t.clip.Max.Y) {
		t.putPixel(trunc(p.X), trunc(p.Y), p.Z, px)
	}
}

// processScanLine fills row y from the left edge pa-pb to the right edge
// pc-pd. The end column is exclusive.
func (t *target) processScanLine(y int, pa, pb, pc, pd Vector3, px [4]uint8) {
	fy := float64(y)

	// A horizontal edge has no vertical extent; use its end point.
	gradient1 := 1.0
	if pa.Y != pb.Y {
		gradient1 = (fy - pa.Y) / (pb.Y - pa.Y)
	}
	gradient2 := 1.0
	if pc.Y != pd.Y {
		gradient2 = (fy - pc.Y) / (pd.Y - pc.Y)
	}

	sx := trunc(interpolate(pa.X, pb.X, gradient1))
	ex := trunc(interpolate(pc.X, pd.X, gradient2))

	z1 := interpolate(pa.Z, pb.Z, gradient1)
	z2 := interpolate(pc.Z, pd.Z, gradient2)

	span := float64(ex - sx)
	for x := max(sx, t.clip.Min.X); x < min(ex, t.clip.Max.X); x++ {
		gradient := float64(x-sx) / span
		z := interpolate(z1, z2, gradient)
		t.drawPoint(Vector3{X: float64(x), Y: fy, Z: z}, px)
	}
}

// drawTriangle fills a screen-space triangle with a single top-to-bottom
// sweep.
func (t *target) drawTriangle(p1, p2, p3 Vector3, px [4]uint8) {
	// Sort so that p1 is the topmost point and p3 the bottommost.
	if p1.Y > p2.Y {
		p1, p2 = p2, p1
	}
	if p2.Y > p3.Y {
		p2, p3 = p3, p2
	}
	if p1.Y > p2.Y {
		p1, p2 = p2, p1
	}

	// Inverse slopes of the edges leaving p1.
	var dP1P2, dP1P3 float64
	if p2.Y-p1.Y > 0 {
		dP1P2 = (p2.X - p1.X) / (p2.Y - p1.Y)
	}
	if p3.Y-p1.Y > 0 {
		dP1P3 = (p3.X - p1.X) / (p3.Y - p1.Y)
	}

	// A flat top edge has no slope to compare, so p2's side comes from X.
	p2Right := dP1P2 > dP1P3
	if p2.Y == p1.Y {
		p2Right = p2.X > p1.X
	}

	y0 := max(trunc(p1.Y), t.clip.Min.Y)
	y1 := min(trunc(p3.Y), t.clip.Max.Y-1)

	if p2Right {
		// p2 is right of the long edge p1-p3.
		for y := y0; y <= y1; y++ {
			if float64(y) < p2.Y {
				t.processScanLine(y, p1, p3, p1, p2, px)
			} else {
				t.processScanLine(y, p1, p3, p2, p3, px)
			}
		}
		return
	}

	// p2 is left of the long edge p1-p3.
	for y := y0; y <= y1; y++ {
		if float64(y) < p2.Y {
			t.processScanLine(y, p1, p2, p1, p3, px)
		} else {
			t.processScanLine(y, p2, p3, p1, p3, px)
		}
	}
}

// interpolate returns the value gradient of the way from lo to hi, with
// gradient clamped to [0, 1].
func interpolate(lo, hi, gradient float64) float64 {
	return lo + (hi-lo)*clamp01(gradient)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}

// maxCoord bounds screen coordinates before integer conversion.
const maxCoord = 1 << 30

// trunc converts a screen coordinate to a pixel index, rounding toward
// zero. Values beyond ±2^30 saturate and NaN maps to 0.
func trunc(f float64) int {
	switch {
	case f != f:
		return 0
	case f > maxCoord:
		return maxCoord
	case f < -maxCoord:
		return -maxCoord
	}
	return int(f)
}
