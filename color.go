package soft3d

import (
	"fmt"
	"image/color"
)

// Color4 represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]; values are scaled by 255 when
// written to a ColorBuffer.
type Color4 struct {
	R, G, B, A float64
}

// NewColor4 creates a color from RGBA components.
func NewColor4(r, g, b, a float64) Color4 {
	return Color4{R: r, G: g, B: b, A: a}
}

// Gray creates an opaque color with all three channels set to v.
func Gray(v float64) Color4 {
	return Color4{R: v, G: v, B: v, A: 1}
}

// String returns a human readable form of the color.
func (c Color4) String() string {
	return fmt.Sprintf("{R:%g G:%g B:%g A:%g}", c.R, c.G, c.B, c.A)
}

// Color converts Color4 to the standard color.Color interface.
func (c Color4) Color() color.Color {
	b := c.bytes()
	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}
}

// FromColor converts a standard color.Color to Color4.
func FromColor(c color.Color) Color4 {
	r, g, b, a := c.RGBA()
	return Color4{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
		A: float64(a) / 65535,
	}
}

// Lerp performs linear interpolation between two colors.
func (c Color4) Lerp(other Color4, t float64) Color4 {
	return Color4{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// bytes returns the channels scaled to [0, 255] and rounded.
func (c Color4) bytes() [4]uint8 {
	return [4]uint8{
		uint8(clamp255(c.R*255) + 0.5),
		uint8(clamp255(c.G*255) + 0.5),
		uint8(clamp255(c.B*255) + 0.5),
		uint8(clamp255(c.A*255) + 0.5),
	}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with an optional
// leading '#'. Unrecognized input yields opaque black.
func Hex(hex string) Color4 {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint32
	a = 255

	switch len(hex) {
	case 3:
		r, g, b = parseHex(hex[0:1])*17, parseHex(hex[1:2])*17, parseHex(hex[2:3])*17
	case 4:
		r, g, b = parseHex(hex[0:1])*17, parseHex(hex[1:2])*17, parseHex(hex[2:3])*17
		a = parseHex(hex[3:4]) * 17
	case 6:
		r, g, b = parseHex(hex[0:2]), parseHex(hex[2:4]), parseHex(hex[4:6])
	case 8:
		r, g, b = parseHex(hex[0:2]), parseHex(hex[2:4]), parseHex(hex[4:6])
		a = parseHex(hex[6:8])
	default:
		return Black
	}

	return Color4{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// parseHex parses up to two hex digits; parsing stops at the first
// invalid digit.
func parseHex(s string) uint32 {
	var v uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case '0' <= c && c <= '9':
			v = v*16 + uint32(c-'0')
		case 'a' <= c && c <= 'f':
			v = v*16 + uint32(c-'a'+10)
		case 'A' <= c && c <= 'F':
			v = v*16 + uint32(c-'A'+10)
		default:
			return v
		}
	}
	return v
}

// clamp255 restricts a value to [0, 255] range. NaN maps to 0.
func clamp255(x float64) float64 {
	if !(x >= 0) {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black       = Color4{R: 0, G: 0, B: 0, A: 1}
	White       = Color4{R: 1, G: 1, B: 1, A: 1}
	Red         = Color4{R: 1, G: 0, B: 0, A: 1}
	Green       = Color4{R: 0, G: 1, B: 0, A: 1}
	Blue        = Color4{R: 0, G: 0, B: 1, A: 1}
	Yellow      = Color4{R: 1, G: 1, B: 0, A: 1}
	Transparent = Color4{}
)
