// Package colormap provides the color value type, the builtin color map
// definitions, and the sampled lookup table (LUT) used to turn scalar
// field values into vertex colors.
package colormap

import (
	"fmt"
	"regexp"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple with channels in [0,1]. Colors are value types;
// every operation returns a new Color and never mutates the receiver.
type Color struct {
	R, G, B float64
}

// hexPattern accepts #RGB and #RRGGBB forms only.
var hexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// FromRGB builds a Color from three channel values in [0,1].
func FromRGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// FromArray builds a Color from a 3-element [r,g,b] slice.
func FromArray(a []float64) (Color, error) {
	if len(a) != 3 {
		return Color{}, fmt.Errorf("colormap: array color needs 3 components, got %d", len(a))
	}
	return Color{R: a[0], G: a[1], B: a[2]}, nil
}

// FromHex parses a #RGB or #RRGGBB hex string.
func FromHex(s string) (Color, error) {
	if !hexPattern.MatchString(s) {
		return Color{}, fmt.Errorf("colormap: invalid hex color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("colormap: invalid hex color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B}, nil
}

// FromInt builds a Color from a packed 24-bit 0xRRGGBB integer.
func FromInt(c uint32) (Color, error) {
	return FromHex(HexString(c))
}

// Lerp returns the linear interpolation toward o at fraction t.
// t must lie in [0,1].
func (c Color) Lerp(o Color, t float64) (Color, error) {
	if t < 0 || t > 1 {
		return Color{}, fmt.Errorf("colormap: lerp fraction %g outside [0,1]", t)
	}
	a := colorful.Color{R: c.R, G: c.G, B: c.B}
	b := colorful.Color{R: o.R, G: o.G, B: o.B}
	m := a.BlendRgb(b, t)
	return Color{R: m.R, G: m.G, B: m.B}, nil
}

// Hex formats the color as #RRGGBB with each channel rounded to the
// nearest integer in [0,255].
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", channelByte(c.R), channelByte(c.G), channelByte(c.B))
}

// HexString formats a packed integer color as uppercase #RRGGBB,
// masking to 24 bits.
func HexString(c uint32) string {
	return fmt.Sprintf("#%06X", c&0xFFFFFF)
}

func channelByte(v float64) uint8 {
	n := int(v*255 + 0.5)
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	return uint8(n)
}
