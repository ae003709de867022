package colormap

// Normalizer maps an already-normalized scalar in [0,1] through a LUT,
// optionally reversing the direction, with an explicit fallback color
// for out-of-range input. It never panics on bad input; the fallback is
// the whole error story here, matching how values outside the visualized
// range simply do not render.
type Normalizer struct {
	lut      *LUT
	reversed bool
	fallback Color
}

// NewNormalizer wraps a LUT. When reversed is true, 0 maps to the top of
// the ramp and 1 to the bottom.
func NewNormalizer(lut *LUT, reversed bool, fallback Color) *Normalizer {
	return &Normalizer{lut: lut, reversed: reversed, fallback: fallback}
}

// Map returns the LUT color for normalized value t, or the fallback when
// t lies outside [0,1].
func (n *Normalizer) Map(t float64) Color {
	if t < 0 || t > 1 {
		return n.fallback
	}
	if n.reversed {
		t = 1 - t
	}
	return n.lut.GetColor(n.lut.minV + t*(n.lut.maxV-n.lut.minV))
}
