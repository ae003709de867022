package colormap

import (
	"fmt"
	"math"
)

// DefaultResolution is the bucket count used when a caller passes a
// non-positive LUT resolution.
const DefaultResolution = 32

// LUT is a dense table of colors sampled from a Definition. It holds the
// value range it normalizes against and is immutable during a contouring
// pass; rebuild it when the map or resolution changes.
type LUT struct {
	def   Definition
	n     int
	minV  float64
	maxV  float64
	table []Color
}

// New samples a definition into resolution+1 evenly spaced buckets by
// piecewise-linear interpolation between bracketing control points.
// A non-positive resolution falls back to DefaultResolution. The default
// normalization range is [0,1].
func New(def Definition, resolution int) (*LUT, error) {
	if err := def.validate(); err != nil {
		return nil, err
	}
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	stops := make([]Color, len(def))
	for i, s := range def {
		c, err := FromHex(s.Hex)
		if err != nil {
			return nil, fmt.Errorf("colormap: stop %d: %w", i, err)
		}
		stops[i] = c
	}

	table := make([]Color, resolution+1)
	for i := 0; i <= resolution; i++ {
		s := float64(i) / float64(resolution)
		table[i] = sampleAt(def, stops, s)
	}

	return &LUT{
		def:   def,
		n:     resolution,
		minV:  0,
		maxV:  1,
		table: table,
	}, nil
}

// Build is the one-call factory used by the application layer: it looks
// up a builtin map by name, optionally turns it into a banded variant,
// and samples it. bands <= 1 uses the map as-is.
func Build(name string, resolution, bands int) (*LUT, error) {
	def, err := Builtin(name)
	if err != nil {
		return nil, err
	}
	if bands > 1 {
		def = Banded(def, bands)
	}
	return New(def, resolution)
}

// sampleAt interpolates the definition at normalized position s. The
// bracket search takes the first control-point pair with posA <= s < posB,
// so the definition must be ascending (validated at construction).
// Zero-width brackets from banded maps are skipped.
func sampleAt(def Definition, stops []Color, s float64) Color {
	for i := 0; i+1 < len(def); i++ {
		a, b := def[i], def[i+1]
		if s < a.Pos || s >= b.Pos || a.Pos == b.Pos {
			continue
		}
		t := (s - a.Pos) / (b.Pos - a.Pos)
		c, _ := stops[i].Lerp(stops[i+1], t)
		return c
	}
	if s <= def[0].Pos {
		return stops[0]
	}
	return stops[len(stops)-1]
}

// SetMin sets the lower normalization bound. Fluent.
func (l *LUT) SetMin(v float64) *LUT {
	l.minV = v
	return l
}

// SetMax sets the upper normalization bound. Fluent.
func (l *LUT) SetMax(v float64) *LUT {
	l.maxV = v
	return l
}

// Min returns the lower normalization bound.
func (l *LUT) Min() float64 { return l.minV }

// Max returns the upper normalization bound.
func (l *LUT) Max() float64 { return l.maxV }

// N returns the sampling resolution; the table holds N+1 colors.
func (l *LUT) N() int { return l.n }

// GetColor clamps value to [min,max], normalizes it to [0,1], and
// returns the nearest sampled bucket. Values at the exact maximum map to
// the final bucket, so GetColor(max) returns the last stop's color.
func (l *LUT) GetColor(value float64) Color {
	if value < l.minV {
		value = l.minV
	}
	if value > l.maxV {
		value = l.maxV
	}
	t := 0.0
	if l.maxV > l.minV {
		t = (value - l.minV) / (l.maxV - l.minV)
	}
	idx := int(math.Round(t * float64(l.n)))
	if idx > l.n {
		idx = l.n
	}
	return l.table[idx]
}
