package contour

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/kmellis/isofield/pkg/colormap"
	"github.com/kmellis/isofield/pkg/field"
	"github.com/kmellis/isofield/pkg/mesh"
)

// Winding tracks whether the value-ascending sort of a triangle's
// corners swapped the original orientation. Emission mirrors vertex
// order for Swapped so output normals keep facing the way the source
// triangle did.
type Winding int

const (
	Original Winding = iota
	Swapped
)

func (w Winding) flip() Winding {
	if w == Original {
		return Swapped
	}
	return Original
}

// corner is one triangle vertex with its scalar value, position, and
// vertex normal. Transient; built and discarded per triangle.
type corner struct {
	v float64
	p mgl64.Vec3
	n mgl64.Vec3
}

// chord is one iso-value's intersection across a triangle: endpoint a on
// the chain through the middle vertex, endpoint b on the long (low,high)
// edge, with interpolated normals.
type chord struct {
	iso     float64
	a, b    corner
	aboveV2 bool // a sits on edge (mid,high) rather than (low,mid)
}

// Bands tessellates the filled contour bands of a scalar field over a
// mesh. For every triangle it classifies which of the ascending
// isoValues fall strictly inside the triangle's value span, splits the
// triangle along those chords, and emits each piece as a fan of
// flat-colored triangles. The flat color of a piece is the LUT color of
// the band's lower bound; pieces whose band value falls outside the
// LUT's [min,max] range are dropped, as are triangles entirely outside
// the range.
//
// The mesh must carry a "normal" attribute (ComputeVertexNormals) and
// one scalar per vertex. isoValues must be ascending; Bands validates
// this at the boundary rather than silently producing garbage.
func Bands(m *mesh.Mesh, scalars []float64, isoValues []float64, lut *colormap.LUT) (*Buffer, error) {
	if err := checkInputs(m, scalars, isoValues); err != nil {
		return nil, err
	}
	normals := m.Attribute(mesh.NormalAttribute)
	if normals == nil {
		return nil, fmt.Errorf("contour: mesh has no %q attribute; call ComputeVertexNormals first", mesh.NormalAttribute)
	}

	buf := &Buffer{}
	vmin, vmax := lut.Min(), lut.Max()

	for t := 0; t < m.TriangleCount(); t++ {
		i0, i1, i2 := m.TriangleIndices(t)
		c0 := cornerAt(m, normals, scalars, i0)
		c1 := cornerAt(m, normals, scalars, i1)
		c2 := cornerAt(m, normals, scalars, i2)

		// Whole triangle below or above the visualized range: nothing to emit.
		if (c0.v < vmin && c1.v < vmin && c2.v < vmin) ||
			(c0.v > vmax && c1.v > vmax && c2.v > vmax) {
			continue
		}

		tessellateTriangle(buf, lut, c0, c1, c2, isoValues)
	}

	return buf, nil
}

func checkInputs(m *mesh.Mesh, scalars, isoValues []float64) error {
	if n := m.VertexCount(); len(scalars) != n {
		return fmt.Errorf("contour: scalar field has %d values for %d vertices", len(scalars), n)
	}
	if !field.Ascending(isoValues) {
		return fmt.Errorf("contour: iso-values must be ascending")
	}
	return nil
}

func cornerAt(m *mesh.Mesh, normals *mesh.Attribute, scalars []float64, i int) corner {
	x, y, z := m.Position(i)
	nd := normals.Data
	return corner{
		v: scalars[i],
		p: mgl64.Vec3{float64(x), float64(y), float64(z)},
		n: mgl64.Vec3{float64(nd[3*i]), float64(nd[3*i+1]), float64(nd[3*i+2])},
	}
}

// sortCorners orders three corners ascending by value with a stable
// 3-element swap network, tracking winding parity.
func sortCorners(c0, c1, c2 corner) (lo, mid, hi corner, w Winding) {
	lo, mid, hi = c0, c1, c2
	if lo.v > mid.v {
		lo, mid = mid, lo
		w = w.flip()
	}
	if mid.v > hi.v {
		mid, hi = hi, mid
		w = w.flip()
	}
	if lo.v > mid.v {
		lo, mid = mid, lo
		w = w.flip()
	}
	return lo, mid, hi, w
}

// lerpCorner interpolates position and normal between two corners at the
// given iso-value. The corners must differ in value.
func lerpCorner(a, b corner, iso float64) corner {
	t := (iso - a.v) / (b.v - a.v)
	return corner{
		v: iso,
		p: a.p.Add(b.p.Sub(a.p).Mul(t)),
		n: a.n.Add(b.n.Sub(a.n).Mul(t)),
	}
}

// tessellateTriangle splits one triangle along every iso-value strictly
// inside its value span and emits the resulting pieces.
func tessellateTriangle(buf *Buffer, lut *colormap.LUT, c0, c1, c2 corner, isoValues []float64) {
	lo, mid, hi, w := sortCorners(c0, c1, c2)
	vmin, vmax := lut.Min(), lut.Max()

	// Base value: the band the low corner belongs to is bounded below by
	// the highest iso-value at or below it, or by vmin when none is.
	base := vmin
	var chords []chord
	for _, iso := range isoValues {
		if iso <= lo.v {
			base = iso
			continue
		}
		if iso >= hi.v {
			break
		}
		var a corner
		aboveV2 := iso >= mid.v
		if aboveV2 {
			a = lerpCorner(mid, hi, iso)
		} else {
			a = lerpCorner(lo, mid, iso)
		}
		chords = append(chords, chord{
			iso:     iso,
			a:       a,
			b:       lerpCorner(lo, hi, iso),
			aboveV2: aboveV2,
		})
	}

	// No chord: the whole triangle is one band.
	if len(chords) == 0 {
		emitPolygon(buf, lut, base, vmin, vmax, w, lo, mid, hi)
		return
	}

	// Bottom piece, from the low corner up to the first chord.
	first := chords[0]
	if first.aboveV2 {
		emitPolygon(buf, lut, base, vmin, vmax, w, lo, mid, first.a, first.b)
	} else {
		emitPolygon(buf, lut, base, vmin, vmax, w, lo, first.a, first.b)
	}

	// Middle pieces between consecutive chords. When a pair straddles
	// the middle corner the piece picks it up as a fifth vertex.
	for i := 0; i+1 < len(chords); i++ {
		s, u := chords[i], chords[i+1]
		if !s.aboveV2 && u.aboveV2 {
			emitPolygon(buf, lut, s.iso, vmin, vmax, w, s.a, mid, u.a, u.b, s.b)
		} else {
			emitPolygon(buf, lut, s.iso, vmin, vmax, w, s.a, u.a, u.b, s.b)
		}
	}

	// Top piece, from the last chord up to the high corner.
	last := chords[len(chords)-1]
	if last.aboveV2 {
		emitPolygon(buf, lut, last.iso, vmin, vmax, w, last.a, hi, last.b)
	} else {
		emitPolygon(buf, lut, last.iso, vmin, vmax, w, last.a, mid, hi, last.b)
	}
}

// emitPolygon appends one flat-colored convex polygon as a triangle fan
// around its first vertex. The vertex loop is given in sorted-triangle
// orientation; Swapped winding reverses it so the fan keeps the source
// triangle's facing. Pieces whose band value lies outside [vmin,vmax]
// are dropped.
func emitPolygon(buf *Buffer, lut *colormap.LUT, bandValue, vmin, vmax float64, w Winding, loop ...corner) {
	if bandValue < vmin || bandValue > vmax {
		return
	}
	if w == Swapped {
		for i, j := 0, len(loop)-1; i < j; i, j = i+1, j-1 {
			loop[i], loop[j] = loop[j], loop[i]
		}
	}

	col := lut.GetColor(bandValue)
	indices := make([]uint32, len(loop))
	for i, c := range loop {
		indices[i] = buf.appendVertex(c.p, c.n, col.R, col.G, col.B)
	}
	for i := 1; i+1 < len(loop); i++ {
		buf.appendTriangle(indices[0], indices[i], indices[i+1])
	}
}
