// Package contour extracts iso-contours from a scalar field sampled at
// the vertices of a triangle mesh: filled, flat-colored bands between
// consecutive iso-values, and traced isoline polylines at the iso-values
// themselves. The source mesh and field are never mutated; every call
// allocates fresh output buffers whose ownership passes to the caller.
package contour

import "github.com/go-gl/mathgl/mgl64"

// Buffer accumulates the flat geometry handed to the renderer: three
// floats per vertex in Position, Color, and Normal, and three indices
// per triangle in Index. Indices are relative to the running append
// position, so one buffer can grow across many source triangles.
type Buffer struct {
	Position []float32 `json:"position"`
	Index    []uint32  `json:"index"`
	Color    []float32 `json:"color"`
	Normal   []float32 `json:"normal"`
}

// VertexCount returns the number of vertices appended so far.
func (b *Buffer) VertexCount() int {
	return len(b.Position) / 3
}

// TriangleCount returns the number of triangles appended so far.
func (b *Buffer) TriangleCount() int {
	return len(b.Index) / 3
}

// appendVertex appends one position/normal/color triple and returns the
// new vertex's index.
func (b *Buffer) appendVertex(p, n mgl64.Vec3, r, g, bl float64) uint32 {
	idx := uint32(len(b.Position) / 3)
	b.Position = append(b.Position, float32(p.X()), float32(p.Y()), float32(p.Z()))
	b.Normal = append(b.Normal, float32(n.X()), float32(n.Y()), float32(n.Z()))
	b.Color = append(b.Color, float32(r), float32(g), float32(bl))
	return idx
}

// appendTriangle appends one index triple.
func (b *Buffer) appendTriangle(i, j, k uint32) {
	b.Index = append(b.Index, i, j, k)
}
