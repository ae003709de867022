package mesh

import (
	"log"

	"github.com/chewxy/math32"
)

// NormalAttribute is the attribute name used for vertex normals.
const NormalAttribute = "normal"

// ComputeVertexNormals computes smooth vertex normals by accumulating
// unnormalized face normals into every vertex of every triangle and
// normalizing the result. The face normal is the cross product of the
// two edge vectors from vertex 0; its length is twice the triangle area,
// so larger triangles weigh proportionally more on shared vertices.
//
// Vertices touched by no triangle (or only degenerate ones) get (0,1,0).
// Without a position attribute this warns and does nothing. The normal
// attribute is created or reused in place and marked dirty.
func (m *Mesh) ComputeVertexNormals() {
	if m.positions.Count() == 0 {
		log.Printf("mesh: ComputeVertexNormals called without positions")
		return
	}

	count := m.VertexCount()
	normals := m.Attribute(NormalAttribute)
	if normals == nil || len(normals.Data) != 3*count {
		normals = NewAttribute(make([]float32, 3*count), 3)
		m.SetAttribute(NormalAttribute, normals)
	} else {
		for i := range normals.Data {
			normals.Data[i] = 0
		}
	}
	acc := normals.Data

	pos := m.positions.Data
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.TriangleIndices(t)

		ax, ay, az := pos[3*a], pos[3*a+1], pos[3*a+2]
		e1x, e1y, e1z := pos[3*b]-ax, pos[3*b+1]-ay, pos[3*b+2]-az
		e2x, e2y, e2z := pos[3*c]-ax, pos[3*c+1]-ay, pos[3*c+2]-az

		// Unnormalized face normal; length encodes the area weight.
		nx := e1y*e2z - e1z*e2y
		ny := e1z*e2x - e1x*e2z
		nz := e1x*e2y - e1y*e2x

		for _, v := range [3]int{a, b, c} {
			acc[3*v] += nx
			acc[3*v+1] += ny
			acc[3*v+2] += nz
		}
	}

	for v := 0; v < count; v++ {
		nx, ny, nz := acc[3*v], acc[3*v+1], acc[3*v+2]
		length := math32.Sqrt(nx*nx + ny*ny + nz*nz)
		if length == 0 {
			acc[3*v], acc[3*v+1], acc[3*v+2] = 0, 1, 0
			continue
		}
		acc[3*v] = nx / length
		acc[3*v+1] = ny / length
		acc[3*v+2] = nz / length
	}

	normals.Dirty = true
}
