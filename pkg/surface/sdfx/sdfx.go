// Package sdfx provides a surface source backed by the
// github.com/deadsy/sdfx SDF-based CAD library: it meshes a solid with
// marching cubes, welds the triangle soup into an indexed mesh, and
// samples a height field at the vertices. Contouring the result shows
// elevation bands wrapping a genuinely 3-D body rather than a displaced
// grid.
package sdfx

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/kmellis/isofield/pkg/mesh"
	"github.com/kmellis/isofield/pkg/scene"
	"github.com/kmellis/isofield/pkg/surface"
)

// Compile-time interface check.
var _ surface.Source = (*Solid)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 120

// Solid meshes a plate-like solid with a circular bore: a rounded box
// minus a cylinder, the volumetric cousin of the analytic plate source.
type Solid struct{}

// New returns the solid source.
func New() *Solid { return &Solid{} }

// Name implements surface.Source.
func (*Solid) Name() string { return "solid" }

// Build constructs the solid from the slider parameters, meshes it, and
// returns the welded mesh with the vertex z height as scalar field.
func (so *Solid) Build(p scene.Params) (*mesh.Mesh, []float64, error) {
	r := p.R
	if r <= 0 {
		return nil, nil, fmt.Errorf("surface: solid needs a positive bore radius, got %g", r)
	}

	size := 4 * r
	thickness := r
	box, err := sdf.Box3D(v3.Vec{X: size, Y: size, Z: thickness}, thickness/8)
	if err != nil {
		return nil, nil, fmt.Errorf("surface: box: %w", err)
	}
	bore, err := sdf.Cylinder3D(2*thickness, r, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("surface: bore: %w", err)
	}
	solid := sdf.Difference3D(box, bore)

	cells := defaultMeshCells
	if p.Resolution > 0 {
		cells = p.Resolution
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(solid, renderer)
	if len(triangles) == 0 {
		return nil, nil, fmt.Errorf("surface: marching cubes produced no triangles")
	}

	m, scalars := weld(triangles)
	m.ComputeVertexNormals()
	return m, scalars, nil
}

// weld collapses the marching-cubes triangle soup into an indexed mesh,
// merging exactly coincident vertices, and samples the height field.
func weld(triangles []*sdf.Triangle3) (*mesh.Mesh, []float64) {
	lookup := make(map[v3.Vec]uint32, len(triangles))
	var positions []float32
	var scalars []float64
	indices := make([]uint32, 0, 3*len(triangles))

	for _, tri := range triangles {
		for j := 0; j < 3; j++ {
			v := tri[j]
			idx, ok := lookup[v]
			if !ok {
				idx = uint32(len(positions) / 3)
				lookup[v] = idx
				positions = append(positions, float32(v.X), float32(v.Y), float32(v.Z))
				scalars = append(scalars, v.Z)
			}
			indices = append(indices, idx)
		}
	}

	m := mesh.New()
	m.SetPositions(mesh.NewAttribute(positions, 3))
	m.SetIndices(indices)
	return m, scalars
}
