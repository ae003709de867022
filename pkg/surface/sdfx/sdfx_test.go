package sdfx

import (
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/kmellis/isofield/pkg/mesh"
	"github.com/kmellis/isofield/pkg/scene"
)

func TestWeldMergesSharedVertices(t *testing.T) {
	// Two triangles sharing an edge: 6 soup vertices, 4 welded.
	a := v3.Vec{X: 0, Y: 0, Z: 0}
	b := v3.Vec{X: 1, Y: 0, Z: 0}
	c := v3.Vec{X: 0, Y: 1, Z: 2}
	d := v3.Vec{X: 1, Y: 1, Z: 2}
	soup := []*sdf.Triangle3{{a, b, c}, {c, b, d}}

	m, scalars := weld(soup)

	if got := m.VertexCount(); got != 4 {
		t.Fatalf("VertexCount = %d, want 4", got)
	}
	if got := m.TriangleCount(); got != 2 {
		t.Fatalf("TriangleCount = %d, want 2", got)
	}
	if len(scalars) != 4 {
		t.Fatalf("got %d scalars, want 4", len(scalars))
	}

	// The scalar field is the vertex z height.
	want := []float64{0, 0, 2, 2}
	for i, z := range want {
		if scalars[i] != z {
			t.Errorf("scalars[%d] = %g, want %g", i, scalars[i], z)
		}
	}

	// Both triangles reference the shared edge vertices by index.
	i0, i1, i2 := m.TriangleIndices(1)
	if i0 != 2 || i1 != 1 || i2 != 3 {
		t.Errorf("second triangle = (%d, %d, %d), want (2, 1, 3)", i0, i1, i2)
	}
}

func TestBuildSolid(t *testing.T) {
	src := New()
	m, scalars, err := src.Build(scene.Params{R: 1, Resolution: 32})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(scalars) != m.VertexCount() {
		t.Fatalf("field has %d values for %d vertices", len(scalars), m.VertexCount())
	}
	if m.Attribute(mesh.NormalAttribute) == nil {
		t.Fatal("solid mesh missing normals")
	}

	// The solid is a plate of thickness r centered on the origin, so
	// the height field must span roughly [-r/2, r/2].
	min, max := scalars[0], scalars[0]
	for _, s := range scalars {
		min = math.Min(min, s)
		max = math.Max(max, s)
	}
	if min > -0.4 || max < 0.4 {
		t.Errorf("height field spans [%g, %g], want about [-0.5, 0.5]", min, max)
	}

	// Welding must have produced a shared-vertex mesh, not a soup.
	if 3*m.VertexCount() >= len(m.Indices()) {
		t.Errorf("mesh looks unwelded: %d vertices for %d indices",
			m.VertexCount(), len(m.Indices()))
	}
}

func TestBuildRejectsZeroRadius(t *testing.T) {
	if _, _, err := New().Build(scene.Params{}); err == nil {
		t.Fatal("zero bore radius accepted, want error")
	}
}
