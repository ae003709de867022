package surface

import (
	"github.com/kmellis/isofield/pkg/mesh"
	"github.com/kmellis/isofield/pkg/scene"
)

// Saddle is the hyperbolic paraboloid z = x^2 - y^2 over [-1,1]^2, with
// the height itself as the scalar field. It is the simplest surface
// whose contours exercise both open and closed topologies, and doubles
// as the synthetic fixture for the contouring tests.
type Saddle struct{}

// NewSaddle returns the saddle source.
func NewSaddle() *Saddle { return &Saddle{} }

// Name implements Source.
func (*Saddle) Name() string { return "saddle" }

// Build samples the saddle on a regular resolution x resolution grid.
func (sa *Saddle) Build(p scene.Params) (*mesh.Mesh, []float64, error) {
	n := resolution(p)

	var positions []float32
	scalars := make([]float64, 0, (n+1)*(n+1))
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			x := -1 + 2*float64(i)/float64(n)
			y := -1 + 2*float64(j)/float64(n)
			z := x*x - y*y
			positions = append(positions, float32(x), float32(y), float32(z))
			scalars = append(scalars, z)
		}
	}

	m := mesh.New()
	m.SetPositions(mesh.NewAttribute(positions, 3))
	m.SetIndices(gridIndices(n, n))
	m.ComputeVertexNormals()
	return m, scalars, nil
}
