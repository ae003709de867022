package surface

import (
	"fmt"
	"math"

	"github.com/kmellis/isofield/pkg/mesh"
	"github.com/kmellis/isofield/pkg/scene"
)

// Plate is an infinite plate with a circular hole under far-field
// uniaxial tension, sampled on an annular grid around the hole. The
// scalar field is the Kirsch tangential stress, and the surface is
// displaced along z in proportion to it so the stress concentration at
// the hole rim reads as relief.
type Plate struct{}

// NewPlate returns the plate-with-hole source.
func NewPlate() *Plate { return &Plate{} }

// Name implements Source.
func (*Plate) Name() string { return "plate" }

// outerFactor fixes the annulus extent at this multiple of the hole radius.
const outerFactor = 4.0

// reliefScale converts stress to z displacement for display.
const reliefScale = 0.15

// Build samples the annulus [R, outerFactor*R] with resolution rings and
// 2*resolution sectors. The theta parameter rotates the load axis in
// degrees; pressure scales the far-field stress.
func (pl *Plate) Build(p scene.Params) (*mesh.Mesh, []float64, error) {
	r0 := p.R
	if r0 <= 0 {
		return nil, nil, fmt.Errorf("surface: plate needs a positive hole radius, got %g", r0)
	}
	sigma := p.Pressure
	if sigma == 0 {
		sigma = 1
	}
	rings := resolution(p)
	sectors := 2 * rings
	loadAngle := p.Theta * math.Pi / 180

	var positions []float32
	scalars := make([]float64, 0, (rings+1)*(sectors+1))

	for j := 0; j <= rings; j++ {
		r := r0 + (outerFactor-1)*r0*float64(j)/float64(rings)
		for i := 0; i <= sectors; i++ {
			// The seam column duplicates the first so the grid stays a
			// plain rectangle of quads.
			theta := 2 * math.Pi * float64(i) / float64(sectors)
			s := kirschTangential(sigma, r0, r, theta-loadAngle)
			x := r * math.Cos(theta)
			y := r * math.Sin(theta)
			positions = append(positions, float32(x), float32(y), float32(s*reliefScale))
			scalars = append(scalars, s)
		}
	}

	m := mesh.New()
	m.SetPositions(mesh.NewAttribute(positions, 3))
	m.SetIndices(gridIndices(rings, sectors))
	m.ComputeVertexNormals()
	return m, scalars, nil
}

// kirschTangential is the hoop stress around a circular hole of radius
// a in an infinite plate under uniaxial tension sigma along the theta=0
// axis: s/2 * (1 + a^2/r^2) - s/2 * (1 + 3 a^4/r^4) * cos(2 theta).
// At the hole rim and theta=90deg this peaks at 3*sigma, the classic
// stress concentration factor.
func kirschTangential(sigma, a, r, theta float64) float64 {
	q2 := (a / r) * (a / r)
	q4 := q2 * q2
	return sigma/2*(1+q2) - sigma/2*(1+3*q4)*math.Cos(2*theta)
}

// gridIndices triangulates a (rows+1)x(cols+1) vertex grid into
// 2*rows*cols triangles with counter-clockwise winding.
func gridIndices(rows, cols int) []uint32 {
	indices := make([]uint32, 0, 6*rows*cols)
	stride := uint32(cols + 1)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			a := uint32(j)*stride + uint32(i)
			b := a + 1
			c := a + stride
			d := c + 1
			indices = append(indices, a, b, c, c, b, d)
		}
	}
	return indices
}
