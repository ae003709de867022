package engine

import (
	"fmt"

	"github.com/kmellis/isofield/pkg/mesh"
)

// fieldFunc is a compiled scalar field: a pure function of position.
type fieldFunc func(x, y, z float64) float64

// Program is a compiled field script. The zygomys environment that
// produced it is gone by the time Evaluate returns; the program is a
// plain Go closure tree and is safe for concurrent sampling.
type Program struct {
	fn     fieldFunc
	source string
}

// At evaluates the field at a single point.
func (p *Program) At(x, y, z float64) float64 {
	return p.fn(x, y, z)
}

// Source returns the script the program was compiled from.
func (p *Program) Source() string {
	return p.source
}

// Sample evaluates the field at every vertex of m, producing one scalar
// per vertex.
func (p *Program) Sample(m *mesh.Mesh) ([]float64, error) {
	if m == nil || m.VertexCount() == 0 {
		return nil, fmt.Errorf("engine: cannot sample a field over an empty mesh")
	}
	n := m.VertexCount()
	scalars := make([]float64, n)
	for i := 0; i < n; i++ {
		x, y, z := m.Position(i)
		scalars[i] = p.fn(float64(x), float64(y), float64(z))
	}
	return scalars, nil
}
