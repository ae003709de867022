// Package surface generates the analytic surfaces the application
// contours: a triangle mesh plus one scalar value per vertex. Sources
// interpret the slider parameters; downstream code treats the field as
// an opaque array.
package surface

import (
	"fmt"

	"github.com/kmellis/isofield/pkg/mesh"
	"github.com/kmellis/isofield/pkg/scene"
)

// Source builds a mesh and its co-indexed scalar field from the UI
// parameters. Implementations must return a mesh with computed vertex
// normals and exactly one scalar per vertex.
type Source interface {
	Name() string
	Build(p scene.Params) (*mesh.Mesh, []float64, error)
}

// DefaultResolution is the grid subdivision used when the request does
// not specify one.
const DefaultResolution = 96

// Builtins returns the analytic sources shipped with the application.
// Kernel-backed sources (see the sdfx subpackage) are appended by the
// caller.
func Builtins() []Source {
	return []Source{NewPlate(), NewSaddle()}
}

// Find locates a source by name.
func Find(sources []Source, name string) (Source, error) {
	for _, s := range sources {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("surface: unknown surface %q", name)
}

// Names lists the source names in order, for UI dropdowns.
func Names(sources []Source) []string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name()
	}
	return names
}

func resolution(p scene.Params) int {
	if p.Resolution <= 0 {
		return DefaultResolution
	}
	return p.Resolution
}
