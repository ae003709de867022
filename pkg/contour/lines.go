package contour

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/kmellis/isofield/pkg/colormap"
	"github.com/kmellis/isofield/pkg/field"
	"github.com/kmellis/isofield/pkg/mesh"
)

// LineSet is the flat isoline output: the points of every traced
// polyline appended in walk order, one RGB triple per polyline, and the
// point count of each polyline so the caller can fan the flat buffer out
// into line-segment draw calls. Closed loops repeat their first point.
type LineSet struct {
	Positions []float32 `json:"positions"`
	Colors    []float32 `json:"colors"`
	Counts    []int     `json:"counts"`
}

// PolylineCount returns the number of traced polylines.
func (ls *LineSet) PolylineCount() int {
	return len(ls.Counts)
}

// edgeKey identifies a mesh edge by its sorted vertex-index pair.
type edgeKey struct {
	a, b int
}

func makeEdgeKey(i, j int) edgeKey {
	if i > j {
		i, j = j, i
	}
	return edgeKey{a: i, b: j}
}

// edgePairs maps the 3-bit above/below corner pattern of a triangle to
// the two crossed edges, as local corner index pairs. Patterns 000 and
// 111 do not cross and map to the noCrossing sentinel.
var edgePairs = [8][2][2]int{
	0b000: {{-1, -1}, {-1, -1}},
	0b001: {{0, 1}, {0, 2}},
	0b010: {{0, 1}, {1, 2}},
	0b011: {{0, 2}, {1, 2}},
	0b100: {{0, 2}, {1, 2}},
	0b101: {{0, 1}, {1, 2}},
	0b110: {{0, 1}, {0, 2}},
	0b111: {{-1, -1}, {-1, -1}},
}

// Tracer walks iso-contour lines over a fixed triangle topology. Setup
// validates the topology once; Trace may then be called repeatedly with
// different fields or iso-value lists.
type Tracer struct {
	tris [][3]int
	min  float64
	max  float64
}

// NewTracer stores the triangle index triples of a mesh together with
// the [min,max] scalar bounds of the visualized range. It rejects any
// triangle that references the same vertex twice, naming the offending
// triangle; this is the one topology validation in the subsystem.
func NewTracer(m *mesh.Mesh, min, max float64) (*Tracer, error) {
	count := m.TriangleCount()
	tris := make([][3]int, count)
	for t := 0; t < count; t++ {
		i, j, k := m.TriangleIndices(t)
		if i == j || j == k || i == k {
			return nil, fmt.Errorf("contour: triangle %d references a vertex twice: (%d, %d, %d)", t, i, j, k)
		}
		tris[t] = [3]int{i, j, k}
	}
	return &Tracer{tris: tris, min: min, max: max}, nil
}

// crossing records, for one triangle at one iso-value, its two crossed
// edges as mesh-level vertex index pairs.
type crossing struct {
	edges [2]edgeKey
}

// Trace extracts the isolines of a scalar field at every supplied
// iso-value, in the ascending order given. Each polyline is colored
// uniformly with the LUT color of its iso-value.
func (tr *Tracer) Trace(m *mesh.Mesh, scalars []float64, isoValues []float64, lut *colormap.LUT) (*LineSet, error) {
	if n := m.VertexCount(); len(scalars) != n {
		return nil, fmt.Errorf("contour: scalar field has %d values for %d vertices", len(scalars), n)
	}
	if !field.Ascending(isoValues) {
		return nil, fmt.Errorf("contour: iso-values must be ascending")
	}

	ls := &LineSet{}
	for _, iso := range isoValues {
		tr.traceLevel(ls, m, scalars, iso, lut)
	}
	return ls, nil
}

// traceLevel classifies every triangle against one iso-value, builds the
// crossing-edge adjacency, and walks connected crossings into polylines.
func (tr *Tracer) traceLevel(ls *LineSet, m *mesh.Mesh, scalars []float64, iso float64, lut *colormap.LUT) {
	crossings := make(map[int]crossing)
	adjacency := make(map[edgeKey][]int)

	for t, tri := range tr.tris {
		v0, v1, v2 := scalars[tri[0]], scalars[tri[1]], scalars[tri[2]]

		// Outside the visualized range entirely: skip early.
		if (v0 < tr.min && v1 < tr.min && v2 < tr.min) ||
			(v0 > tr.max && v1 > tr.max && v2 > tr.max) {
			continue
		}

		pattern := 0
		if v0 >= iso {
			pattern |= 0b001
		}
		if v1 >= iso {
			pattern |= 0b010
		}
		if v2 >= iso {
			pattern |= 0b100
		}
		pairs := edgePairs[pattern]
		if pairs[0][0] < 0 {
			continue
		}

		c := crossing{edges: [2]edgeKey{
			makeEdgeKey(tri[pairs[0][0]], tri[pairs[0][1]]),
			makeEdgeKey(tri[pairs[1][0]], tri[pairs[1][1]]),
		}}
		crossings[t] = c
		adjacency[c.edges[0]] = append(adjacency[c.edges[0]], t)
		adjacency[c.edges[1]] = append(adjacency[c.edges[1]], t)
	}

	visited := make(map[int]bool)

	// Start triangles are taken in index order so output is reproducible.
	for t := range tr.tris {
		c, crosses := crossings[t]
		if !crosses || visited[t] {
			continue
		}
		visited[t] = true

		startEdge := c.edges[0]
		points := []mgl64.Vec3{
			tr.intersect(m, scalars, startEdge, iso),
			tr.intersect(m, scalars, c.edges[1], iso),
		}

		// Walk forward across shared crossing edges.
		current, currentEdge := t, c.edges[1]
		closed := false
		for {
			next, ok := unvisitedNeighbor(adjacency, visited, currentEdge, current)
			if !ok {
				break
			}
			visited[next] = true
			nc := crossings[next]
			exitEdge := nc.edges[0]
			if exitEdge == currentEdge {
				exitEdge = nc.edges[1]
			}
			if exitEdge == startEdge {
				// Closed loop: repeat the start point and stop.
				points = append(points, points[0])
				closed = true
				break
			}
			points = append(points, tr.intersect(m, scalars, exitEdge, iso))
			current, currentEdge = next, exitEdge
		}

		// Open polyline: take one step backward from the start to extend
		// the other end before finalizing.
		if !closed {
			if back, ok := unvisitedNeighbor(adjacency, visited, startEdge, t); ok {
				visited[back] = true
				bc := crossings[back]
				exitEdge := bc.edges[0]
				if exitEdge == startEdge {
					exitEdge = bc.edges[1]
				}
				points = append([]mgl64.Vec3{tr.intersect(m, scalars, exitEdge, iso)}, points...)
			}
		}

		col := lut.GetColor(iso)
		ls.Colors = append(ls.Colors, float32(col.R), float32(col.G), float32(col.B))
		ls.Counts = append(ls.Counts, len(points))
		for _, p := range points {
			ls.Positions = append(ls.Positions, float32(p.X()), float32(p.Y()), float32(p.Z()))
		}
	}
}

// unvisitedNeighbor returns the other, not yet visited triangle sharing
// a crossing edge. Interior crossing edges are shared by at most two
// triangles; boundary edges by one.
func unvisitedNeighbor(adjacency map[edgeKey][]int, visited map[int]bool, edge edgeKey, self int) (int, bool) {
	for _, t := range adjacency[edge] {
		if t != self && !visited[t] {
			return t, true
		}
	}
	return 0, false
}

// intersect interpolates the point where the iso-value crosses an edge.
func (tr *Tracer) intersect(m *mesh.Mesh, scalars []float64, e edgeKey, iso float64) mgl64.Vec3 {
	lo, hi := e.a, e.b
	if scalars[lo] > scalars[hi] {
		lo, hi = hi, lo
	}
	t := (iso - scalars[lo]) / (scalars[hi] - scalars[lo])
	lx, ly, lz := m.Position(lo)
	hx, hy, hz := m.Position(hi)
	p0 := mgl64.Vec3{float64(lx), float64(ly), float64(lz)}
	p1 := mgl64.Vec3{float64(hx), float64(hy), float64(hz)}
	return p0.Add(p1.Sub(p0).Mul(t))
}
