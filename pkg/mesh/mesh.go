// Package mesh provides the typed-array-backed triangle mesh the
// contouring algorithms read from and write to: a position buffer, an
// optional index buffer, and named per-vertex attributes, all flat
// float32 slices suitable for direct GPU upload.
package mesh

// Attribute is a flat buffer of per-vertex data. ItemSize is the number
// of floats per vertex (3 for positions, normals, and colors). Ownership
// of Data stays with whoever constructed the attribute; there is no
// defensive copying anywhere in this package.
type Attribute struct {
	Data     []float32
	ItemSize int
	Dirty    bool // set when the buffer needs re-upload
}

// NewAttribute wraps a flat buffer as an attribute.
func NewAttribute(data []float32, itemSize int) *Attribute {
	return &Attribute{Data: data, ItemSize: itemSize}
}

// Count returns the number of vertices covered by the attribute.
func (a *Attribute) Count() int {
	if a == nil || a.ItemSize == 0 {
		return 0
	}
	return len(a.Data) / a.ItemSize
}

// Mesh owns a position attribute, an optional triangle index buffer, and
// a map of named vertex attributes. When the index buffer is absent,
// positions are implicitly grouped into consecutive triangles.
type Mesh struct {
	positions *Attribute
	indices   []uint32
	attrs     map[string]*Attribute
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{attrs: make(map[string]*Attribute)}
}

// SetPositions installs the position attribute.
func (m *Mesh) SetPositions(a *Attribute) { m.positions = a }

// Positions returns the position attribute, or nil.
func (m *Mesh) Positions() *Attribute { return m.positions }

// SetIndices installs the triangle index buffer, three indices per
// triangle. Every index must be < Positions().Count().
func (m *Mesh) SetIndices(indices []uint32) { m.indices = indices }

// Indices returns the index buffer, or nil for non-indexed meshes.
func (m *Mesh) Indices() []uint32 { return m.indices }

// SetAttribute installs a named vertex attribute such as "normal".
func (m *Mesh) SetAttribute(name string, a *Attribute) {
	if m.attrs == nil {
		m.attrs = make(map[string]*Attribute)
	}
	m.attrs[name] = a
}

// Attribute returns the named vertex attribute, or nil.
func (m *Mesh) Attribute(name string) *Attribute {
	return m.attrs[name]
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return m.positions.Count()
}

// TriangleCount returns the number of triangles, from the index buffer
// when present, otherwise from consecutive position triples.
func (m *Mesh) TriangleCount() int {
	if m.indices != nil {
		return len(m.indices) / 3
	}
	return m.VertexCount() / 3
}

// TriangleIndices returns the three vertex indices of triangle t.
func (m *Mesh) TriangleIndices(t int) (int, int, int) {
	if m.indices != nil {
		return int(m.indices[3*t]), int(m.indices[3*t+1]), int(m.indices[3*t+2])
	}
	return 3 * t, 3*t + 1, 3*t + 2
}

// Position returns the position of vertex i.
func (m *Mesh) Position(i int) (x, y, z float32) {
	d := m.positions.Data
	return d[3*i], d[3*i+1], d[3*i+2]
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return m.positions.Count() == 0
}
