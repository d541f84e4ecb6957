package scene

import (
	"fmt"

	"pbr-engine/core"
	"pbr-engine/opengl"
)

// Mesh is indexed triangle geometry. Vertex and index data live on the CPU
// until the first draw needs them; EnsureUploaded creates the GPU copy.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32

	va *opengl.VertexArray

	bounds    AABB
	hasBounds bool
}

// NewMesh wraps vertex and index slices. The mesh takes ownership of the
// slices; do not mutate them after uploading.
func NewMesh(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	return &Mesh{Name: name, Vertices: vertices, Indices: indices}
}

// EnsureUploaded uploads the geometry on first use and returns the vertex
// array. Requires a current GL context.
func (m *Mesh) EnsureUploaded() (*opengl.VertexArray, error) {
	if m.va != nil {
		return m.va, nil
	}
	va, err := opengl.NewVertexArray(m.Vertices, m.Indices)
	if err != nil {
		return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
	}
	m.va = va
	return va, nil
}

// VertexArray returns the uploaded geometry, or nil before EnsureUploaded.
func (m *Mesh) VertexArray() *opengl.VertexArray {
	return m.va
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the local-space bounding box of the vertices. The box is
// computed once and cached; geometry is immutable after upload, so the
// cache never goes stale.
func (m *Mesh) Bounds() AABB {
	if m.hasBounds {
		return m.bounds
	}
	if len(m.Vertices) == 0 {
		m.hasBounds = true
		return m.bounds
	}
	box := AABB{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		for axis := 0; axis < 3; axis++ {
			if v.Position[axis] < box.Min[axis] {
				box.Min[axis] = v.Position[axis]
			}
			if v.Position[axis] > box.Max[axis] {
				box.Max[axis] = v.Position[axis]
			}
		}
	}
	m.bounds = box
	m.hasBounds = true
	return box
}

// Destroy releases the GPU copy. The CPU data stays valid, so the mesh can
// be re-uploaded later.
func (m *Mesh) Destroy() {
	if m.va != nil {
		m.va.Destroy()
		m.va = nil
	}
}
