package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"stilllife/core"
)

// Mesh holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	// Indices is empty for meshes drawn as plain triangle lists.
	Indices []uint32
}

func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
}

func (m *Mesh) Indexed() bool {
	return len(m.Indices) > 0
}

// DrawCount is the number of elements submitted by one draw call.
func (m *Mesh) DrawCount() int {
	if m.Indexed() {
		return len(m.Indices)
	}
	return len(m.Vertices)
}

// Bounds returns the local-space axis-aligned box of the vertex positions.
func (m *Mesh) Bounds() (min, max mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	min = m.Vertices[0].Position
	max = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < min[i] {
				min[i] = v.Position[i]
			}
			if v.Position[i] > max[i] {
				max[i] = v.Position[i]
			}
		}
	}
	return min, max
}

// FlatShade expands an indexed mesh into independent triangles that carry
// their face normal, giving the faceted look of an unsmoothed sphere.
func FlatShade(m *Mesh) *Mesh {
	if !m.Indexed() {
		return m
	}
	out := make([]core.Vertex, 0, len(m.Indices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]]
		b := m.Vertices[m.Indices[i+1]]
		c := m.Vertices[m.Indices[i+2]]

		n := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		if n.Len() > 0 {
			n = n.Normalize()
		} else {
			// Degenerate triangle at a pole; keep the smooth normal.
			n = a.Normal
		}
		a.Normal, b.Normal, c.Normal = n, n, n
		out = append(out, a, b, c)
	}
	return CreateMeshFromData(m.Name, out, nil)
}
