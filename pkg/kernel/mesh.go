package kernel

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: positions and colors have 3 floats per vertex,
// uvs has 2 floats per vertex (or is empty), indices has 3 entries per
// triangle. Triangles are counter-clockwise seen from the side their
// normal points to.
type Mesh struct {
	Positions []float32 `json:"positions"`     // [x0,y0,z0, x1,y1,z1, ...]
	Colors    []float32 `json:"colors"`        // [r0,g0,b0, ...] in 0..1
	UVs       []float32 `json:"uvs,omitempty"` // [u0,v0, ...]
	Indices   []uint32  `json:"indices"`       // [i0,i1,i2, ...] triangles
	Name      string    `json:"name"`          // which scene node this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Positions) == 0
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2]}
}

// Color returns the color of vertex i.
func (m *Mesh) Color(i int) Color {
	return Color{m.Colors[3*i], m.Colors[3*i+1], m.Colors[3*i+2]}
}

// Triangle returns the three vertex indices of triangle t.
func (m *Mesh) Triangle(t int) (a, b, c uint32) {
	return m.Indices[3*t], m.Indices[3*t+1], m.Indices[3*t+2]
}

// FaceNormal returns the unnormalized right-hand normal of triangle t.
// Its length is twice the triangle area.
func (m *Mesh) FaceNormal(t int) mgl32.Vec3 {
	a, b, c := m.Triangle(t)
	pa, pb, pc := m.Vertex(int(a)), m.Vertex(int(b)), m.Vertex(int(c))
	return pb.Sub(pa).Cross(pc.Sub(pa))
}

// Centroid returns the centroid of triangle t.
func (m *Mesh) Centroid(t int) mgl32.Vec3 {
	a, b, c := m.Triangle(t)
	return m.Vertex(int(a)).Add(m.Vertex(int(b))).Add(m.Vertex(int(c))).Mul(1.0 / 3.0)
}

// Bounds returns the axis-aligned bounding box of all vertices.
// An empty mesh returns two zero vectors.
func (m *Mesh) Bounds() (min, max mgl32.Vec3) {
	if m.IsEmpty() {
		return min, max
	}
	min = mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	max = mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for i := 0; i < len(m.Positions); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := m.Positions[i+axis]
			if v < min[axis] {
				min[axis] = v
			}
			if v > max[axis] {
				max[axis] = v
			}
		}
	}
	return min, max
}

// Validate checks the buffer invariants every consumer relies on. The
// returned error wraps ErrMalformedMesh.
func (m *Mesh) Validate() error {
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("%w: positions length %d is not a multiple of 3", ErrMalformedMesh, len(m.Positions))
	}
	if len(m.Colors) != len(m.Positions) {
		return fmt.Errorf("%w: colors length %d != positions length %d", ErrMalformedMesh, len(m.Colors), len(m.Positions))
	}
	if len(m.UVs) != 0 && len(m.UVs) != 2*m.VertexCount() {
		return fmt.Errorf("%w: uvs length %d != 2*vertex count %d", ErrMalformedMesh, len(m.UVs), 2*m.VertexCount())
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: indices length %d is not a multiple of 3", ErrMalformedMesh, len(m.Indices))
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at position %d out of range (vertex count %d)", ErrMalformedMesh, idx, i, n)
		}
	}
	return nil
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{Name: m.Name}
	c.Positions = append([]float32(nil), m.Positions...)
	c.Colors = append([]float32(nil), m.Colors...)
	if len(m.UVs) > 0 {
		c.UVs = append([]float32(nil), m.UVs...)
	}
	c.Indices = append([]uint32(nil), m.Indices...)
	return c
}

// Transform applies an affine matrix to every position in place.
// A matrix with a negative determinant mirrors the mesh, so the index
// winding is flipped to keep faces pointing outward.
func (m *Mesh) Transform(mat mgl32.Mat4) {
	for i := 0; i < len(m.Positions); i += 3 {
		p := mgl32.Vec4{m.Positions[i], m.Positions[i+1], m.Positions[i+2], 1}
		q := mat.Mul4x1(p)
		m.Positions[i], m.Positions[i+1], m.Positions[i+2] = q[0], q[1], q[2]
	}
	if mat.Mat3().Det() < 0 {
		for t := 0; t+2 < len(m.Indices); t += 3 {
			m.Indices[t+1], m.Indices[t+2] = m.Indices[t+2], m.Indices[t+1]
		}
	}
}

// Paint recolors the mesh in local space: vertices strictly above splitY
// get top, the rest get base. Solids of revolution are painted with splitY
// at half their height, which matches the builders' default layout.
func (m *Mesh) Paint(base, top Color, splitY float32) {
	if len(m.Colors) != len(m.Positions) {
		m.Colors = make([]float32, len(m.Positions))
	}
	for i := 0; i < len(m.Positions); i += 3 {
		c := base
		if m.Positions[i+1] > splitY {
			c = top
		}
		m.Colors[i], m.Colors[i+1], m.Colors[i+2] = c[0], c[1], c[2]
	}
}
