package procedural

import (
	"github.com/chewxy/math32"

	"github.com/xcanals/meshform/pkg/kernel"
)

// meshBuilder appends vertices and triangles into preallocated buffers.
type meshBuilder struct {
	m *kernel.Mesh
}

func newMeshBuilder(name string, vertices, triangles int) *meshBuilder {
	return &meshBuilder{m: &kernel.Mesh{
		Name:      name,
		Positions: make([]float32, 0, vertices*3),
		Colors:    make([]float32, 0, vertices*3),
		Indices:   make([]uint32, 0, triangles*3),
	}}
}

// vertex appends a vertex and returns its index.
func (b *meshBuilder) vertex(x, y, z float32, c kernel.Color) uint32 {
	idx := uint32(len(b.m.Positions) / 3)
	b.m.Positions = append(b.m.Positions, x, y, z)
	b.m.Colors = append(b.m.Colors, c[0], c[1], c[2])
	return idx
}

func (b *meshBuilder) triangle(a, c, d uint32) {
	b.m.Indices = append(b.m.Indices, a, c, d)
}

// ring appends n vertices equally spaced by angle on a circle of the given
// radius at height y and returns the index of the first one. Vertex i sits
// at angle i*2π/n measured from +X towards +Z.
func (b *meshBuilder) ring(radius, y float32, n int, c kernel.Color) uint32 {
	start := uint32(len(b.m.Positions) / 3)
	step := 2 * math32.Pi / float32(n)
	for i := 0; i < n; i++ {
		angle := float32(i) * step
		b.vertex(math32.Cos(angle)*radius, y, math32.Sin(angle)*radius, c)
	}
	return start
}

// fan appends n triangles joining center to consecutive ring vertices.
// Triangles are (center, i, next), whose normal points to -Y for a ring
// built by ring; reverse emits (center, next, i) instead.
func (b *meshBuilder) fan(center, ringStart uint32, n int, reverse bool) {
	for i := 0; i < n; i++ {
		cur := ringStart + uint32(i)
		next := ringStart + uint32((i+1)%n)
		if reverse {
			b.triangle(center, next, cur)
		} else {
			b.triangle(center, cur, next)
		}
	}
}

func (b *meshBuilder) mesh() *kernel.Mesh {
	return b.m
}
