package procedural

import "github.com/xcanals/meshform/pkg/kernel"

// Cylinder builds a closed cylinder standing on the XZ plane.
//
// Vertex 0 is the bottom centre, vertex 1 the top centre, vertices 2..n+1
// the bottom ring and n+2..2n+1 the top ring, each top vertex directly
// above its bottom counterpart. Triangles: n bottom, n top, then two per
// side quad; 12n indices, all facing outward.
func Cylinder(height, radius float32, numBaseVertices int) (*kernel.Mesh, error) {
	if err := kernel.ValidateCylinder(float64(height), float64(radius), numBaseVertices); err != nil {
		return nil, err
	}
	n := numBaseVertices

	b := newMeshBuilder("cylinder", 2*n+2, 4*n)
	bottomCenter := b.vertex(0, 0, 0, kernel.Cyan)
	topCenter := b.vertex(0, height, 0, kernel.Green)
	bottom := b.ring(radius, 0, n, kernel.Cyan)
	top := b.ring(radius, height, n, kernel.Green)

	b.fan(bottomCenter, bottom, n, false)
	b.fan(topCenter, top, n, true)

	for i := 0; i < n; i++ {
		next := (i + 1) % n
		bi, bn := bottom+uint32(i), bottom+uint32(next)
		ti, tn := top+uint32(i), top+uint32(next)
		b.triangle(bi, ti, bn)
		b.triangle(ti, tn, bn)
	}

	return b.mesh(), nil
}
