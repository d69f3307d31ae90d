package procedural

import "github.com/xcanals/meshform/pkg/kernel"

// Cone builds a cone standing on the XZ plane with its apex at
// (0, height, 0).
//
// Vertex 0 is the base centre, vertex 1 the apex and vertices 2..n+1 the
// base ring. The mesh has n base triangles fanned from the centre and n
// body triangles fanned from the apex, 6n indices in total, all facing
// outward.
func Cone(height, radius float32, numBaseVertices int) (*kernel.Mesh, error) {
	if err := kernel.ValidateCone(float64(height), float64(radius), numBaseVertices); err != nil {
		return nil, err
	}
	n := numBaseVertices

	b := newMeshBuilder("cone", n+2, 2*n)
	center := b.vertex(0, 0, 0, kernel.Red)
	apex := b.vertex(0, height, 0, kernel.Blue)
	ring := b.ring(radius, 0, n, kernel.Red)

	b.fan(center, ring, n, false)
	b.fan(apex, ring, n, true)

	return b.mesh(), nil
}
