// Package kernel defines the mesh type produced by every shape builder and
// the abstract kernel interface behind which builders live.
// Implementations (procedural, sdfx) turn shape parameters into meshes.
// The kernel abstraction allows swapping backends without changing the
// rest of the system.
package kernel

// Kernel is the abstract shape kernel interface.
// Every method validates its parameters first and returns an error
// wrapping ErrInvalidParameter, and a nil mesh, when they are rejected.
type Kernel interface {
	// Name identifies the backend ("procedural", "sdfx").
	Name() string

	// Solids of revolution around +Y with the base on y = 0.
	Cone(height, radius float64, numBaseVertices int) (*Mesh, error)
	Cylinder(height, radius float64, numBaseVertices int) (*Mesh, error)

	// Grids on the XZ plane centred at the origin. A nil relief leaves
	// the terrain flat.
	Plane(width, height float64, cols, rows int) (*Mesh, error)
	Terrain(width, depth float64, xSlices, zSlices int, maxHeight float64, relief HeightFunc) (*Mesh, error)

	// Skybox is an inward-facing cube of half-extent size.
	Skybox(size float64) (*Mesh, error)
}
