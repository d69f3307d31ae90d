package procedural

import "github.com/xcanals/meshform/pkg/kernel"

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// Kernel implements kernel.Kernel with the parametric builders of this
// package. The zero value is ready to use.
type Kernel struct{}

// New returns a new procedural Kernel.
func New() *Kernel {
	return &Kernel{}
}

// Name returns "procedural".
func (k *Kernel) Name() string {
	return "procedural"
}

// Cone builds a cone with the default palette.
func (k *Kernel) Cone(height, radius float64, numBaseVertices int) (*kernel.Mesh, error) {
	return Cone(float32(height), float32(radius), numBaseVertices)
}

// Cylinder builds a cylinder with the default palette.
func (k *Kernel) Cylinder(height, radius float64, numBaseVertices int) (*kernel.Mesh, error) {
	return Cylinder(float32(height), float32(radius), numBaseVertices)
}

// Plane builds a plane grid with the default palette.
func (k *Kernel) Plane(width, height float64, cols, rows int) (*kernel.Mesh, error) {
	return Plane(float32(width), float32(height), cols, rows)
}

// Terrain builds a terrain grid displaced by relief, or flat when relief
// is nil.
func (k *Kernel) Terrain(width, depth float64, xSlices, zSlices int, maxHeight float64, relief kernel.HeightFunc) (*kernel.Mesh, error) {
	var opts []Option
	if relief != nil {
		opts = append(opts, WithHeightFunc(relief))
	}
	return Terrain(float32(width), float32(depth), xSlices, zSlices, float32(maxHeight), opts...)
}

// Skybox builds an inward-facing cube.
func (k *Kernel) Skybox(size float64) (*kernel.Mesh, error) {
	return Skybox(float32(size))
}
