// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Cones and cylinders are
// modelled as signed distance fields and meshed with marching cubes, which
// gives a finely tessellated reference for the procedural builders.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/xcanals/meshform/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// DefaultMeshCells controls marching cubes tessellation resolution.
const DefaultMeshCells = 200

// Kernel implements kernel.Kernel using sdfx.
type Kernel struct {
	cells int
}

// New returns a new Kernel meshing with the given number of marching
// cubes cells along the longest axis. Non-positive values select
// DefaultMeshCells.
func New(cells int) *Kernel {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	return &Kernel{cells: cells}
}

// Name returns "sdfx".
func (k *Kernel) Name() string {
	return "sdfx"
}

// upright turns a Z-axis solid centred at the origin into a Y-up solid
// whose base sits on y = 0.
func upright(s sdf.SDF3, height float64) sdf.SDF3 {
	m := sdf.Translate3d(v3.Vec{X: 0, Y: height / 2, Z: 0}).Mul(sdf.RotateX(-math.Pi / 2))
	return sdf.Transform3D(s, m)
}

// Cone creates a cone with its base on y = 0. numBaseVertices is only
// validated: the SDF represents a smooth surface.
func (k *Kernel) Cone(height, radius float64, numBaseVertices int) (*kernel.Mesh, error) {
	if err := kernel.ValidateCone(height, radius, numBaseVertices); err != nil {
		return nil, err
	}
	s, err := sdf.Cone3D(height, radius, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Cone3D: %w", err)
	}
	m, err := k.toMesh(upright(s, height), "cone")
	if err != nil {
		return nil, err
	}
	m.Paint(kernel.Red, kernel.Blue, float32(height/2))
	return m, nil
}

// Cylinder creates a cylinder with its base on y = 0. numBaseVertices is
// only validated.
func (k *Kernel) Cylinder(height, radius float64, numBaseVertices int) (*kernel.Mesh, error) {
	if err := kernel.ValidateCylinder(height, radius, numBaseVertices); err != nil {
		return nil, err
	}
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Cylinder3D: %w", err)
	}
	m, err := k.toMesh(upright(s, height), "cylinder")
	if err != nil {
		return nil, err
	}
	m.Paint(kernel.Cyan, kernel.Green, float32(height/2))
	return m, nil
}

// Plane is not supported: a zero-thickness solid has no interior to mesh.
func (k *Kernel) Plane(width, height float64, cols, rows int) (*kernel.Mesh, error) {
	if err := kernel.ValidatePlane(width, height, cols, rows); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("sdfx: plane: %w", kernel.ErrUnsupported)
}

// Terrain is not supported.
func (k *Kernel) Terrain(width, depth float64, xSlices, zSlices int, maxHeight float64, relief kernel.HeightFunc) (*kernel.Mesh, error) {
	if err := kernel.ValidateTerrain(width, depth, xSlices, zSlices, maxHeight); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("sdfx: terrain: %w", kernel.ErrUnsupported)
}

// Skybox is not supported: marching cubes only produces outward faces.
func (k *Kernel) Skybox(size float64) (*kernel.Mesh, error) {
	if err := kernel.ValidateSkybox(size); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("sdfx: skybox: %w", kernel.ErrUnsupported)
}

// toMesh converts a solid to a triangle mesh using marching cubes.
// Triangles do not share vertices.
func (k *Kernel) toMesh(s sdf.SDF3, name string) (*kernel.Mesh, error) {
	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(s, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("sdfx: %s: marching cubes produced no triangles", name)
	}

	numVerts := len(triangles) * 3
	positions := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		for j := 0; j < 3; j++ {
			v := tri[j]
			positions = append(positions, float32(v.X), float32(v.Y), float32(v.Z))
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Name:      name,
		Positions: positions,
		Colors:    make([]float32, len(positions)),
		Indices:   indices,
	}, nil
}
