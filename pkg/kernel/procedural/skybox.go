package procedural

import "github.com/xcanals/meshform/pkg/kernel"

// cubeCorners lists the unit cube corners, bit 0 = +X, bit 1 = +Y, bit 2 = +Z.
var cubeCorners = [8][3]float32{
	{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1}, {1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
}

// skyboxFaces holds two triangles per cube face, wound so each normal
// points towards the centre of the cube.
var skyboxFaces = [12][3]uint32{
	{0, 1, 2}, {1, 3, 2}, // -Z
	{4, 6, 5}, {5, 6, 7}, // +Z
	{0, 2, 4}, {2, 6, 4}, // -X
	{1, 5, 3}, {3, 5, 7}, // +X
	{0, 4, 1}, {1, 4, 5}, // -Y
	{2, 3, 6}, {3, 7, 6}, // +Y
}

// Skybox builds a cube of half-extent size centred at the origin whose
// faces point inward, for a camera placed inside it.
func Skybox(size float32) (*kernel.Mesh, error) {
	if err := kernel.ValidateSkybox(float64(size)); err != nil {
		return nil, err
	}
	b := newMeshBuilder("skybox", len(cubeCorners), len(skyboxFaces))
	for _, c := range cubeCorners {
		b.vertex(c[0]*size, c[1]*size, c[2]*size, kernel.White)
	}
	for _, f := range skyboxFaces {
		b.triangle(f[0], f[1], f[2])
	}
	return b.mesh(), nil
}
