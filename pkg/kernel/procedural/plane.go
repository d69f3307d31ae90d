package procedural

import "github.com/xcanals/meshform/pkg/kernel"

// Plane builds a flat grid of cols x rows cells on the XZ plane, centred
// at the origin and facing +Y.
//
// Vertices are row-major: vertex (row, col) has index row*(cols+1)+col,
// x = -width/2 + col*width/cols and z = -height/2 + row*height/rows.
// Every cell is split along the same diagonal, from its bottom-left to its
// top-right corner.
func Plane(width, height float32, cols, rows int) (*kernel.Mesh, error) {
	if err := kernel.ValidatePlane(float64(width), float64(height), cols, rows); err != nil {
		return nil, err
	}
	b := newMeshBuilder("plane", (cols+1)*(rows+1), 2*cols*rows)
	stepX := width / float32(cols)
	stepZ := height / float32(rows)
	for row := 0; row <= rows; row++ {
		z := -height/2 + float32(row)*stepZ
		for col := 0; col <= cols; col++ {
			b.vertex(-width/2+float32(col)*stepX, 0, z, kernel.Magenta)
		}
	}
	gridTriangles(b, cols, rows)

	return b.mesh(), nil
}

// gridTriangles emits two triangles per cell of a row-major vertex grid,
// wound so their normal points to +Y when rows advance along +Z and
// columns along +X.
func gridTriangles(b *meshBuilder, cols, rows int) {
	stride := uint32(cols + 1)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			topLeft := uint32(row)*stride + uint32(col)
			topRight := topLeft + 1
			bottomLeft := topLeft + stride
			bottomRight := bottomLeft + 1

			b.triangle(topLeft, bottomLeft, topRight)
			b.triangle(bottomLeft, bottomRight, topRight)
		}
	}
}
