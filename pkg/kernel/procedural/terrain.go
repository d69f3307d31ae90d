package procedural

import (
	"github.com/chewxy/math32"

	"github.com/xcanals/meshform/pkg/kernel"
)

// Terrain builds a heightfield grid of xSlices x zSlices cells spanning
// width x depth on the XZ plane, centred at the origin. UVs run from (0,0)
// at the -X,-Z corner to (1,1) at the +X,+Z corner.
//
// Without a height function the grid is flat and every vertex is shaded
// at intensity 0.25. With one, vertex (u, v) is raised to
// h(u,v)*maxHeight and shaded at h*0.75 + 0.25.
func Terrain(width, depth float32, xSlices, zSlices int, maxHeight float32, opts ...Option) (*kernel.Mesh, error) {
	if err := kernel.ValidateTerrain(float64(width), float64(depth), xSlices, zSlices, float64(maxHeight)); err != nil {
		return nil, err
	}
	o := newOptions(opts)

	b := newMeshBuilder("terrain", (xSlices+1)*(zSlices+1), 2*xSlices*zSlices)
	b.m.UVs = make([]float32, 0, 2*(xSlices+1)*(zSlices+1))

	stepX := width / float32(xSlices)
	stepZ := depth / float32(zSlices)
	for row := 0; row <= zSlices; row++ {
		v := float32(row) / float32(zSlices)
		z := -depth/2 + float32(row)*stepZ
		for col := 0; col <= xSlices; col++ {
			u := float32(col) / float32(xSlices)
			x := -width/2 + float32(col)*stepX

			y, c := float32(0), kernel.Gray(0.25)
			if o.height != nil {
				h := clamp01(o.height(u, v))
				y = h * maxHeight
				c = kernel.Gray(h*0.75 + 0.25)
			}
			b.vertex(x, y, z, c)
			b.m.UVs = append(b.m.UVs, u, v)
		}
	}
	gridTriangles(b, xSlices, zSlices)

	return b.mesh(), nil
}

func clamp01(v float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	return math32.Max(0, math32.Min(1, v))
}
