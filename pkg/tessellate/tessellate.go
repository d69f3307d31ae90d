// Package tessellate walks a scene graph and produces triangle meshes
// using a shape kernel. One mesh is produced per reachable primitive.
package tessellate

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/xcanals/meshform/pkg/graph"
	"github.com/xcanals/meshform/pkg/kernel"
)

// matrixStack accumulates placements during graph traversal.
type matrixStack struct {
	mats []mgl32.Mat4
}

func newMatrixStack() *matrixStack {
	return &matrixStack{mats: []mgl32.Mat4{mgl32.Ident4()}}
}

func (s *matrixStack) top() mgl32.Mat4 {
	return s.mats[len(s.mats)-1]
}

func (s *matrixStack) push(m mgl32.Mat4) {
	s.mats = append(s.mats, s.top().Mul4(m))
}

func (s *matrixStack) pop() {
	if len(s.mats) > 1 {
		s.mats = s.mats[:len(s.mats)-1]
	}
}

// Matrix returns the local-to-parent matrix of a placement:
// translate · rotateZ · rotateY · rotateX · scale.
func Matrix(td graph.TransformData) mgl32.Mat4 {
	m := mgl32.Ident4()
	if td.Translation != nil {
		t := *td.Translation
		m = m.Mul4(mgl32.Translate3D(float32(t.X), float32(t.Y), float32(t.Z)))
	}
	if td.Rotation != nil {
		r := *td.Rotation
		m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(float32(r.Z))))
		m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(float32(r.Y))))
		m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(float32(r.X))))
	}
	if td.Scale != nil {
		s := float32(*td.Scale)
		m = m.Mul4(mgl32.Scale3D(s, s, s))
	}
	return m
}

// NodeError reports a kernel failure on one primitive. It unwraps to the
// kernel error so errors.Is(err, kernel.ErrInvalidParameter) still holds.
type NodeError struct {
	Node  graph.NodeID
	Name  string
	Shape string
	Err   error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Shape, e.Name, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }

// Tessellate walks the scene graph and produces one triangle mesh per
// primitive reachable from a root, in depth-first order. The tessellator
// is read-only and never mutates the graph.
func Tessellate(g *graph.SceneGraph, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if g == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	ms := newMatrixStack()

	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			continue
		}
		collected, err := walkNode(g, k, root, ms)
		if err != nil {
			return nil, fmt.Errorf("tessellate: root %s: %w", root.DisplayName(), err)
		}
		meshes = append(meshes, collected...)
	}

	return meshes, nil
}

func walkNode(g *graph.SceneGraph, k kernel.Kernel, n *graph.Node, ms *matrixStack) ([]*kernel.Mesh, error) {
	switch n.Kind {
	case graph.NodePrimitive:
		return handlePrimitive(k, n, ms)
	case graph.NodeTransform:
		return handleTransform(g, k, n, ms)
	case graph.NodeGroup:
		return handleChildren(g, k, n, ms)
	default:
		return nil, fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

func handlePrimitive(k kernel.Kernel, n *graph.Node, ms *matrixStack) ([]*kernel.Mesh, error) {
	data, ok := n.Data.(graph.ShapeData)
	if !ok {
		return nil, fmt.Errorf("primitive node %s has unsupported data type %T", n.ID.Short(), n.Data)
	}

	mesh, err := Build(k, data)
	if err != nil {
		return nil, &NodeError{Node: n.ID, Name: n.DisplayName(), Shape: data.Shape(), Err: err}
	}

	mesh.Transform(ms.top())
	if n.Name != "" {
		mesh.Name = n.Name
	} else {
		mesh.Name = data.Shape() + "-" + n.ID.Short()
	}
	return []*kernel.Mesh{mesh}, nil
}

func handleTransform(g *graph.SceneGraph, k kernel.Kernel, n *graph.Node, ms *matrixStack) ([]*kernel.Mesh, error) {
	td, ok := n.Data.(graph.TransformData)
	if !ok {
		return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	ms.push(Matrix(td))
	defer ms.pop()
	return handleChildren(g, k, n, ms)
}

func handleChildren(g *graph.SceneGraph, k kernel.Kernel, n *graph.Node, ms *matrixStack) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh
	for _, child := range g.Children(n) {
		collected, err := walkNode(g, k, child, ms)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, collected...)
	}
	return meshes, nil
}

// Build calls the kernel for one shape and applies its paint in local
// space. The mesh is not placed.
func Build(k kernel.Kernel, data graph.ShapeData) (*kernel.Mesh, error) {
	var (
		mesh  *kernel.Mesh
		err   error
		paint *graph.Paint
		split float32
	)
	switch d := data.(type) {
	case graph.ConeData:
		mesh, err = k.Cone(d.Height, d.Radius, d.Segments)
		paint, split = d.Paint, float32(d.Height/2)
	case graph.CylinderData:
		mesh, err = k.Cylinder(d.Height, d.Radius, d.Segments)
		paint, split = d.Paint, float32(d.Height/2)
	case graph.PlaneData:
		mesh, err = k.Plane(d.Width, d.Height, d.Cols, d.Rows)
		paint = flat(d.Paint)
	case graph.TerrainData:
		relief, rerr := kernel.Relief(d.Relief)
		if rerr != nil {
			return nil, rerr
		}
		mesh, err = k.Terrain(d.Width, d.Depth, d.XSlices, d.ZSlices, d.MaxHeight, relief)
	case graph.SkyboxData:
		mesh, err = k.Skybox(d.Size)
		paint = flat(d.Paint)
	default:
		return nil, fmt.Errorf("%w: shape %q", kernel.ErrUnsupported, data.Shape())
	}
	if err != nil {
		return nil, err
	}
	if paint != nil {
		mesh.Paint(paint.Base, paint.Top, split)
	}
	return mesh, nil
}

// flat paints every vertex with the base color.
func flat(p *graph.Paint) *graph.Paint {
	if p == nil {
		return nil
	}
	return &graph.Paint{Base: p.Base, Top: p.Base}
}
