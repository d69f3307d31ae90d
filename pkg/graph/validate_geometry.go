package graph

import (
	"fmt"
	"maps"
	"slices"

	"github.com/xcanals/meshform/pkg/kernel"
)

// HighResolution is the segment or cell count above which a shape is
// reported as unusually dense.
const HighResolution = 1024

// ---------------------------------------------------------------------------
// Tier 2: Geometric validation (errors + warnings)
// ---------------------------------------------------------------------------

// validateGeometry runs all Tier 2 geometric checks.
// Returns errors (blocking) and warnings (advisory) separately.
func validateGeometry(g *SceneGraph) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	errs = append(errs, validateShapeParameters(g)...)
	errs = append(errs, validatePaint(g)...)

	warnings = append(warnings, validateIndexWidth(g)...)
	warnings = append(warnings, validateResolution(g)...)
	warnings = append(warnings, validateCoincidentPlacements(g)...)

	return errs, warnings
}

// validateShapeParameters runs the kernel parameter checks for every
// primitive, so a bad script is rejected before tessellation.
func validateShapeParameters(g *SceneGraph) []ValidationError {
	var errs []ValidationError

	for _, node := range sortedNodes(g) {
		sd, ok := node.Data.(ShapeData)
		if !ok {
			continue
		}
		if err := sd.Check(); err != nil {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  err.Error(),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validatePaint checks that every color override lies in 0..1.
func validatePaint(g *SceneGraph) []ValidationError {
	var errs []ValidationError

	for _, node := range sortedNodes(g) {
		var p *Paint
		switch d := node.Data.(type) {
		case ConeData:
			p = d.Paint
		case CylinderData:
			p = d.Paint
		case PlaneData:
			p = d.Paint
		case SkyboxData:
			p = d.Paint
		}
		if p == nil {
			continue
		}
		for _, c := range []kernel.Color{p.Base, p.Top} {
			if !c.Valid() {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("color %v has a component outside 0..1", c),
					Severity: SeverityError,
				})
			}
		}
	}

	return errs
}

// validateIndexWidth warns when a shape has more vertices than 8-bit
// indices can address. Renderers that upload byte indices would wrap
// around and draw garbage; the mesh itself stays correct with wider indices.
func validateIndexWidth(g *SceneGraph) []ValidationWarning {
	var warnings []ValidationWarning

	for _, node := range sortedNodes(g) {
		sd, ok := node.Data.(ShapeData)
		if !ok || sd.Check() != nil {
			continue // parameter errors reported above
		}
		n := sd.VertexCount()
		if f := kernel.IndexFormatFor(n); f != kernel.IndexUint8 {
			warnings = append(warnings, ValidationWarning{
				NodeID: node.ID,
				Message: fmt.Sprintf(
					"%s %q has %d vertices; 8-bit indices cannot address it, %s indices are required",
					sd.Shape(), node.DisplayName(), n, f,
				),
			})
		}
	}

	return warnings
}

// validateResolution warns about unusually high segment or cell counts.
func validateResolution(g *SceneGraph) []ValidationWarning {
	var warnings []ValidationWarning

	for _, node := range sortedNodes(g) {
		sd, ok := node.Data.(ShapeData)
		if !ok {
			continue
		}
		if r := sd.Resolution(); r > HighResolution {
			warnings = append(warnings, ValidationWarning{
				NodeID:  node.ID,
				Message: fmt.Sprintf("%s %q resolution %d exceeds %d", sd.Shape(), node.DisplayName(), r, HighResolution),
			})
		}
	}

	return warnings
}

// placementKey identifies a transform by its child and parameters so that
// two identical placements of the same shape can be detected.
type placementKey struct {
	child               NodeID
	translation, rotate Vec3
	scale               float64
}

func makePlacementKey(child NodeID, td TransformData) placementKey {
	k := placementKey{child: child, scale: 1}
	if td.Translation != nil {
		k.translation = *td.Translation
	}
	if td.Rotation != nil {
		k.rotate = *td.Rotation
	}
	if td.Scale != nil {
		k.scale = *td.Scale
	}
	return k
}

// validateCoincidentPlacements warns when the same shape is placed twice
// with identical parameters, producing two overlapping meshes.
func validateCoincidentPlacements(g *SceneGraph) []ValidationWarning {
	var warnings []ValidationWarning
	seen := make(map[placementKey]NodeID) // first transform node that used this key

	// Visit in a stable order so the same node is always reported.
	for _, node := range sortedNodes(g) {
		td, ok := node.Data.(TransformData)
		if !ok || len(node.Children) != 1 {
			continue
		}
		key := makePlacementKey(node.Children[0], td)
		if firstID, exists := seen[key]; exists {
			warnings = append(warnings, ValidationWarning{
				NodeID:  node.ID,
				Message: fmt.Sprintf("placement duplicates node %s; the meshes will overlap", firstID.Short()),
			})
		} else {
			seen[key] = node.ID
		}
	}

	return warnings
}

func sortedNodes(g *SceneGraph) []*Node {
	nodes := make([]*Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, n)
	}
	sortNodes(nodes)
	return nodes
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
