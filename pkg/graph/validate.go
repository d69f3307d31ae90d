package graph

import (
	"fmt"
	"math"
)

// ValidationSeverity indicates whether a validation finding blocks evaluation
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks evaluation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID             // which node has the problem (zero if graph-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	NodeID  NodeID
	Message string
}

// ValidationResult bundles errors (blocking) and warnings (advisory)
// from all validation tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether there are no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate runs all Tier 1 structural validation checks on the scene graph
// and returns a slice of validation errors. An empty slice means the graph is
// valid. This function is read-only and never mutates the graph.
func Validate(g *SceneGraph) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateDAG(g)...)
	errs = append(errs, validateReferences(g)...)
	errs = append(errs, validateNames(g)...)
	errs = append(errs, validateRoots(g)...)
	errs = append(errs, validateKinds(g)...)
	errs = append(errs, validateTransforms(g)...)
	return errs
}

// ValidateAll runs the structural and geometric validation tiers and
// returns a ValidationResult with separated errors and warnings.
func ValidateAll(g *SceneGraph) ValidationResult {
	// Tier 1: structural validation.
	tier1 := Validate(g)

	// Tier 2: geometric validation.
	tier2Errs, tier2Warnings := validateGeometry(g)

	var result ValidationResult
	for _, e := range tier1 {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{
				NodeID:  e.NodeID,
				Message: e.Message,
			})
		} else {
			result.Errors = append(result.Errors, e)
		}
	}

	result.Errors = append(result.Errors, tier2Errs...)
	result.Warnings = append(result.Warnings, tier2Warnings...)

	return result
}

// validateDAG checks for cycles using DFS with 3-color marking.
// White (0) = unvisited, gray (1) = in current DFS path, black (2) = fully explored.
// If we encounter a gray node during traversal, we have found a cycle.
func validateDAG(g *SceneGraph) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int) // default zero = white
	var errs []ValidationError

	var visit func(id NodeID) bool // returns true if cycle found
	visit = func(id NodeID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("cycle detected: node %s is part of a cycle", id.Short()),
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray

		node, ok := g.Nodes[id]
		if !ok {
			// Dangling reference; handled by validateReferences.
			color[id] = black
			return false
		}

		for _, childID := range node.Children {
			if visit(childID) {
				return true
			}
		}

		color[id] = black
		return false
	}

	// Start DFS from every node to catch disconnected components.
	for _, node := range sortedNodes(g) {
		if color[node.ID] == white {
			if visit(node.ID) {
				// One cycle error is sufficient; stop early.
				break
			}
		}
	}

	return errs
}

// validateReferences checks that every child reference points to a node
// that actually exists in g.Nodes.
func validateReferences(g *SceneGraph) []ValidationError {
	var errs []ValidationError

	for _, node := range sortedNodes(g) {
		for _, childID := range node.Children {
			if _, ok := g.Nodes[childID]; !ok {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("child reference %s does not exist", childID.Short()),
					Severity: SeverityError,
				})
			}
		}
	}

	return errs
}

// validateNames checks that the NameIndex is injective (no two nodes share the
// same name) and that every entry in NameIndex points to an existing node.
func validateNames(g *SceneGraph) []ValidationError {
	var errs []ValidationError

	for _, name := range sortedKeys(g.NameIndex) {
		if id := g.NameIndex[name]; g.Nodes[id] == nil {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name index entry %q references non-existent node %s", name, id.Short()),
				Severity: SeverityError,
			})
		}
	}

	nameToNodes := make(map[string][]NodeID)
	for _, node := range sortedNodes(g) {
		if node.Name != "" {
			nameToNodes[node.Name] = append(nameToNodes[node.Name], node.ID)
		}
	}
	for _, name := range sortedKeys(nameToNodes) {
		if ids := nameToNodes[name]; len(ids) > 1 {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("duplicate name %q assigned to %d nodes", name, len(ids)),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateRoots checks that every root ID references an existing node and
// warns about orphan nodes (nodes unreachable from any root).
func validateRoots(g *SceneGraph) []ValidationError {
	var errs []ValidationError

	for _, rid := range g.Roots {
		if _, ok := g.Nodes[rid]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("root reference %s does not exist", rid.Short()),
				Severity: SeverityError,
			})
		}
	}

	if len(g.Nodes) == 0 {
		return errs
	}

	// BFS from all roots through Children edges.
	reachable := make(map[NodeID]bool)
	queue := make([]NodeID, 0, len(g.Roots))
	for _, rid := range g.Roots {
		if _, ok := g.Nodes[rid]; ok && !reachable[rid] {
			reachable[rid] = true
			queue = append(queue, rid)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Nodes[current]
		if node == nil {
			continue
		}
		for _, childID := range node.Children {
			if !reachable[childID] {
				reachable[childID] = true
				queue = append(queue, childID)
			}
		}
	}

	for _, node := range sortedNodes(g) {
		if !reachable[node.ID] {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  fmt.Sprintf("node %q is not reachable from any root (orphan)", node.DisplayName()),
				Severity: SeverityWarning,
			})
		}
	}

	return errs
}

// validateKinds checks that each node's payload matches its kind and that
// the child count fits the kind: primitives are leaves, transforms wrap
// exactly one child.
func validateKinds(g *SceneGraph) []ValidationError {
	var errs []ValidationError

	for _, node := range sortedNodes(g) {
		switch node.Kind {
		case NodePrimitive:
			if _, ok := node.Data.(ShapeData); !ok {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("primitive node has %T payload, want shape data", node.Data),
					Severity: SeverityError,
				})
			}
			if len(node.Children) > 0 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("primitive node has %d children, want none", len(node.Children)),
					Severity: SeverityError,
				})
			}
		case NodeTransform:
			if _, ok := node.Data.(TransformData); !ok {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("transform node has %T payload, want TransformData", node.Data),
					Severity: SeverityError,
				})
			}
			if len(node.Children) != 1 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("transform node has %d children, want exactly 1", len(node.Children)),
					Severity: SeverityError,
				})
			}
		case NodeGroup:
			if len(node.Children) == 0 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("scene %q is empty", node.DisplayName()),
					Severity: SeverityWarning,
				})
			}
		default:
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  fmt.Sprintf("unknown node kind %d", int(node.Kind)),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateTransforms checks that transform parameters are finite and that
// scales are non-zero. Negative scales mirror the child, which is legal but
// usually a typo, so they only warn.
func validateTransforms(g *SceneGraph) []ValidationError {
	var errs []ValidationError

	for _, node := range sortedNodes(g) {
		td, ok := node.Data.(TransformData)
		if !ok {
			continue
		}
		if td.Translation != nil && !finiteVec(*td.Translation) {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  fmt.Sprintf("translation %v is not finite", *td.Translation),
				Severity: SeverityError,
			})
		}
		if td.Rotation != nil && !finiteVec(*td.Rotation) {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  fmt.Sprintf("rotation %v is not finite", *td.Rotation),
				Severity: SeverityError,
			})
		}
		if td.Scale != nil {
			s := *td.Scale
			switch {
			case math.IsNaN(s) || math.IsInf(s, 0) || s == 0:
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("scale %g must be finite and non-zero", s),
					Severity: SeverityError,
				})
			case s < 0:
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("negative scale %g mirrors the shape", s),
					Severity: SeverityWarning,
				})
			}
		}
	}

	return errs
}

func finiteVec(v Vec3) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
