package graph

import (
	"strings"
	"testing"

	"github.com/xcanals/meshform/pkg/kernel"
)

// ---------------------------------------------------------------------------
// Test helpers for ValidationResult
// ---------------------------------------------------------------------------

// resultHasError returns true if result.Errors contains at least one entry
// whose Message contains substr.
func resultHasError(r ValidationResult, substr string) bool {
	for _, e := range r.Errors {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// resultHasWarning returns true if result.Warnings contains at least one entry
// whose Message contains substr.
func resultHasWarning(r ValidationResult, substr string) bool {
	for _, w := range r.Warnings {
		if strings.Contains(w.Message, substr) {
			return true
		}
	}
	return false
}

// sceneWith returns a graph whose single scene root holds one primitive.
func sceneWith(name string, data ShapeData) *SceneGraph {
	g := New()
	shapeID := NewNodeID("defshape/" + name)
	sceneID := NewNodeID("scene/test")
	g.AddNode(&Node{ID: shapeID, Kind: NodePrimitive, Name: name, Data: data})
	g.AddNode(&Node{
		ID: sceneID, Kind: NodeGroup, Name: "test",
		Children: []NodeID{shapeID},
		Data:     GroupData{},
	})
	g.AddRoot(sceneID)
	return g
}

// ---------------------------------------------------------------------------
// Tier 2: Geometric validation tests
// ---------------------------------------------------------------------------

func TestValidateAll_ValidScene(t *testing.T) {
	result := ValidateAll(buildValidScene())
	if !result.OK() {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
}

func TestValidateAll_InvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		data ShapeData
		want string
	}{
		{"cylinder with two segments", CylinderData{Height: 2, Radius: 1, Segments: 2}, "cylinder numBaseVertices = 2"},
		{"cone with zero height", ConeData{Height: 0, Radius: 1, Segments: 12}, "cone height = 0"},
		{"plane with zero rows", PlaneData{Width: 8, Height: 6, Cols: 4, Rows: 0}, "plane rows = 0"},
		{"terrain with negative max height", TerrainData{Width: 8, Depth: 8, XSlices: 2, ZSlices: 2, MaxHeight: -1}, "terrain maxHeight"},
		{"skybox with negative size", SkyboxData{Size: -5}, "skybox size = -5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateAll(sceneWith("shape", tt.data))
			if !resultHasError(result, tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, result.Errors)
			}
			if !resultHasError(result, kernel.ErrInvalidParameter.Error()) {
				t.Errorf("error should mention %q", kernel.ErrInvalidParameter)
			}
		})
	}
}

func TestValidateAll_PaintOutOfRange(t *testing.T) {
	data := ConeData{Height: 1, Radius: 1, Segments: 8, Paint: &Paint{Base: kernel.Red, Top: kernel.Color{0, 2, 0}}}
	result := ValidateAll(sceneWith("hot", data))
	if !resultHasError(result, "outside 0..1") {
		t.Errorf("expected paint error, got %v", result.Errors)
	}
}

func TestValidateAll_IndexWidthWarning(t *testing.T) {
	tests := []struct {
		name string
		data ShapeData
		want string // empty means no warning
	}{
		{"cone with 254 segments fits bytes", ConeData{Height: 1, Radius: 1, Segments: 254}, ""},
		{"cone with 255 segments", ConeData{Height: 1, Radius: 1, Segments: 255}, "uint16 indices are required"},
		{"cylinder with 128 segments", CylinderData{Height: 1, Radius: 1, Segments: 128}, "258 vertices"},
		{"plane 15x15 fits bytes", PlaneData{Width: 1, Height: 1, Cols: 15, Rows: 15}, ""},
		{"terrain 300x300", TerrainData{Width: 1, Depth: 1, XSlices: 300, ZSlices: 300}, "uint32 indices are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateAll(sceneWith("shape", tt.data))
			if !result.OK() {
				t.Fatalf("unexpected errors: %v", result.Errors)
			}
			got := resultHasWarning(result, "8-bit indices")
			if tt.want == "" {
				if got {
					t.Errorf("unexpected index width warning: %v", result.Warnings)
				}
				return
			}
			if !resultHasWarning(result, tt.want) {
				t.Errorf("expected warning containing %q, got %v", tt.want, result.Warnings)
			}
		})
	}
}

func TestValidateAll_ErrorsInNameOrder(t *testing.T) {
	g := New()
	sceneID := NewNodeID("scene/test")
	var children []NodeID
	for _, name := range []string{"delta", "alpha", "charlie", "bravo", "echo"} {
		id := NewNodeID("defshape/" + name)
		g.AddNode(&Node{ID: id, Kind: NodePrimitive, Name: name, Data: ConeData{Height: -1, Radius: 1, Segments: 8}})
		children = append(children, id)
	}
	g.AddNode(&Node{ID: sceneID, Kind: NodeGroup, Name: "test", Children: children, Data: GroupData{}})
	g.AddRoot(sceneID)

	want := []NodeID{
		NewNodeID("defshape/alpha"),
		NewNodeID("defshape/bravo"),
		NewNodeID("defshape/charlie"),
		NewNodeID("defshape/delta"),
		NewNodeID("defshape/echo"),
	}
	// Map iteration order varies between runs; repeat to catch it.
	for run := 0; run < 20; run++ {
		result := ValidateAll(g)
		if len(result.Errors) != len(want) {
			t.Fatalf("expected %d errors, got %v", len(want), result.Errors)
		}
		for i, e := range result.Errors {
			if e.NodeID != want[i] {
				t.Fatalf("run %d: error %d is for %s, want %s", run, i, e.NodeID.Short(), want[i].Short())
			}
		}
	}
}

func TestValidateAll_IndexWidthSkipsInvalidShapes(t *testing.T) {
	result := ValidateAll(sceneWith("bad", CylinderData{Height: -1, Radius: 1, Segments: 500}))
	if result.OK() {
		t.Fatal("expected parameter error")
	}
	if resultHasWarning(result, "8-bit indices") {
		t.Error("invalid shapes should not get an index width warning")
	}
}

func TestValidateAll_HighResolution(t *testing.T) {
	result := ValidateAll(sceneWith("dense", ConeData{Height: 1, Radius: 1, Segments: HighResolution + 1}))
	if !resultHasWarning(result, "resolution 1025 exceeds 1024") {
		t.Errorf("expected resolution warning, got %v", result.Warnings)
	}

	result = ValidateAll(sceneWith("ok", ConeData{Height: 1, Radius: 1, Segments: HighResolution}))
	if resultHasWarning(result, "exceeds") {
		t.Errorf("resolution at the limit should not warn: %v", result.Warnings)
	}
}

func TestValidateAll_CoincidentPlacements(t *testing.T) {
	g := buildValidScene()
	dupID := NewNodeID("place/spire/1")
	g.AddNode(&Node{
		ID: dupID, Kind: NodeTransform,
		Children: []NodeID{NewNodeID("defshape/spire")},
		Data:     TransformData{Translation: &Vec3{-2, 0, 0}, Scale: ptr(1.0)},
	})
	world := g.Get(NewNodeID("scene/world"))
	world.Children = append(world.Children, dupID)

	result := ValidateAll(g)
	if !result.OK() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if !resultHasWarning(result, "meshes will overlap") {
		t.Errorf("expected overlap warning, got %v", result.Warnings)
	}

	// Moving the copy removes the warning.
	g.Get(dupID).Data = TransformData{Translation: &Vec3{-2, 0, 3}}
	result = ValidateAll(g)
	if resultHasWarning(result, "meshes will overlap") {
		t.Errorf("unexpected overlap warning: %v", result.Warnings)
	}
}

func TestValidateAll_StructuralWarningsAreSeparated(t *testing.T) {
	g := buildValidScene()
	g.AddNode(&Node{
		ID: NewNodeID("defshape/unused"), Kind: NodePrimitive, Name: "unused",
		Data: SkyboxData{Size: 50},
	})

	result := ValidateAll(g)
	if !result.OK() {
		t.Errorf("orphans should not be errors: %v", result.Errors)
	}
	if !resultHasWarning(result, "orphan") {
		t.Errorf("expected orphan warning in Warnings, got %v", result.Warnings)
	}
}
