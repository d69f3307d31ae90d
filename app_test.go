package main

import (
	"bytes"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/xcanals/meshform/pkg/config"
)

// TestE2EMeshCreationExample exercises the full pipeline: scene source →
// engine → graph → validation → tessellate → meshes.
func TestE2EMeshCreationExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/meshcreation.lisp")
	if err != nil {
		t.Fatalf("failed to read meshcreation.lisp: %v", err)
	}

	result := app.Evaluate(string(source))

	// No errors expected.
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}
	if len(result.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	// Expect 3 meshes in scene order.
	if len(result.Meshes) != 3 {
		t.Fatalf("expected 3 meshes, got %d", len(result.Meshes))
	}

	want := []struct {
		name     string
		vertices int
		indices  int
		color    string
	}{
		{"spire", 14, 72, "#ff0000"},
		{"tower", 26, 144, "#00ffff"},
		{"floor", 20, 72, "#ff00ff"},
	}
	for i, w := range want {
		m := result.Meshes[i]
		if m.Name != w.name {
			t.Errorf("mesh %d: name %q, want %q", i, m.Name, w.name)
		}
		if len(m.Positions) != 3*w.vertices || len(m.Colors) != 3*w.vertices {
			t.Errorf("%s: %d positions, %d colors, want %d each", w.name, len(m.Positions), len(m.Colors), 3*w.vertices)
		}
		if len(m.Indices) != w.indices {
			t.Errorf("%s: %d indices, want %d", w.name, len(m.Indices), w.indices)
		}
		if m.IndexFormat != "uint8" {
			t.Errorf("%s: index format %s, want uint8", w.name, m.IndexFormat)
		}
		if m.Color != w.color {
			t.Errorf("%s: color %s, want %s", w.name, m.Color, w.color)
		}
	}

	// The spire is placed at x = -2, so its base centre is there.
	if x := result.Meshes[0].Positions[0]; x != -2 {
		t.Errorf("spire base centre x = %g, want -2", x)
	}
}

func TestE2EFenceExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/fence.lisp")
	if err != nil {
		t.Fatalf("failed to read fence.lisp: %v", err)
	}

	meshes, result := app.Build(string(source))
	if !result.OK() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	// 5 posts, 1 cap, ground, sky.
	if len(meshes) != 8 {
		t.Fatalf("expected 8 meshes, got %d", len(meshes))
	}
	if len(result.Meshes) != len(meshes) {
		t.Errorf("MeshData count %d != mesh count %d", len(result.Meshes), len(meshes))
	}

	// 25 x 13 terrain vertices need 16-bit indices.
	ground := result.Meshes[6]
	if ground.Name != "ground" || ground.IndexFormat != "uint16" {
		t.Errorf("ground = %s (%s), want ground with uint16 indices", ground.Name, ground.IndexFormat)
	}
	warned := false
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, "8-bit indices") {
			warned = true
		}
	}
	if !warned {
		t.Errorf("expected an index width warning, got %v", result.Warnings)
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for empty source, got %d", len(result.Meshes))
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("(defshape \"test\"")

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
	}
}

// TestE2ESingleCone ensures a minimal single-shape source renders one mesh.
func TestE2ESingleCone(t *testing.T) {
	app := NewApp()
	source := `(scene "s" (place (defshape "spire" (cone :height 2 :radius 1 :segments 12))))`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error: %s", e.Message)
		}
		t.FailNow()
	}
	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}
	if result.Meshes[0].Name != "spire" {
		t.Errorf("expected name 'spire', got %q", result.Meshes[0].Name)
	}
}

func TestE2EInvalidParameterReported(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(scene "s" (defshape "bad" (cylinder :height 2 :radius 1 :segments 2)))`)

	if len(result.Errors) == 0 {
		t.Fatal("expected a validation error for two segments")
	}
	msg := result.Errors[0].Message
	if !strings.Contains(msg, "bad") || !strings.Contains(msg, "numBaseVertices") {
		t.Errorf("error %q should name the node and the parameter", msg)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes, got %d", len(result.Meshes))
	}
}

// peakY returns the largest vertex height of a mesh.
func peakY(m MeshData) float32 {
	top := float32(math.Inf(-1))
	for i := 1; i < len(m.Positions); i += 3 {
		top = max(top, m.Positions[i])
	}
	return top
}

func TestE2ETerrainMaxHeight(t *testing.T) {
	app := NewApp()

	tests := []struct {
		name   string
		relief string
		check  func(y float32) bool
	}{
		{"default relief", "", func(y float32) bool { return y > 0 && y <= 5 }},
		{"hills", ` :relief "hills"`, func(y float32) bool { return y > 0 && y <= 5 }},
		{"ramp", ` :relief "ramp"`, func(y float32) bool { return y == 5 }},
		{"ridge", ` :relief "ridge"`, func(y float32) bool { return y == 5 }},
		{"flat", ` :relief "flat"`, func(y float32) bool { return y == 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := `(defshape "t" (terrain :width 10 :depth 10 :x-slices 4 :z-slices 4 :max-height 5` + tt.relief + `))`
			result := app.Evaluate(src)
			if !result.OK() {
				t.Fatalf("unexpected errors: %v", result.Errors)
			}
			if len(result.Meshes) != 1 {
				t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
			}
			if y := peakY(result.Meshes[0]); !tt.check(y) {
				t.Errorf("max vertex y = %g", y)
			}
		})
	}

	result := app.Evaluate(`(defshape "t" (terrain :width 10 :depth 10 :x-slices 4 :z-slices 4 :relief "mountains"))`)
	if result.OK() || !strings.Contains(result.Errors[0].Message, "relief") {
		t.Errorf("expected an unknown relief error, got %v", result.Errors)
	}
}

func TestNewAppWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Kernel = config.KernelSDFX
	cfg.SDFCells = 24
	app, err := NewAppWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewAppWithConfig: %v", err)
	}
	if app.Kernel().Name() != "sdfx" {
		t.Errorf("kernel = %s, want sdfx", app.Kernel().Name())
	}

	result := app.Evaluate(`(defshape "c" (cone :height 2 :radius 1))`)
	if !result.OK() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Meshes) != 1 || len(result.Meshes[0].Indices) == 0 {
		t.Errorf("expected one non-empty sdfx mesh, got %+v", result.Meshes)
	}

	// The sdfx kernel cannot build grids.
	result = app.Evaluate(`(defshape "p" (plane :width 1 :height 1))`)
	if result.OK() || !strings.Contains(result.Errors[0].Message, "unsupported") {
		t.Errorf("expected an unsupported error, got %v", result.Errors)
	}

	cfg.Kernel = "manifold"
	if _, err := NewAppWithConfig(cfg); err == nil {
		t.Error("expected an error for an unknown kernel")
	}
}

func TestConfiguredSegments(t *testing.T) {
	cfg := config.Default()
	cfg.Segments = 6
	app, err := NewAppWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewAppWithConfig: %v", err)
	}
	result := app.Evaluate(`(defshape "c" (cone :height 1 :radius 1))`)
	if !result.OK() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if got := len(result.Meshes[0].Positions) / 3; got != 8 {
		t.Errorf("vertex count = %d, want 8", got)
	}
}

func TestReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := newReporter(&buf, termenv.WithProfile(termenv.Ascii))

	res := NewApp().Evaluate(`(defshape "c" (cone :height 1 :radius 1 :segments 4))`)
	rep.findings(res)
	rep.meshes(res)
	rep.summary(res)

	out := buf.String()
	for _, want := range []string{"mesh", "c ", "6 vertices", "8 triangles", "uint8 indices", "ok 1 meshes"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	bad := EvalResult{Errors: []EvalErrorData{{Line: 3, Message: "boom"}}}
	rep.findings(bad)
	rep.summary(bad)
	if out := buf.String(); !strings.Contains(out, "error line 3: boom") || !strings.Contains(out, "failed 1 errors") {
		t.Errorf("unexpected report:\n%s", out)
	}
}
