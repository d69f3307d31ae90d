package main

import (
	"fmt"
	"log"

	"github.com/xcanals/meshform/pkg/config"
	"github.com/xcanals/meshform/pkg/engine"
	"github.com/xcanals/meshform/pkg/graph"
	"github.com/xcanals/meshform/pkg/kernel"
	"github.com/xcanals/meshform/pkg/kernel/procedural"
	"github.com/xcanals/meshform/pkg/kernel/sdfx"
	"github.com/xcanals/meshform/pkg/tessellate"
)

// App runs the scene pipeline: source, scene graph, validation, meshes.
type App struct {
	cfg    config.Config
	engine *engine.Engine
	kernel kernel.Kernel
}

// MeshData is the JSON-serializable form of one output mesh.
type MeshData struct {
	Name        string    `json:"name"`
	Positions   []float32 `json:"positions"`
	Colors      []float32 `json:"colors"`
	Indices     []uint32  `json:"indices"`
	IndexFormat string    `json:"indexFormat"`
	Color       string    `json:"color"` // swatch: colour of the first vertex
}

// EvalErrorData is a JSON-serializable finding.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of one evaluation.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// OK reports whether the evaluation produced no errors.
func (r EvalResult) OK() bool {
	return len(r.Errors) == 0
}

// NewApp creates an App with the default configuration.
func NewApp() *App {
	a, err := NewAppWithConfig(config.Default())
	if err != nil {
		panic(err) // the default config is always valid
	}
	return a
}

// NewAppWithConfig creates an App from cfg.
func NewAppWithConfig(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	k, err := newKernel(cfg)
	if err != nil {
		return nil, err
	}
	return &App{
		cfg: cfg,
		engine: engine.NewEngine(
			engine.WithTimeout(cfg.EvalTimeout.Duration),
			engine.WithDefaultSegments(cfg.Segments),
		),
		kernel: k,
	}, nil
}

func newKernel(cfg config.Config) (kernel.Kernel, error) {
	switch cfg.Kernel {
	case config.KernelProcedural:
		return procedural.New(), nil
	case config.KernelSDFX:
		return sdfx.New(cfg.SDFCells), nil
	default:
		return nil, fmt.Errorf("unknown kernel %q", cfg.Kernel)
	}
}

// Kernel returns the shape kernel in use.
func (a *App) Kernel() kernel.Kernel {
	return a.kernel
}

// Evaluate takes scene source and returns mesh data plus findings.
func (a *App) Evaluate(source string) EvalResult {
	_, result := a.Build(source)
	return result
}

// Build runs the pipeline and also returns the world-space meshes, which
// are nil whenever result carries errors.
func (a *App) Build(source string) ([]*kernel.Mesh, EvalResult) {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the source into a scene graph.
	g, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return nil, result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return nil, result
	}

	// A script that defines shapes but no scene previews every shape.
	if len(g.Roots) == 0 {
		for _, n := range g.Primitives() {
			g.AddRoot(n.ID)
		}
	}

	// Step 2: Validate structure and shape parameters.
	vr := graph.ValidateAll(g)
	for _, w := range vr.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: findingMessage(g, w.NodeID, w.Message)})
	}
	if !vr.OK() {
		for _, e := range vr.Errors {
			result.Errors = append(result.Errors, EvalErrorData{Message: findingMessage(g, e.NodeID, e.Message)})
		}
		return nil, result
	}

	// Step 3: Tessellate the scene graph into triangle meshes.
	meshes, err := tessellate.Tessellate(g, a.kernel)
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return nil, result
	}

	// Step 4: Convert kernel meshes to MeshData.
	for _, m := range meshes {
		result.Meshes = append(result.Meshes, toMeshData(m))
	}
	return meshes, result
}

func findingMessage(g *graph.SceneGraph, id graph.NodeID, msg string) string {
	if id.IsZero() {
		return msg
	}
	if n := g.Get(id); n != nil {
		return n.DisplayName() + ": " + msg
	}
	return msg
}

func toMeshData(m *kernel.Mesh) MeshData {
	d := MeshData{
		Name:        m.Name,
		Positions:   m.Positions,
		Colors:      m.Colors,
		Indices:     m.Indices,
		IndexFormat: m.IndexFormat().String(),
	}
	if !m.IsEmpty() {
		d.Color = m.Color(0).Hex()
	}
	return d
}
