package graph

import "github.com/xcanals/meshform/pkg/kernel"

// ---------------------------------------------------------------------------
// Paint
// ---------------------------------------------------------------------------

// Paint overrides the default colors of a shape. Solids of revolution use
// Top above half their height; flat shapes use Base only.
type Paint struct {
	Base kernel.Color `json:"base"`
	Top  kernel.Color `json:"top"`
}

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// ShapeData is implemented by the payload of every primitive node.
type ShapeData interface {
	NodeData

	// Shape names the builder, e.g. "cone".
	Shape() string

	// Check runs the kernel parameter validation for this shape.
	Check() error

	// VertexCount is the number of vertices the procedural builder emits.
	// Only meaningful once Check has passed.
	VertexCount() int

	// Resolution is the largest tessellation count among the parameters.
	Resolution() int
}

// ConeData is a cone standing on y = 0 with its apex on +Y.
type ConeData struct {
	Height   float64 `json:"height"`
	Radius   float64 `json:"radius"`
	Segments int     `json:"segments"` // base ring vertices
	Paint    *Paint  `json:"paint,omitempty"`
}

func (ConeData) nodeData()          {}
func (ConeData) Shape() string      { return "cone" }
func (d ConeData) Check() error     { return kernel.ValidateCone(d.Height, d.Radius, d.Segments) }
func (d ConeData) VertexCount() int { return d.Segments + 2 }
func (d ConeData) Resolution() int  { return d.Segments }

// CylinderData is a closed cylinder standing on y = 0.
type CylinderData struct {
	Height   float64 `json:"height"`
	Radius   float64 `json:"radius"`
	Segments int     `json:"segments"`
	Paint    *Paint  `json:"paint,omitempty"`
}

func (CylinderData) nodeData()          {}
func (CylinderData) Shape() string      { return "cylinder" }
func (d CylinderData) Check() error     { return kernel.ValidateCylinder(d.Height, d.Radius, d.Segments) }
func (d CylinderData) VertexCount() int { return 2*d.Segments + 2 }
func (d CylinderData) Resolution() int  { return d.Segments }

// PlaneData is a flat grid on the XZ plane facing +Y.
type PlaneData struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"` // extent along Z
	Cols   int     `json:"cols"`
	Rows   int     `json:"rows"`
	Paint  *Paint  `json:"paint,omitempty"`
}

func (PlaneData) nodeData()          {}
func (PlaneData) Shape() string      { return "plane" }
func (d PlaneData) Check() error     { return kernel.ValidatePlane(d.Width, d.Height, d.Cols, d.Rows) }
func (d PlaneData) VertexCount() int { return (d.Cols + 1) * (d.Rows + 1) }
func (d PlaneData) Resolution() int  { return max(d.Cols, d.Rows) }

// TerrainData is a heightfield grid. Vertices are raised by the named
// relief (kernel.DefaultRelief when empty) scaled by MaxHeight.
type TerrainData struct {
	Width     float64 `json:"width"`
	Depth     float64 `json:"depth"`
	XSlices   int     `json:"x_slices"`
	ZSlices   int     `json:"z_slices"`
	MaxHeight float64 `json:"max_height"`
	Relief    string  `json:"relief,omitempty"`
}

func (TerrainData) nodeData()     {}
func (TerrainData) Shape() string { return "terrain" }
func (d TerrainData) Check() error {
	if err := kernel.ValidateTerrain(d.Width, d.Depth, d.XSlices, d.ZSlices, d.MaxHeight); err != nil {
		return err
	}
	_, err := kernel.Relief(d.Relief)
	return err
}
func (d TerrainData) VertexCount() int { return (d.XSlices + 1) * (d.ZSlices + 1) }
func (d TerrainData) Resolution() int  { return max(d.XSlices, d.ZSlices) }

// SkyboxData is an inward-facing cube of half-extent Size.
type SkyboxData struct {
	Size  float64 `json:"size"`
	Paint *Paint  `json:"paint,omitempty"`
}

func (SkyboxData) nodeData()        {}
func (SkyboxData) Shape() string    { return "skybox" }
func (d SkyboxData) Check() error   { return kernel.ValidateSkybox(d.Size) }
func (SkyboxData) VertexCount() int { return 8 }
func (SkyboxData) Resolution() int  { return 1 }

// ---------------------------------------------------------------------------
// Transform
// ---------------------------------------------------------------------------

// TransformData places its single child. Created by the (place ...) form.
// The child is scaled, then rotated about X, Y and Z in that order, then
// translated.
type TransformData struct {
	Translation *Vec3    `json:"translation,omitempty"`
	Rotation    *Vec3    `json:"rotation,omitempty"` // Euler angles in degrees
	Scale       *float64 `json:"scale,omitempty"`    // uniform
}

func (TransformData) nodeData() {}

// ---------------------------------------------------------------------------
// Group
// ---------------------------------------------------------------------------

// GroupData represents a named scene. Created by the (scene ...) form.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}
