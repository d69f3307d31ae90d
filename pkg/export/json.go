package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xcanals/meshform/pkg/kernel"
)

// jsonMesh is the on-disk shape of one mesh in the JSON dump.
type jsonMesh struct {
	Name        string    `json:"name"`
	Positions   []float32 `json:"positions"`
	Colors      []float32 `json:"colors"`
	UVs         []float32 `json:"uvs,omitempty"`
	Indices     []uint32  `json:"indices"`
	IndexFormat string    `json:"index_format"`
}

type jsonDocument struct {
	Meshes []jsonMesh `json:"meshes"`
}

// WriteJSON dumps the {positions, colors, indices} triple of every mesh.
func WriteJSON(w io.Writer, meshes []*kernel.Mesh) error {
	doc := jsonDocument{Meshes: make([]jsonMesh, 0, len(meshes))}
	for i, m := range meshes {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("export: mesh %d (%s): %w", i, m.Name, err)
		}
		doc.Meshes = append(doc.Meshes, jsonMesh{
			Name:        m.Name,
			Positions:   nonNil(m.Positions),
			Colors:      nonNil(m.Colors),
			UVs:         m.UVs,
			Indices:     nonNilIndices(m.Indices),
			IndexFormat: m.IndexFormat().String(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}

func nonNil(s []float32) []float32 {
	if s == nil {
		return []float32{}
	}
	return s
}

func nonNilIndices(s []uint32) []uint32 {
	if s == nil {
		return []uint32{}
	}
	return s
}
