// Package export writes meshes to files other tools can load: glTF 2.0
// (text or binary) and a plain JSON dump of the mesh buffers.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/xcanals/meshform/pkg/kernel"
)

// Format names an output file format.
type Format string

const (
	FormatGLB  Format = "glb"
	FormatGLTF Format = "gltf"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for output paths or format names that do
// not map to a writer.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat accepts "glb", "gltf" or "json" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatGLB, FormatGLTF, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Write encodes meshes to w in the given format.
func Write(w io.Writer, meshes []*kernel.Mesh, f Format) error {
	switch f {
	case FormatGLB:
		return WriteGLTF(w, meshes, true)
	case FormatGLTF:
		return WriteGLTF(w, meshes, false)
	case FormatJSON:
		return WriteJSON(w, meshes)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Save writes meshes to path, choosing the format from its extension.
func Save(path string, meshes []*kernel.Mesh) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := Write(out, meshes, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// SaveGLTF writes a glTF file; binary when the extension is .glb.
func SaveGLTF(path string, meshes []*kernel.Mesh) error {
	f, err := FormatFromPath(path)
	if err != nil || f == FormatJSON {
		return fmt.Errorf("%w: %q is not a glTF path", ErrUnknownFormat, path)
	}
	return Save(path, meshes)
}

// Document builds a glTF document with one mesh and one node per input
// mesh, all attached to the default scene.
func Document(meshes []*kernel.Mesh) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "meshform"

	for i, m := range meshes {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("export: mesh %d (%s): %w", i, m.Name, err)
		}
		if m.IsEmpty() {
			continue
		}

		attrs := gltf.PrimitiveAttributes{
			gltf.POSITION: modeler.WritePosition(doc, triples(m.Positions)),
			gltf.COLOR_0:  modeler.WriteColor(doc, triples(m.Colors)),
		}
		if len(m.UVs) > 0 {
			attrs[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, pairs(m.UVs))
		}

		prim := &gltf.Primitive{
			Attributes: attrs,
			Indices:    gltf.Index(writeIndices(doc, m)),
		}
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name:       m.Name,
			Primitives: []*gltf.Primitive{prim},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: m.Name,
			Mesh: gltf.Index(len(doc.Meshes) - 1),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}
	return doc, nil
}

// WriteGLTF encodes meshes as glTF 2.0. Binary output is a single .glb
// stream; text output embeds the buffer as a data URI.
func WriteGLTF(w io.Writer, meshes []*kernel.Mesh, binary bool) error {
	doc, err := Document(meshes)
	if err != nil {
		return err
	}
	if !binary {
		for _, b := range doc.Buffers {
			b.EmbeddedResource()
		}
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = binary
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export: encode gltf: %w", err)
	}
	return nil
}

// writeIndices stores the indices with the narrowest component type.
// glTF reserves the largest value of each type, so a byte can only
// address 255 vertices. modeler.WriteIndices takes 16 and 32 bit data
// only; byte indices go through WriteAccessor.
func writeIndices(doc *gltf.Document, m *kernel.Mesh) int {
	switch n := m.VertexCount(); {
	case n < 1<<8:
		idx, _ := m.Indices8()
		return modeler.WriteAccessor(doc, gltf.TargetElementArrayBuffer, idx)
	case n < 1<<16:
		idx, _ := m.Indices16()
		return modeler.WriteIndices(doc, idx)
	default:
		return modeler.WriteIndices(doc, m.Indices)
	}
}

func triples(flat []float32) [][3]float32 {
	out := make([][3]float32, len(flat)/3)
	for i := range out {
		out[i] = [3]float32{flat[3*i], flat[3*i+1], flat[3*i+2]}
	}
	return out
}

func pairs(flat []float32) [][2]float32 {
	out := make([][2]float32, len(flat)/2)
	for i := range out {
		out[i] = [2]float32{flat[2*i], flat[2*i+1]}
	}
	return out
}
