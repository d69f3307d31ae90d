package export_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcanals/meshform/pkg/export"
	"github.com/xcanals/meshform/pkg/kernel"
	"github.com/xcanals/meshform/pkg/kernel/procedural"
)

func sampleMeshes(t *testing.T) []*kernel.Mesh {
	t.Helper()
	cone, err := procedural.Cone(2, 1, 12)
	require.NoError(t, err)
	cone.Name = "spire"
	plane, err := procedural.Plane(8, 6, 4, 3)
	require.NoError(t, err)
	plane.Name = "floor"
	return []*kernel.Mesh{cone, plane}
}

func decode(t *testing.T, data []byte) *gltf.Document {
	t.Helper()
	doc := new(gltf.Document)
	require.NoError(t, gltf.NewDecoder(bytes.NewReader(data)).Decode(doc))
	return doc
}

func TestGLBRoundTrip(t *testing.T) {
	meshes := sampleMeshes(t)

	var buf bytes.Buffer
	require.NoError(t, export.WriteGLTF(&buf, meshes, true))
	assert.Equal(t, "glTF", string(buf.Bytes()[:4]), "GLB magic")

	doc := decode(t, buf.Bytes())
	require.Len(t, doc.Meshes, 2)
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, []int{0, 1}, doc.Scenes[0].Nodes)

	for i, m := range meshes {
		gm := doc.Meshes[i]
		assert.Equal(t, m.Name, gm.Name)
		require.Len(t, gm.Primitives, 1)
		prim := gm.Primitives[0]

		pos, err := modeler.ReadPosition(doc, doc.Accessors[prim.Attributes[gltf.POSITION]], nil)
		require.NoError(t, err)
		require.Len(t, pos, m.VertexCount())
		for v, p := range pos {
			assert.Equal(t, [3]float32(m.Vertex(v)), p, "vertex %d", v)
		}

		require.NotNil(t, prim.Indices)
		acc := doc.Accessors[*prim.Indices]
		assert.Equal(t, gltf.ComponentUbyte, acc.ComponentType)
		require.NotNil(t, acc.BufferView)
		assert.Equal(t, gltf.TargetElementArrayBuffer, doc.BufferViews[*acc.BufferView].Target)
		idx, err := modeler.ReadIndices(doc, acc, nil)
		require.NoError(t, err)
		assert.Equal(t, m.Indices, idx)

		colorAcc, hasColor := prim.Attributes[gltf.COLOR_0]
		require.True(t, hasColor)
		assert.Equal(t, m.VertexCount(), doc.Accessors[colorAcc].Count)
	}
}

func TestGLTFTextEmbedsBuffer(t *testing.T) {
	meshes := sampleMeshes(t)

	var buf bytes.Buffer
	require.NoError(t, export.WriteGLTF(&buf, meshes, false))
	assert.Contains(t, buf.String(), "data:application/octet-stream;base64,")

	doc := decode(t, buf.Bytes())
	require.Len(t, doc.Meshes, 2)
	prim := doc.Meshes[1].Primitives[0]
	idx, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	require.NoError(t, err)
	assert.Equal(t, meshes[1].Indices, idx)
}

func TestIndexComponentWidth(t *testing.T) {
	tests := []struct {
		segments int
		want     gltf.ComponentType
	}{
		{253, gltf.ComponentUbyte},  // 255 vertices
		{254, gltf.ComponentUshort}, // 256 vertices, index 255 is reserved
		{1000, gltf.ComponentUshort},
	}
	for _, tt := range tests {
		cone, err := procedural.Cone(1, 1, tt.segments)
		require.NoError(t, err)

		doc, err := export.Document([]*kernel.Mesh{cone})
		require.NoError(t, err)
		acc := doc.Accessors[*doc.Meshes[0].Primitives[0].Indices]
		assert.Equal(t, tt.want, acc.ComponentType, "segments %d", tt.segments)
	}
}

func TestLargeMeshUsesUint32(t *testing.T) {
	terrain, err := procedural.Terrain(10, 10, 300, 300, 0)
	require.NoError(t, err)

	doc, err := export.Document([]*kernel.Mesh{terrain})
	require.NoError(t, err)
	prim := doc.Meshes[0].Primitives[0]
	assert.Equal(t, gltf.ComponentUint, doc.Accessors[*prim.Indices].ComponentType)
	_, hasUV := prim.Attributes[gltf.TEXCOORD_0]
	assert.True(t, hasUV)
}

func TestDocumentRejectsMalformedMesh(t *testing.T) {
	bad := &kernel.Mesh{
		Positions: []float32{0, 0, 0},
		Colors:    []float32{1, 1, 1},
		Indices:   []uint32{0, 1, 2},
	}
	_, err := export.Document([]*kernel.Mesh{bad})
	assert.ErrorIs(t, err, kernel.ErrMalformedMesh)
}

func TestDocumentSkipsEmptyMeshes(t *testing.T) {
	doc, err := export.Document([]*kernel.Mesh{{Name: "nothing"}})
	require.NoError(t, err)
	assert.Empty(t, doc.Meshes)
}

func TestWriteJSON(t *testing.T) {
	meshes := sampleMeshes(t)

	var buf bytes.Buffer
	require.NoError(t, export.WriteJSON(&buf, meshes))

	var got struct {
		Meshes []struct {
			Name        string    `json:"name"`
			Positions   []float32 `json:"positions"`
			Colors      []float32 `json:"colors"`
			Indices     []uint32  `json:"indices"`
			IndexFormat string    `json:"index_format"`
		} `json:"meshes"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Meshes, 2)
	assert.Equal(t, "spire", got.Meshes[0].Name)
	assert.Len(t, got.Meshes[0].Positions, 42)
	assert.Len(t, got.Meshes[0].Indices, 72)
	assert.Equal(t, "uint8", got.Meshes[0].IndexFormat)
	assert.Equal(t, meshes[1].Positions, got.Meshes[1].Positions)
	assert.Equal(t, meshes[1].Colors, got.Meshes[1].Colors)
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteJSON(&buf, nil))
	assert.JSONEq(t, `{"meshes": []}`, buf.String())
}

func TestFormats(t *testing.T) {
	for in, want := range map[string]export.Format{
		"glb":   export.FormatGLB,
		".GLTF": export.FormatGLTF,
		"json":  export.FormatJSON,
	} {
		got, err := export.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := export.ParseFormat("obj")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	f, err := export.FormatFromPath("out/scene.glb")
	require.NoError(t, err)
	assert.Equal(t, export.FormatGLB, f)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	meshes := sampleMeshes(t)

	for _, name := range []string{"scene.glb", "scene.gltf", "scene.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, export.Save(path, meshes), name)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), name)
	}

	assert.ErrorIs(t, export.Save(filepath.Join(dir, "scene.stl"), meshes), export.ErrUnknownFormat)
	assert.ErrorIs(t, export.SaveGLTF(filepath.Join(dir, "scene.json"), meshes), export.ErrUnknownFormat)

	data, err := os.ReadFile(filepath.Join(dir, "scene.glb"))
	require.NoError(t, err)
	assert.Len(t, decode(t, data).Meshes, 2)
}
