package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// NodeID is a content-addressed node identifier: the SHA-256 of the path
// that created the node, e.g. "defshape/body" or "place/body/0".
type NodeID [32]byte

// ZeroID is the zero NodeID, used for graph-level findings.
var ZeroID NodeID

// NewNodeID hashes path into a NodeID. Equal paths give equal IDs.
func NewNodeID(path string) NodeID {
	return NodeID(sha256.Sum256([]byte(path)))
}

// IsZero reports whether id is the zero value.
func (id NodeID) IsZero() bool {
	return id == ZeroID
}

// String returns the full hex encoding.
func (id NodeID) String() string {
	return hex.EncodeToString(id[:])
}

// Short returns the first 8 hex characters, for messages and default names.
func (id NodeID) Short() string {
	return hex.EncodeToString(id[:4])
}

func (id NodeID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *NodeID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("node id: %w", err)
	}
	if len(raw) != len(id) {
		return fmt.Errorf("node id: want %d bytes, got %d", len(id), len(raw))
	}
	copy(id[:], raw)
	return nil
}

// Vec3 is a double precision vector used for transform parameters.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// IsZero reports whether all components are zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
