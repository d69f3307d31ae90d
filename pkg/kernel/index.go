package kernel

// IndexFormat is the narrowest unsigned integer width able to address
// every vertex of a mesh.
type IndexFormat int

const (
	IndexUint8  IndexFormat = 8
	IndexUint16 IndexFormat = 16
	IndexUint32 IndexFormat = 32
)

func (f IndexFormat) String() string {
	switch f {
	case IndexUint8:
		return "uint8"
	case IndexUint16:
		return "uint16"
	case IndexUint32:
		return "uint32"
	default:
		return "unknown"
	}
}

// IndexFormatFor returns the narrowest format for a mesh with n vertices.
func IndexFormatFor(n int) IndexFormat {
	switch {
	case n <= 1<<8:
		return IndexUint8
	case n <= 1<<16:
		return IndexUint16
	default:
		return IndexUint32
	}
}

// IndexFormat returns the narrowest index width for this mesh.
func (m *Mesh) IndexFormat() IndexFormat {
	return IndexFormatFor(m.VertexCount())
}

// Indices8 returns the indices narrowed to bytes, or false when the mesh
// has more vertices than a byte can address.
func (m *Mesh) Indices8() ([]uint8, bool) {
	if m.IndexFormat() != IndexUint8 {
		return nil, false
	}
	out := make([]uint8, len(m.Indices))
	for i, idx := range m.Indices {
		out[i] = uint8(idx)
	}
	return out, true
}

// Indices16 returns the indices narrowed to 16 bits, or false when they
// do not fit.
func (m *Mesh) Indices16() ([]uint16, bool) {
	if m.IndexFormat() == IndexUint32 {
		return nil, false
	}
	out := make([]uint16, len(m.Indices))
	for i, idx := range m.Indices {
		out[i] = uint16(idx)
	}
	return out, true
}
