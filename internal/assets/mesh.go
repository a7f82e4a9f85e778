package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidMesh is returned for mesh data that cannot be drawn.
var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is imported geometry: flat xyz positions and normals plus triangle faces.
// It is treated as immutable after import.
type Mesh struct {
	Vertices []float32  `json:"vertices"`
	Normals  []float32  `json:"normals"`
	Faces    [][]uint32 `json:"faces"`
}

// file mirrors the exported scene document; only the first mesh is used.
type file struct {
	Meshes []Mesh `json:"meshes"`
}

// ParseMesh decodes a mesh document and validates the first mesh.
func ParseMesh(data []byte) (*Mesh, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding mesh: %w", err)
	}
	if len(f.Meshes) == 0 {
		return nil, fmt.Errorf("%w: document has no meshes", ErrInvalidMesh)
	}

	mesh := &f.Meshes[0]
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// Validate checks that the mesh can be uploaded with 16-bit indices.
func (m *Mesh) Validate() error {
	if len(m.Vertices) == 0 || len(m.Vertices)%3 != 0 {
		return fmt.Errorf("%w: %d vertex floats is not a positive multiple of 3", ErrInvalidMesh, len(m.Vertices))
	}
	if len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("%w: %d normal floats for %d vertex floats", ErrInvalidMesh, len(m.Normals), len(m.Vertices))
	}
	if len(m.Faces) == 0 {
		return fmt.Errorf("%w: no faces", ErrInvalidMesh)
	}

	count := uint32(m.VertexCount())
	if count > math.MaxUint16+1 {
		return fmt.Errorf("%w: %d vertices exceed 16-bit indices", ErrInvalidMesh, count)
	}
	for i, face := range m.Faces {
		if len(face) != 3 {
			return fmt.Errorf("%w: face %d has %d indices, want 3", ErrInvalidMesh, i, len(face))
		}
		for _, idx := range face {
			if idx >= count {
				return fmt.Errorf("%w: face %d index %d out of range (%d vertices)", ErrInvalidMesh, i, idx, count)
			}
		}
	}
	return nil
}

// Indices flattens the faces into a 16-bit index buffer. Call Validate first.
func (m *Mesh) Indices() []uint16 {
	out := make([]uint16, 0, len(m.Faces)*3)
	for _, face := range m.Faces {
		out = append(out, uint16(face[0]), uint16(face[1]), uint16(face[2]))
	}
	return out
}

// Cube returns a unit cube centered at the origin with per-face normals.
func Cube() *Mesh {
	type side struct {
		normal [3]float32
		u, v   [3]float32
	}
	sides := []side{
		{[3]float32{1, 0, 0}, [3]float32{0, 0, -1}, [3]float32{0, 1, 0}},
		{[3]float32{-1, 0, 0}, [3]float32{0, 0, 1}, [3]float32{0, 1, 0}},
		{[3]float32{0, 1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, -1}},
		{[3]float32{0, -1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, 1}},
		{[3]float32{0, 0, 1}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		{[3]float32{0, 0, -1}, [3]float32{-1, 0, 0}, [3]float32{0, 1, 0}},
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	mesh := &Mesh{}
	for _, s := range sides {
		base := uint32(mesh.VertexCount())
		for _, c := range corners {
			for k := 0; k < 3; k++ {
				mesh.Vertices = append(mesh.Vertices, 0.5*(s.normal[k]+c[0]*s.u[k]+c[1]*s.v[k]))
				mesh.Normals = append(mesh.Normals, s.normal[k])
			}
		}
		mesh.Faces = append(mesh.Faces,
			[]uint32{base, base + 1, base + 2},
			[]uint32{base, base + 2, base + 3},
		)
	}
	return mesh
}
