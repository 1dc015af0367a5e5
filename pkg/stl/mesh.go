package stl

import (
	"fmt"

	dvec3 "github.com/flywave/go3d/float64/vec3"
	"github.com/flywave/go3d/vec3"
)

// Mesh is an indexed triangle mesh: welded vertices plus triangles referencing them
type Mesh struct {
	// Comment is the header text for binary input, cut at the first NUL with
	// trailing blanks removed, or the name after "solid" for ASCII input.
	Comment string
	// Header holds the raw 80 byte header of binary input. It is nil for ASCII input.
	Header  []byte
	// Format is the encoding the mesh was read from
	Format  Format

	Vertices  []vec3.T
	Triangles [][3]uint32
	// Attributes holds the "attribute byte count" of each triangle.
	// It is nil for ASCII input.
	Attributes []uint16
}

// VertexCount returns the number of distinct vertices
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Triangle returns the coordinates of the i-th triangle
func (m *Mesh) Triangle(i int) [3]vec3.T {
	tri := m.Triangles[i]
	return [3]vec3.T{m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]}
}

// BoundingBox calculates the bounding box of all vertices
func (m *Mesh) BoundingBox() dvec3.Box {
	bbox := dvec3.MinBox
	for _, v := range m.Vertices {
		bbox.Extend(&dvec3.T{float64(v[0]), float64(v[1]), float64(v[2])})
	}
	return bbox
}

// Validate checks the structural invariants of an indexed mesh
func (m *Mesh) Validate() error {
	nverts := uint32(len(m.Vertices))
	if len(m.Vertices) > 3*len(m.Triangles) {
		return fmt.Errorf("%d vertices for %d triangles", len(m.Vertices), len(m.Triangles))
	}
	if m.Attributes != nil && len(m.Attributes) != len(m.Triangles) {
		return fmt.Errorf("%d attributes for %d triangles", len(m.Attributes), len(m.Triangles))
	}
	for i, tri := range m.Triangles {
		for _, vi := range tri {
			if vi >= nverts {
				return fmt.Errorf("triangle %d references vertex %d of %d", i, vi, nverts)
			}
		}
	}

	seen := make(map[vertexKey]int, len(m.Vertices))
	for i, v := range m.Vertices {
		key := keyOf(v)
		if j, ok := seen[key]; ok {
			return fmt.Errorf("vertices %d and %d are identical", j, i)
		}
		seen[key] = i
	}
	return nil
}
