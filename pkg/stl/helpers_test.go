package stl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/flywave/go3d/vec3"
	"github.com/stretchr/testify/require"
)

// binarySTL encodes triangles in binary STL layout with a fixed normal
func binarySTL(header string, tris [][3]vec3.T, attrs []uint16) []byte {
	var buf bytes.Buffer
	var h [headerSize]byte
	copy(h[:], header)
	buf.Write(h[:])
	binary.Write(&buf, binary.LittleEndian, uint32(len(tris)))
	for i, tri := range tris {
		binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 1})
		for _, v := range tri {
			binary.Write(&buf, binary.LittleEndian, [3]float32(v))
		}
		var attr uint16
		if i < len(attrs) {
			attr = attrs[i]
		}
		binary.Write(&buf, binary.LittleEndian, attr)
	}
	return buf.Bytes()
}

// asciiSTL renders triangles as ASCII STL text
func asciiSTL(name string, tris [][3]vec3.T) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "solid %s\n", name)
	for _, tri := range tris {
		sb.WriteString("  facet normal 0 0 1\n    outer loop\n")
		for _, v := range tri {
			fmt.Fprintf(&sb, "      vertex %s %s %s\n", formatCoord(v[0]), formatCoord(v[1]), formatCoord(v[2]))
		}
		sb.WriteString("    endloop\n  endfacet\n")
	}
	fmt.Fprintf(&sb, "endsolid %s\n", name)
	return sb.String()
}

// gridTriangles returns a triangulated n x n grid of unit quads in the z=0 plane
func gridTriangles(n int) [][3]vec3.T {
	tris := make([][3]vec3.T, 0, 2*n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			p00 := vec3.T{float32(x), float32(y), 0}
			p10 := vec3.T{float32(x + 1), float32(y), 0}
			p01 := vec3.T{float32(x), float32(y + 1), 0}
			p11 := vec3.T{float32(x + 1), float32(y + 1), 0}
			tris = append(tris, [3]vec3.T{p00, p10, p11}, [3]vec3.T{p00, p11, p01})
		}
	}
	return tris
}

// requireSameGeometry checks that every triangle of m has the expected coordinates, bit for bit
func requireSameGeometry(t *testing.T, expected [][3]vec3.T, m *Mesh) {
	t.Helper()
	require.Equal(t, len(expected), m.TriangleCount())
	for i, tri := range expected {
		got := m.Triangle(i)
		for v := range tri {
			for c := 0; c < 3; c++ {
				require.Equal(t, math.Float32bits(tri[v][c]), math.Float32bits(got[v][c]),
					"triangle %d vertex %d coord %d", i, v, c)
			}
		}
	}
}
