package stl

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flywave/go3d/vec3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInvalidFormat(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("tiny"),
		bytes.Repeat([]byte{0xff}, 200),
	}

	for _, input := range inputs {
		m, err := Read(bytes.NewReader(input))
		assert.Nil(t, m)
		assert.True(t, errors.Is(err, ErrInvalidFormat), "got %v", err)
	}
}

func TestReadStrictASCII(t *testing.T) {
	_, err := Read(strings.NewReader("solid but not really an stl file"), WithStrictASCII())
	assert.True(t, errors.Is(err, ErrInvalidFormat), "got %v", err)

	m, err := Read(strings.NewReader("solid but not really an stl file"))
	require.NoError(t, err)
	assert.Equal(t, 0, m.TriangleCount())
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	tris := gridTriangles(3)

	binPath := filepath.Join(dir, "grid_binary.stl")
	require.NoError(t, os.WriteFile(binPath, binarySTL("grid", tris, nil), 0o644))
	asciiPath := filepath.Join(dir, "grid_ascii.stl")
	require.NoError(t, os.WriteFile(asciiPath, []byte(asciiSTL("grid", tris)), 0o644))

	fromBinary, err := Parse(binPath)
	require.NoError(t, err)
	fromASCII, err := Parse(asciiPath)
	require.NoError(t, err)

	assert.Equal(t, FormatBinary, fromBinary.Format)
	assert.Equal(t, FormatASCII, fromASCII.Format)
	assert.Equal(t, fromBinary.Vertices, fromASCII.Vertices)
	assert.Equal(t, fromBinary.Triangles, fromASCII.Triangles)
	assert.Equal(t, 16, fromASCII.VertexCount())
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.stl"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMeshValidate(t *testing.T) {
	m := &Mesh{
		Vertices:  []vec3.T{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Triangles: [][3]uint32{{0, 1, 2}},
	}
	require.NoError(t, m.Validate())

	m.Triangles[0][2] = 3
	assert.Error(t, m.Validate())

	m.Triangles[0][2] = 2
	m.Vertices[2] = vec3.T{1, 0, 0}
	assert.Error(t, m.Validate())

	m.Vertices[2] = vec3.T{0, 1, 0}
	m.Attributes = []uint16{1, 2}
	assert.Error(t, m.Validate())
}

func TestMeshBoundingBox(t *testing.T) {
	m, err := Read(strings.NewReader(sharedEdgeASCII))
	require.NoError(t, err)

	bbox := m.BoundingBox()
	assert.Equal(t, 0.0, bbox.Min[0])
	assert.Equal(t, -1.0, bbox.Min[1])
	assert.Equal(t, 1.0, bbox.Max[0])
	assert.Equal(t, 1.0, bbox.Max[1])
	assert.Equal(t, 0.0, bbox.Max[2])
}
