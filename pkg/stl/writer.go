package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/flywave/go3d/vec3"
)

// WriteBinary writes the mesh as binary STL. Normals are written as zero
// vectors and missing attributes as zero. The header is built from Comment;
// a leading "solid" keyword is dropped so the file is not taken for ASCII.
func WriteBinary(w io.Writer, m *Mesh) error {
	if uint64(len(m.Triangles)) > math.MaxUint32 {
		return fmt.Errorf("%w: %d triangles", ErrTooLarge, len(m.Triangles))
	}

	bw := bufio.NewWriter(w)

	var preamble [preambleSize]byte
	copy(preamble[:headerSize], binaryHeader(m.Comment))
	binary.LittleEndian.PutUint32(preamble[headerSize:], uint32(len(m.Triangles)))
	if _, err := bw.Write(preamble[:]); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	var rec [recordSize]byte
	for i := range m.Triangles {
		corners := m.Triangle(i)
		for v, c := range corners {
			encodeVertex(rec[12+12*v:], c)
		}
		var attr uint16
		if i < len(m.Attributes) {
			attr = m.Attributes[i]
		}
		binary.LittleEndian.PutUint16(rec[48:], attr)
		if _, err := bw.Write(rec[:]); err != nil {
			return fmt.Errorf("error writing triangle %d: %w", i, err)
		}
	}

	return bw.Flush()
}

// binaryHeader strips leading "solid " keywords from a comment
func binaryHeader(comment string) string {
	magic := string(asciiMagic)
	for strings.HasPrefix(comment, magic) {
		comment = strings.TrimLeft(comment[len(magic):], " \t")
	}
	return comment
}

func encodeVertex(buf []byte, v vec3.T) {
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(v[2]))
}

// WriteASCII writes the mesh as ASCII STL. Coordinates use the shortest
// representation that reads back to the same float32.
func WriteASCII(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	name := commentLine(m.Comment)
	fmt.Fprintf(bw, "solid %s\n", name)
	for i := range m.Triangles {
		bw.WriteString("  facet normal 0 0 0\n")
		bw.WriteString("    outer loop\n")
		for _, c := range m.Triangle(i) {
			fmt.Fprintf(bw, "      vertex %s %s %s\n", formatCoord(c[0]), formatCoord(c[1]), formatCoord(c[2]))
		}
		bw.WriteString("    endloop\n")
		bw.WriteString("  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	return bw.Flush()
}

// commentLine cuts a comment at its first line break
func commentLine(comment string) string {
	if i := strings.IndexAny(comment, "\r\n"); i >= 0 {
		return comment[:i]
	}
	return comment
}

func formatCoord(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
