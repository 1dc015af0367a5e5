package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/flywave/go3d/vec3"
)

// readBinary parses a binary STL stream positioned at its first byte.
//
// Layout, little endian: 80 byte header, uint32 triangle count, then per
// triangle a 12 byte normal (ignored), three 12 byte vertices and a uint16
// attribute.
func readBinary(reader io.Reader, o *options) (*Mesh, error) {
	r := bufio.NewReader(reader)

	var preamble [preambleSize]byte
	if _, err := io.ReadFull(r, preamble[:]); err != nil {
		return nil, fmt.Errorf("%w at header: %v", ErrShortRead, err)
	}

	ntris := binary.LittleEndian.Uint32(preamble[headerSize:])
	if ntris > maxTriangles {
		return nil, fmt.Errorf("%w: header declares %d triangles", ErrTooLarge, ntris)
	}

	b := newMeshBuilder(FormatBinary, ntris, o.tableCapacity, !o.strictBinaryTable)
	b.header = append([]byte(nil), preamble[:headerSize]...)
	b.comment = headerComment(b.header)

	var rec [recordSize]byte
	var corners [3]vec3.T
	for i := uint32(0); i < ntris; i++ {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			return nil, fmt.Errorf("%w at triangle %d/%d: %v", ErrShortRead, i, ntris, err)
		}

		// rec[0:12] is the normal
		for v := range corners {
			corners[v] = decodeVertex(rec[12+12*v:])
		}
		if err := b.addTriangle(&corners); err != nil {
			return nil, fmt.Errorf("triangle %d/%d: %w", i, ntris, err)
		}
		b.addAttribute(binary.LittleEndian.Uint16(rec[48:]))
	}

	return b.finish(), nil
}

func decodeVertex(buf []byte) vec3.T {
	return vec3.T{
		math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])),
		math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])),
	}
}

// headerComment returns the header text without NUL padding or trailing blanks
func headerComment(header []byte) string {
	if i := bytes.IndexByte(header, 0); i >= 0 {
		header = header[:i]
	}
	return string(bytes.TrimRight(header, " \r\n\t"))
}
