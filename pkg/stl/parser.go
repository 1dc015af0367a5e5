package stl

import (
	"fmt"
	"io"
	"os"
)

// Parse reads an STL file and returns the welded, indexed mesh.
// It automatically detects whether the file is ASCII or binary format.
func Parse(filename string, opts ...Option) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file, opts...)
}

// Read parses an STL stream and returns the welded, indexed mesh.
//
// Vertices are welded by exact bit equality of their float32 coordinates:
// 0.0 and -0.0 produce two vertices, and no tolerance is applied.
// Either the full mesh or an error is returned, never a partial mesh.
func Read(r io.ReadSeeker, opts ...Option) (*Mesh, error) {
	o := newOptions(opts)

	format, err := detectFormat(r, o.strictASCII)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatASCII:
		return readASCII(r, &o)
	case FormatBinary:
		return readBinary(r, &o)
	default:
		return nil, ErrInvalidFormat
	}
}
