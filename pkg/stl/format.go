package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	headerSize   = 80
	preambleSize = headerSize + 4
	recordSize   = 50
	minFileSize  = 15
)

var asciiMagic = []byte("solid ")

// Format is the encoding of an STL stream
type Format int

const (
	FormatInvalid Format = iota
	FormatASCII
	FormatBinary
)

func (f Format) String() string {
	switch f {
	case FormatASCII:
		return "ascii"
	case FormatBinary:
		return "binary"
	default:
		return "invalid"
	}
}

// DetectFormat classifies the stream as ASCII STL, binary STL or invalid.
// The stream is left positioned at its start.
//
// Any stream starting with "solid " is reported as ASCII, even a binary file
// whose header happens to begin that way.
func DetectFormat(r io.ReadSeeker) (Format, error) {
	return detectFormat(r, false)
}

func detectFormat(r io.ReadSeeker, strictASCII bool) (Format, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return FormatInvalid, fmt.Errorf("failed to determine stream size: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return FormatInvalid, fmt.Errorf("failed to reset stream: %w", err)
	}

	if size < minFileSize {
		return FormatInvalid, nil
	}

	magic := make([]byte, len(asciiMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return FormatInvalid, fmt.Errorf("failed to read magic: %w", err)
	}
	if bytes.Equal(magic, asciiMagic) {
		ok := true
		if strictASCII {
			ok, err = facetFollows(r)
			if err != nil {
				return FormatInvalid, err
			}
		}
		if ok {
			return FormatASCII, rewind(r)
		}
	}

	if size < preambleSize {
		return FormatInvalid, rewind(r)
	}

	if _, err := r.Seek(headerSize, io.SeekStart); err != nil {
		return FormatInvalid, fmt.Errorf("failed to seek to triangle count: %w", err)
	}
	var count [4]byte
	if _, err := io.ReadFull(r, count[:]); err != nil {
		return FormatInvalid, fmt.Errorf("failed to read triangle count: %w", err)
	}
	ntris := int64(binary.LittleEndian.Uint32(count[:]))
	if size != preambleSize+recordSize*ntris {
		return FormatInvalid, rewind(r)
	}

	return FormatBinary, rewind(r)
}

// facetFollows skips the rest of the solid line and reports whether the
// next non-blank line starts with "facet"
func facetFollows(r io.Reader) (bool, error) {
	br := bufio.NewReader(r)
	if _, err := br.ReadSlice('\n'); err != nil {
		if err == io.EOF {
			return false, nil
		}
		if err != bufio.ErrBufferFull {
			return false, fmt.Errorf("failed to read solid line: %w", err)
		}
		// comment longer than the buffer; not a plausible ASCII file
		return false, nil
	}
	for {
		line, err := br.ReadSlice('\n')
		trimmed := bytes.TrimLeft(line, " \t\r\n")
		if len(trimmed) > 0 {
			return hasToken(trimmed, "facet"), nil
		}
		if err != nil {
			if err == io.EOF || err == bufio.ErrBufferFull {
				return false, nil
			}
			return false, fmt.Errorf("failed to read facet line: %w", err)
		}
	}
}

func rewind(r io.Seeker) error {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to reset stream: %w", err)
	}
	return nil
}
