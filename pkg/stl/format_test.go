package stl

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/flywave/go3d/vec3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	oneTri := [][3]vec3.T{{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}

	truncated := binarySTL("", oneTri, nil)
	truncated = truncated[:len(truncated)-1]

	wrongCount := binarySTL("", oneTri, nil)
	binary.LittleEndian.PutUint32(wrongCount[headerSize:], 2)

	tests := []struct {
		name     string
		data     []byte
		expected Format
	}{
		{"empty", nil, FormatInvalid},
		{"shorter than 15 bytes", []byte("solid x\n"), FormatInvalid},
		{"ascii", []byte(asciiSTL("cube", oneTri)), FormatASCII},
		{"solid prefix only", []byte("solid but not really an stl file"), FormatASCII},
		{"solid without space", append([]byte("solidx"), make([]byte, 100)...), FormatInvalid},
		{"binary", binarySTL("exported", oneTri, nil), FormatBinary},
		{"binary without triangles", binarySTL("", nil, nil), FormatBinary},
		{"between 15 and 84 bytes", bytes.Repeat([]byte{1}, 50), FormatInvalid},
		{"truncated binary", truncated, FormatInvalid},
		{"count mismatch", wrongCount, FormatInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.data)
			format, err := DetectFormat(r)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)

			pos, err := r.Seek(0, io.SeekCurrent)
			require.NoError(t, err)
			assert.Equal(t, int64(0), pos, "stream must be rewound")
		})
	}
}

func TestDetectFormatStrictASCII(t *testing.T) {
	oneTri := [][3]vec3.T{{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}}

	format, err := detectFormat(bytes.NewReader([]byte(asciiSTL("part", oneTri))), true)
	require.NoError(t, err)
	assert.Equal(t, FormatASCII, format)

	format, err = detectFormat(bytes.NewReader([]byte("solid part\n\n   facet normal 0 0 1\n")), true)
	require.NoError(t, err)
	assert.Equal(t, FormatASCII, format)

	format, err = detectFormat(bytes.NewReader([]byte("solid but not really an stl file")), true)
	require.NoError(t, err)
	assert.Equal(t, FormatInvalid, format)

	// a binary file whose header starts with "solid " is still found by its size
	bin := binarySTL("solid exported by a careless tool", oneTri, nil)
	format, err = detectFormat(bytes.NewReader(bin), true)
	require.NoError(t, err)
	assert.Equal(t, FormatBinary, format)

	format, err = DetectFormat(bytes.NewReader(bin))
	require.NoError(t, err)
	assert.Equal(t, FormatASCII, format)
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "ascii", FormatASCII.String())
	assert.Equal(t, "binary", FormatBinary.String())
	assert.Equal(t, "invalid", FormatInvalid.String())
}
