package stl

import (
	"math"
	"testing"

	"github.com/flywave/go3d/vec3"
	"github.com/stretchr/testify/assert"
)

func TestMix(t *testing.T) {
	tests := []struct {
		a, b, c  uint32
		expected uint32
	}{
		{0, 0, 0, 0},
		{1, 2, 3, 0x36ff91db},
		{0xdeadbeef, 0xcafebabe, 0x12345678, 0x9eec033e},
		{0x3f800000, 0, 0, 0x4d2f3964},
		{0x80000000, 0, 0, 0xb4a2e30b},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, mix(tt.a, tt.b, tt.c), "mix(%#x, %#x, %#x)", tt.a, tt.b, tt.c)
	}
}

func TestCeilPow2(t *testing.T) {
	tests := map[uint32]uint32{
		1:       1,
		2:       2,
		3:       4,
		4:       4,
		5:       8,
		1000:    1024,
		1024:    1024,
		1025:    2048,
		1 << 30: 1 << 30,
	}

	for n, expected := range tests {
		assert.Equal(t, expected, ceilPow2(n), "ceilPow2(%d)", n)
	}
}

func TestVertexKeyIsBitPattern(t *testing.T) {
	pos := keyOf(vec3.T{0, 1, 2})
	neg := keyOf(vec3.T{float32(math.Copysign(0, -1)), 1, 2})

	assert.False(t, keysEqual(pos, neg), "-0.0 and 0.0 must be different keys")
	assert.True(t, keysEqual(pos, keyOf(vec3.T{0, 1, 2})))
	assert.Equal(t, uint32(0x80000000), neg[0])
	assert.Equal(t, vec3.T{0, 1, 2}, pos.vertex())
	assert.Equal(t, mix(pos[0], pos[1], pos[2]), pos.hash())
}
