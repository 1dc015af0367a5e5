package stl

import (
	"math"
	"math/bits"

	"github.com/flywave/go3d/vec3"
)

// vertexKey holds the raw bit patterns of a vertex's x, y and z coordinates.
// Keys compare bit for bit, so 0.0 and -0.0 are different vertices.
type vertexKey [3]uint32

// keyOf returns the key for a vertex
func keyOf(v vec3.T) vertexKey {
	return vertexKey{
		math.Float32bits(v[0]),
		math.Float32bits(v[1]),
		math.Float32bits(v[2]),
	}
}

// vertex converts the key back into coordinates
func (k vertexKey) vertex() vec3.T {
	return vec3.T{
		math.Float32frombits(k[0]),
		math.Float32frombits(k[1]),
		math.Float32frombits(k[2]),
	}
}

// hash returns the home slot hash of the key
func (k vertexKey) hash() uint32 {
	return mix(k[0], k[1], k[2])
}

// mix is the final mixing step of Bob Jenkins' lookup3, applied to three words.
// It is not cryptographic, it only spreads nearby coordinates across the table.
func mix(a, b, c uint32) uint32 {
	c ^= b
	c -= bits.RotateLeft32(b, 14)
	a ^= c
	a -= bits.RotateLeft32(c, 11)
	b ^= a
	b -= bits.RotateLeft32(a, 25)
	c ^= b
	c -= bits.RotateLeft32(b, 16)
	a ^= c
	a -= bits.RotateLeft32(c, 4)
	b ^= a
	b -= bits.RotateLeft32(a, 14)
	c ^= b
	c -= bits.RotateLeft32(b, 24)
	return c
}

func keysEqual(a, b vertexKey) bool {
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2]
}

// ceilPow2 returns the smallest power of two >= n. Powers of two map to themselves.
// n must be > 0.
func ceilPow2(n uint32) uint32 {
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	return n + 1
}
