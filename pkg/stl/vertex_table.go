package stl

import (
	"fmt"

	"github.com/flywave/go3d/vec3"
)

// minTableCapacity is the smallest table the loaders allocate
const minTableCapacity = 16

// slot is one entry of the vertex table
type slot struct {
	occupied bool
	index    uint32
}

// vertexTable is an open addressing hash set that maps vertex keys to dense
// vertex indices. The keys themselves are not stored: an occupied slot refers
// to the vertex array owned by the caller.
type vertexTable struct {
	slots []slot
	mask  uint32
	count uint32
}

// newVertexTable creates a table with at least the given capacity
func newVertexTable(capacity uint32) *vertexTable {
	if capacity < minTableCapacity {
		capacity = minTableCapacity
	}
	capacity = ceilPow2(capacity)
	return &vertexTable{
		slots: make([]slot, capacity),
		mask:  capacity - 1,
	}
}

// capacity returns the number of slots
func (t *vertexTable) capacity() uint32 {
	return uint32(len(t.slots))
}

// len returns the number of occupied slots
func (t *vertexTable) len() uint32 {
	return t.count
}

// findOrInsert looks up key among verts. If the key is new, len(verts) is
// recorded as its index and returned; the caller must then append the vertex.
// ok is false when every slot was probed without finding the key or a free slot.
func (t *vertexTable) findOrInsert(key vertexKey, verts []vec3.T) (index uint32, ok bool) {
	home := key.hash()
	for i := uint32(0); i < uint32(len(t.slots)); i++ {
		s := &t.slots[(home+i)&t.mask]
		if !s.occupied {
			s.occupied = true
			s.index = uint32(len(verts))
			t.count++
			return s.index, true
		}
		if keysEqual(key, keyOf(verts[s.index])) {
			return s.index, true
		}
	}
	return 0, false
}

// place stores an index known to be absent from the table
func (t *vertexTable) place(key vertexKey, index uint32) bool {
	home := key.hash()
	for i := uint32(0); i < uint32(len(t.slots)); i++ {
		s := &t.slots[(home+i)&t.mask]
		if !s.occupied {
			s.occupied = true
			s.index = index
			t.count++
			return true
		}
	}
	return false
}

// resize replaces the slots with a table of newCapacity slots and reinserts
// every occupant. Indices are preserved.
func (t *vertexTable) resize(newCapacity uint32, verts []vec3.T) error {
	newCapacity = ceilPow2(newCapacity)
	if newCapacity <= t.count {
		return fmt.Errorf("%w: capacity %d for %d vertices", ErrTableSizing, newCapacity, t.count)
	}

	old := t.slots
	t.slots = make([]slot, newCapacity)
	t.mask = newCapacity - 1
	t.count = 0

	for _, s := range old {
		if !s.occupied {
			continue
		}
		if !t.place(keyOf(verts[s.index]), s.index) {
			return fmt.Errorf("%w: rehash into %d slots", ErrTableSizing, newCapacity)
		}
	}
	return nil
}

// full reports whether the table has no free slot left
func (t *vertexTable) full() bool {
	return t.count >= uint32(len(t.slots))
}
