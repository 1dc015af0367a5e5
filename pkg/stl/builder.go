package stl

import (
	"fmt"

	"github.com/flywave/go3d/vec3"
)

const (
	// maxTableCapacity is the largest vertex table the loaders will grow to
	maxTableCapacity = 1 << 31
	// maxTriangles bounds the triangle count a binary header may declare
	maxTriangles = 1 << 28
)

// meshBuilder owns the growing arrays while a loader runs
type meshBuilder struct {
	format  Format
	comment string
	header  []byte

	verts []vec3.T
	tris  [][3]uint32
	attrs []uint16

	table *vertexTable
	// grow allows the table to be resized when it runs out of slots
	grow bool
}

// newMeshBuilder sizes the arrays and the vertex table for an expected triangle count
func newMeshBuilder(format Format, ntris uint32, tableCapacity uint32, grow bool) *meshBuilder {
	if tableCapacity == 0 {
		tableCapacity = 4 * ntris
	}
	b := &meshBuilder{
		format: format,
		verts:  make([]vec3.T, 0, 3*int(ntris)),
		tris:   make([][3]uint32, 0, ntris),
		table:  newVertexTable(tableCapacity),
		grow:   grow,
	}
	if format == FormatBinary {
		b.attrs = make([]uint16, 0, ntris)
	}
	return b
}

// addVertex welds v against the vertices seen so far and returns its index
func (b *meshBuilder) addVertex(v vec3.T) (uint32, error) {
	key := keyOf(v)
	for {
		vi, ok := b.table.findOrInsert(key, b.verts)
		if ok {
			if vi == uint32(len(b.verts)) {
				b.verts = append(b.verts, v)
				// keep a free slot so the load factor stays below one
				if b.grow && b.table.full() {
					if err := b.growTable(); err != nil {
						return 0, err
					}
				}
			}
			return vi, nil
		}
		if !b.grow {
			return 0, fmt.Errorf("%w: %d vertices in %d slots", ErrTableFull, b.table.len(), b.table.capacity())
		}
		if err := b.growTable(); err != nil {
			return 0, err
		}
	}
}

// growTable doubles the vertex table and rehashes every vertex
func (b *meshBuilder) growTable() error {
	capacity := b.table.capacity()
	if capacity >= maxTableCapacity {
		return fmt.Errorf("%w: vertex table at %d slots", ErrTooLarge, capacity)
	}
	return b.table.resize(2*capacity, b.verts)
}

// addTriangle welds the three corners and appends the triangle
func (b *meshBuilder) addTriangle(corners *[3]vec3.T) error {
	var tri [3]uint32
	for i := range corners {
		vi, err := b.addVertex(corners[i])
		if err != nil {
			return err
		}
		tri[i] = vi
	}
	b.tris = append(b.tris, tri)
	return nil
}

func (b *meshBuilder) addAttribute(attr uint16) {
	b.attrs = append(b.attrs, attr)
}

// finish trims the vertex array and hands the arrays over as a Mesh.
// The builder must not be used afterwards.
func (b *meshBuilder) finish() *Mesh {
	m := &Mesh{
		Comment:    b.comment,
		Header:     b.header,
		Format:     b.format,
		Vertices:   b.verts,
		Triangles:  b.tris,
		Attributes: b.attrs,
	}
	if cap(m.Vertices) != len(m.Vertices) {
		m.Vertices = append(make([]vec3.T, 0, len(b.verts)), b.verts...)
	}
	*b = meshBuilder{}
	return m
}
