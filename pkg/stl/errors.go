package stl

import "errors"

var (
	// ErrInvalidFormat is returned when the input is neither ASCII STL nor
	// size-consistent binary STL
	ErrInvalidFormat = errors.New("invalid or unrecognized STL file format")

	// ErrShortRead is returned when the input ends inside a declared record
	ErrShortRead = errors.New("short read")

	// ErrTableFull is returned by the binary loader in strict mode when the
	// vertex table has no free slot left
	ErrTableFull = errors.New("vertex hash table full")

	// ErrTableSizing is returned when a rehash cannot place an existing vertex
	ErrTableSizing = errors.New("vertex hash table sizing error")

	// ErrTooLarge is returned when the mesh would need more memory than the
	// loader is willing to allocate
	ErrTooLarge = errors.New("mesh too large")
)
