package stl

import "fmt"

// WarningKind classifies a tolerated anomaly in the input
type WarningKind int

const (
	// WarnShortFacet means a facet ended with fewer than three vertices and was dropped
	WarnShortFacet WarningKind = iota
	// WarnExtraVertex means a facet had more than three vertices; the extra ones were dropped
	WarnExtraVertex
)

func (k WarningKind) String() string {
	switch k {
	case WarnShortFacet:
		return "short facet"
	case WarnExtraVertex:
		return "extra vertex"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning describes a non-fatal problem found while parsing
type Warning struct {
	Kind    WarningKind
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Option configures a parse
type Option func(*options)

type options struct {
	onWarning         func(Warning)
	strictASCII       bool
	strictBinaryTable bool
	tableCapacity     uint32
}

func newOptions(opts []Option) options {
	o := options{
		onWarning: func(Warning) {},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithWarningHandler registers a callback for tolerated anomalies.
// The parser itself never prints anything.
func WithWarningHandler(fn func(Warning)) Option {
	return func(o *options) {
		if fn != nil {
			o.onWarning = fn
		}
	}
}

// WithStrictASCII only accepts ASCII input whose "solid" line is followed by a
// "facet" line. By default any input starting with "solid " is read as ASCII.
func WithStrictASCII() Option {
	return func(o *options) {
		o.strictASCII = true
	}
}

// WithStrictBinaryTable makes the binary loader fail with ErrTableFull instead
// of growing the vertex table.
func WithStrictBinaryTable() Option {
	return func(o *options) {
		o.strictBinaryTable = true
	}
}

// WithInitialTableCapacity overrides the initial vertex table capacity.
// The value is rounded up to a power of two.
func WithInitialTableCapacity(n uint32) Option {
	return func(o *options) {
		o.tableCapacity = n
	}
}
