package stl

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/flywave/go3d/vec3"
)

// maxCommentLength is the longest comment kept from the solid line
const maxCommentLength = 79

// readASCII parses an ASCII STL stream.
//
// Only the facet, vertex and endfacet keywords drive the parser; every other
// line (outer loop, endloop, endsolid, blank lines) is skipped.
func readASCII(r io.Reader, o *options) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read ASCII STL: %w", err)
	}
	// NUL terminator so scans can stop without bounds checks
	buf := append(data, 0)

	b := newMeshBuilder(FormatASCII, countFacets(buf), o.tableCapacity, true)
	b.comment = solidComment(buf)

	var corners [3]vec3.T
	nverts := 0
	lines := newLineCursor(buf)
	for lines.next() {
		p := skipBlanks(buf, lines.start)

		switch {
		case hasToken(buf[p:], "facet"):
			nverts = 0

		case hasToken(buf[p:], "vertex"):
			if nverts == 3 {
				o.onWarning(Warning{
					Kind:    WarnExtraVertex,
					Line:    lines.line,
					Message: "facet has more than 3 vertices, ignoring extra vertex",
				})
				continue
			}
			p += len("vertex")
			for c := 0; c < 3; c++ {
				p = skipBlanks(buf, p)
				corners[nverts][c], p = parseFloat(buf, p)
			}
			nverts++

		case hasToken(buf[p:], "endfacet"):
			if nverts != 3 {
				o.onWarning(Warning{
					Kind:    WarnShortFacet,
					Line:    lines.line,
					Message: fmt.Sprintf("facet has %d vertices, dropping it", nverts),
				})
			} else if err := b.addTriangle(&corners); err != nil {
				return nil, fmt.Errorf("line %d: %w", lines.line, err)
			}
			nverts = 0
		}
	}

	return b.finish(), nil
}

// lineCursor walks the lines of a NUL terminated buffer
type lineCursor struct {
	buf        []byte
	start, end int
	line       int
}

func newLineCursor(buf []byte) *lineCursor {
	return &lineCursor{buf: buf[:len(buf)-1], end: -1}
}

// next advances to the next line; start and end delimit it without the newline
func (c *lineCursor) next() bool {
	c.start = c.end + 1
	if c.start >= len(c.buf) {
		return false
	}
	c.line++
	if i := bytes.IndexByte(c.buf[c.start:], '\n'); i >= 0 {
		c.end = c.start + i
	} else {
		c.end = len(c.buf)
	}
	return true
}

// countFacets counts lines starting with the facet keyword.
// The result only sizes the initial arrays.
func countFacets(buf []byte) uint32 {
	var n uint32
	lines := newLineCursor(buf)
	for lines.next() && n < maxTriangles {
		if hasToken(buf[skipBlanks(buf, lines.start):], "facet") {
			n++
		}
	}
	return n
}

// solidComment returns the name following "solid" on the first line
func solidComment(buf []byte) string {
	line := buf[:len(buf)-1]
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if !hasToken(line, "solid") {
		return ""
	}
	comment := bytes.TrimLeft(line[len("solid"):], " \t")
	comment = bytes.TrimRight(comment, "\r")
	if len(comment) > maxCommentLength {
		comment = comment[:maxCommentLength]
	}
	return string(comment)
}

func isBlank(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// skipBlanks skips spaces and tabs but never a newline
func skipBlanks(buf []byte, p int) int {
	for p < len(buf) && isBlank(buf[p]) {
		p++
	}
	return p
}

// hasToken reports whether b starts with the keyword tok as a whole word
func hasToken(b []byte, tok string) bool {
	if len(b) < len(tok) || string(b[:len(tok)]) != tok {
		return false
	}
	if len(b) == len(tok) {
		return true
	}
	c := b[len(tok)]
	return isBlank(c) || c == '\n' || c == 0
}

// exactPow10 holds the powers of ten that float64 represents exactly
var exactPow10 = [...]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10,
	1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20, 1e21, 1e22,
}

const (
	maxMantissaDigits = 19
	maxExponent       = 400
)

// parseFloat reads a decimal literal starting at buf[p]: optional sign,
// integer digits, optional fraction and optional exponent. It stops at the
// first byte that does not fit the grammar and returns the value read so far,
// so malformed text yields a partial value instead of an error.
// buf must end with a byte that is not part of a number.
func parseFloat(buf []byte, p int) (float32, int) {
	neg := false
	switch buf[p] {
	case '-':
		neg = true
		p++
	case '+':
		p++
	}

	var mantissa uint64
	digits := 0
	exp := 0
	start := p
	for ; isDigit(buf[p]); p++ {
		if digits < maxMantissaDigits {
			mantissa = mantissa*10 + uint64(buf[p]-'0')
			if mantissa != 0 {
				digits++
			}
		} else {
			exp++
		}
	}
	seen := p > start
	if buf[p] == '.' {
		p++
		for ; isDigit(buf[p]); p++ {
			seen = true
			if digits < maxMantissaDigits {
				mantissa = mantissa*10 + uint64(buf[p]-'0')
				if mantissa != 0 {
					digits++
				}
				exp--
			}
		}
	}
	if !seen {
		// nothing converted: no sign, no exponent
		return 0, p
	}
	if buf[p] == 'e' || buf[p] == 'E' {
		q := p + 1
		expNeg := false
		switch buf[q] {
		case '-':
			expNeg = true
			q++
		case '+':
			q++
		}
		if isDigit(buf[q]) {
			e := 0
			for ; isDigit(buf[q]); q++ {
				if e < maxExponent {
					e = e*10 + int(buf[q]-'0')
				}
			}
			if expNeg {
				e = -e
			}
			exp += e
			p = q
		}
	}

	v := scale(mantissa, exp)
	if neg {
		v = -v
	}
	return float32(v), p
}

// scale returns mantissa * 10^exp
func scale(mantissa uint64, exp int) float64 {
	if mantissa == 0 {
		return 0
	}
	m := float64(mantissa)
	// both operands exact, so a single rounding
	if mantissa < 1<<53 {
		switch {
		case exp == 0:
			return m
		case exp > 0 && exp < len(exactPow10):
			return m * exactPow10[exp]
		case exp < 0 && -exp < len(exactPow10):
			return m / exactPow10[-exp]
		}
	}
	if exp < 0 {
		return m / math.Pow10(-exp)
	}
	return m * math.Pow10(exp)
}
