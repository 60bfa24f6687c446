// Package pattern implements delimiter byte sequences and fast substring
// search over byte ranges.
//
// A Needle is an immutable delimiter of one or more bytes together with a
// precomputed Boyer-Moore-Horspool skip table. Delimiters are almost always
// short (LF, CRLF, a comma), but the skip table pays off immediately for
// multi-byte sequences and costs nothing for single bytes.
//
// # Basic Usage
//
//	needle, err := pattern.NewString("\r\n")
//	if err != nil {
//	    return err
//	}
//	pos := needle.Search(data, 0, len(data)) // -1 when absent
package pattern

import (
	"bytes"
	"unicode/utf8"

	"github.com/arloliu/splitstream/errs"
)

// Needle is an immutable delimiter byte sequence with a 256-entry
// Boyer-Moore-Horspool skip table.
type Needle struct {
	bytes []byte
	skip  [256]int
}

// New creates a Needle from an arbitrary byte sequence.
// The sequence is copied; the caller may reuse delim afterwards.
//
// Returns errs.ErrEmptyDelimiter if delim is empty.
func New(delim []byte) (*Needle, error) {
	if len(delim) == 0 {
		return nil, errs.ErrEmptyDelimiter
	}

	n := &Needle{bytes: make([]byte, len(delim))}
	copy(n.bytes, delim)
	n.buildSkipTable()

	return n, nil
}

// NewString creates a Needle from the UTF-8 bytes of s.
func NewString(s string) (*Needle, error) {
	return New([]byte(s))
}

// NewRune creates a Needle from the UTF-8 encoding of a single code point.
func NewRune(r rune) (*Needle, error) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)

	return New(buf[:n])
}

// buildSkipTable precomputes the Horspool shift for every byte class.
// Bytes absent from the needle shift a full needle length; interior bytes
// shift by their distance from the last position, never less than one.
func (n *Needle) buildSkipTable() {
	m := len(n.bytes)
	for i := range n.skip {
		n.skip[i] = m
	}
	for i := 0; i < m-1; i++ {
		n.skip[n.bytes[i]] = m - 1 - i
	}
}

// Len returns the delimiter length in bytes.
func (n *Needle) Len() int {
	return len(n.bytes)
}

// Bytes returns the delimiter bytes as a non-owning view.
// Callers must not modify the returned slice.
func (n *Needle) Bytes() []byte {
	return n.bytes
}

// String returns the delimiter bytes as a string.
func (n *Needle) String() string {
	return string(n.bytes)
}

// Search returns the smallest p in [lo, hi-Len()] such that
// haystack[p:p+Len()] equals the needle, or -1 when no occurrence exists.
//
// The window [lo, hi) is clamped to the haystack bounds. Each candidate
// position is compared from the rightmost byte leftward; on mismatch the
// window advances by the skip value of the rightmost window byte.
func (n *Needle) Search(haystack []byte, lo, hi int) int {
	if lo < 0 {
		lo = 0
	}
	if hi > len(haystack) {
		hi = len(haystack)
	}

	m := len(n.bytes)
	if m == 1 {
		// Single-byte delimiters dominate in practice; defer to the
		// vectorized stdlib scan.
		if lo >= hi {
			return -1
		}
		if p := bytes.IndexByte(haystack[lo:hi], n.bytes[0]); p >= 0 {
			return lo + p
		}

		return -1
	}

	for p := lo; p+m <= hi; {
		i := m - 1
		for i >= 0 && haystack[p+i] == n.bytes[i] {
			i--
		}
		if i < 0 {
			return p
		}
		p += n.skip[haystack[p+m-1]]
	}

	return -1
}
