// Package plan partitions a seekable source into delimiter-aligned byte
// ranges for parallel scanning, and serializes such partitions into a
// compact binary form that can be handed to parallel workers.
//
// The returned ranges cover the source, are pairwise disjoint, and every
// interior boundary lies immediately after a delimiter occurrence, so no
// record is ever split across ranges. Concatenating the per-range
// spliterator outputs in plan order equals the single-spliterator output
// over the whole source.
package plan

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/splitstream/errs"
	"github.com/arloliu/splitstream/pattern"
	"github.com/arloliu/splitstream/span"
	"github.com/arloliu/splitstream/split"
)

// Chunks partitions src into at most n delimiter-aligned ranges.
//
// Target boundaries are spaced one chunk-size apart from the previous
// aligned boundary; each is snapped to the delimiter occurrence nearest the
// target, searching an expanding window and breaking distance ties toward
// the preceding delimiter. The delimiter bytes at a boundary belong to no
// range. A region with no delimiter at all is merged into the following
// chunk, so the result may hold fewer than n ranges; it always holds at
// least one.
//
// Parameters:
//   - src: Seekable resource of known size; reads are issued only inside
//     the boundary search windows.
//   - delim: Delimiter needle.
//   - n: Desired range count, clamped to a feasible value.
//
// Returns:
//   - []span.Span: Ranges covering [0, Size()) in source order.
//   - error: A wrapped read error when a window read fails.
func Chunks(src split.SizedReaderAt, delim *pattern.Needle, n int) ([]span.Span, error) {
	if src == nil {
		return nil, fmt.Errorf("plan: %w", errs.ErrNilSource)
	}
	if delim == nil {
		return nil, fmt.Errorf("plan: %w", errs.ErrNilDelimiter)
	}

	size := src.Size()
	if size <= 0 {
		return []span.Span{{}}, nil
	}

	d := int64(delim.Len())
	count := int64(n)
	if count < 1 {
		count = 1
	}
	if max := size / d; count > max {
		count = max
	}
	if count > size {
		count = size
	}
	if count <= 1 {
		return []span.Span{{Start: 0, End: int(size)}}, nil
	}

	step := size / count
	out := make([]span.Span, 0, count)
	prevEnd := int64(0)

	for i := int64(1); i < count; i++ {
		target := prevEnd + step
		if target >= size {
			break
		}

		match, err := nearestDelimiter(src, delim, target, prevEnd, size)
		if err != nil {
			return nil, err
		}
		if match < 0 {
			// No delimiter between prevEnd and the end of the source; the
			// remainder is a single chunk.
			break
		}

		out = append(out, span.Span{Start: int(prevEnd), End: int(match)})
		prevEnd = match + d
	}

	out = append(out, span.Span{Start: int(prevEnd), End: int(size)})

	return out, nil
}

// nearestDelimiter locates the delimiter occurrence closest to target within
// [lo, hi), starting from a window of twice the delimiter length around the
// target and doubling it until a match is found or the window covers the
// whole span. Equidistant matches resolve to the preceding occurrence.
// Returns -1 when [lo, hi) contains no delimiter.
func nearestDelimiter(src split.SizedReaderAt, delim *pattern.Needle, target, lo, hi int64) (int64, error) {
	d := int64(delim.Len())
	radius := 2 * d

	for {
		wlo := target - radius
		if wlo < lo {
			wlo = lo
		}
		whi := target + radius + d
		if whi > hi {
			whi = hi
		}

		match, err := nearestInWindow(src, delim, target, wlo, whi)
		if err != nil {
			return 0, err
		}
		if match >= 0 {
			return match, nil
		}
		if wlo == lo && whi == hi {
			return -1, nil
		}
		radius *= 2
	}
}

// nearestInWindow reads [wlo, whi) and returns the match start closest to
// target, or -1.
func nearestInWindow(src split.SizedReaderAt, delim *pattern.Needle, target, wlo, whi int64) (int64, error) {
	if whi <= wlo {
		return -1, nil
	}

	window := make([]byte, whi-wlo)
	n, err := src.ReadAt(window, wlo)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("plan: read window [%d,%d): %w", wlo, whi, err)
	}
	window = window[:n]

	best := int64(-1)
	bestDist := int64(-1)
	pos := 0
	for {
		p := delim.Search(window, pos, len(window))
		if p < 0 {
			break
		}

		abs := wlo + int64(p)
		dist := target - abs
		if dist < 0 {
			dist = -dist
		}
		// Strict improvement keeps the earlier occurrence on ties.
		if best < 0 || dist < bestDist {
			best = abs
			bestDist = dist
		}
		pos = p + 1
	}

	return best, nil
}
