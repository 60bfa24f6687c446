package split

import (
	"bytes"
	"io"
	"iter"
	"unicode/utf8"

	"github.com/arloliu/splitstream/errs"
	"github.com/arloliu/splitstream/pattern"
	"github.com/arloliu/splitstream/span"
)

// Splitter is the synchronous spliterator over an in-memory byte source.
//
// It yields zero-copy slices of the source between delimiter occurrences, in
// source order. The yielded slice aliases the source and stays valid for the
// source's lifetime; the Span coordinates are source-relative.
//
// A Splitter is one-shot and not restartable. It is strictly single-threaded:
// concurrent Next calls on the same instance are a usage error.
type Splitter struct {
	data   []byte
	needle *pattern.Needle
	cfg    config
	queue  span.Queue

	pos        int // cursor: just past the last found delimiter
	yielded    int
	hasEmitted bool
	drained    bool
	done       bool

	// quote parity bookkeeping for quote-aware scans
	quotes       int
	quoteScanned int
}

// New creates a Splitter over data using the given delimiter.
//
// Parameters:
//   - data: In-memory byte source; the Splitter holds it read-only.
//   - delim: Delimiter needle, at least one byte.
//   - opts: Optional configuration (WithDrop, WithTake, WithSkipEmpty,
//     WithPosition, WithHighWaterMark, WithQuote).
//
// Returns:
//   - *Splitter: The created spliterator.
//   - error: errs.ErrNilDelimiter or an option error.
func New(data []byte, delim *pattern.Needle, opts ...Option) (*Splitter, error) {
	if delim == nil {
		return nil, errs.ErrNilDelimiter
	}

	s := &Splitter{
		data:   data,
		needle: delim,
		cfg:    newConfig(),
	}
	if err := applyOptions(&s.cfg, opts); err != nil {
		return nil, err
	}

	if s.cfg.position > 0 {
		if s.cfg.position >= int64(len(data)) {
			s.done = true
		} else {
			s.pos = int(s.cfg.position)
		}
	}
	s.quoteScanned = s.pos

	return s, nil
}

// Next advances the iterator and returns the next record.
//
// The returned Span holds source-relative coordinates excluding the
// delimiter; the byte slice is a zero-copy view of the source. The final
// return value is false once the iterator is exhausted.
func (s *Splitter) Next() (span.Span, []byte, bool) {
	for {
		if s.done || s.cfg.exhausted(s.yielded) {
			s.done = true
			return span.Span{}, nil, false
		}

		if s.queue.Len() == 0 {
			s.fill()
			if s.queue.Len() == 0 {
				s.drain()
			}
			if s.queue.Len() == 0 {
				s.done = true
				return span.Span{}, nil, false
			}
		}

		r, _ := s.queue.Pop()
		s.hasEmitted = true

		if r.Empty() && s.cfg.skipEmpty {
			continue
		}
		s.yielded++
		if s.yielded <= s.cfg.drop {
			continue
		}

		return r, s.data[r.Start:r.End], true
	}
}

// ReadRecord implements RecordReader, returning io.EOF at exhaustion.
func (s *Splitter) ReadRecord() ([]byte, error) {
	_, view, ok := s.Next()
	if !ok {
		return nil, io.EOF
	}

	return view, nil
}

// All returns an iterator over the remaining records. The iterator is
// terminal: it consumes the Splitter.
func (s *Splitter) All() iter.Seq2[span.Span, []byte] {
	return func(yield func(span.Span, []byte) bool) {
		for {
			r, view, ok := s.Next()
			if !ok {
				return
			}
			if !yield(r, view) {
				return
			}
		}
	}
}

// Collect drains the iterator and returns all remaining spans.
func (s *Splitter) Collect() []span.Span {
	var out []span.Span
	for {
		r, _, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, r)
	}
}

// CollectStrings drains the iterator, decoding each record as UTF-8.
//
// The first record that is not valid UTF-8 aborts collection with a
// DecodeError carrying the record index.
func (s *Splitter) CollectStrings() ([]string, error) {
	var out []string
	for {
		_, view, ok := s.Next()
		if !ok {
			return out, nil
		}
		if !utf8.Valid(view) {
			return out, &DecodeError{Index: len(out), Err: errs.ErrInvalidUTF8}
		}
		out = append(out, string(view))
	}
}

// fill scans forward from the cursor, enqueueing one span per delimiter
// occurrence until the source or the high-water mark is exhausted.
func (s *Splitter) fill() {
	for s.pos < len(s.data) && s.queue.TotalBytes() < s.cfg.hwm {
		p := s.search(s.pos, len(s.data))
		if p < 0 {
			return
		}
		s.queue.Push(span.Span{Start: s.pos, End: p})
		s.pos = p + s.needle.Len()
	}
}

// drain enqueues the final record once no further delimiters exist.
// Runs at most once.
func (s *Splitter) drain() {
	if s.drained || s.done {
		return
	}
	s.drained = true

	size := len(s.data)
	switch {
	case s.hasEmitted:
		// Tail after the last delimiter; empty when the source ends with
		// one.
		s.queue.Push(span.Span{Start: s.pos, End: size})
	case s.pos < size:
		// No delimiter anywhere: the whole input is one record.
		s.queue.Push(span.Span{Start: s.pos, End: size})
	case size == 0:
		// Empty source yields a single empty record.
		s.queue.Push(span.Span{})
	}
}

func (s *Splitter) search(lo, hi int) int {
	if s.cfg.quote == nil {
		return s.needle.Search(s.data, lo, hi)
	}

	return s.searchQuoted(lo, hi)
}

// searchQuoted skips delimiter occurrences that fall between an odd and even
// quote occurrence. Quote parity is tracked incrementally across calls so
// each source byte is counted once.
func (s *Splitter) searchQuoted(lo, hi int) int {
	cur := lo
	for {
		p := s.needle.Search(s.data, cur, hi)
		if p < 0 {
			return -1
		}
		s.countQuotes(p)
		if s.quotes%2 == 0 {
			return p
		}
		cur = p + 1
	}
}

func (s *Splitter) countQuotes(upto int) {
	if upto <= s.quoteScanned {
		return
	}
	s.quotes += bytes.Count(s.data[s.quoteScanned:upto], s.cfg.quote.Bytes())
	s.quoteScanned = upto
}
