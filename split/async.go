package split

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/arloliu/splitstream/errs"
	"github.com/arloliu/splitstream/internal/buffer"
	"github.com/arloliu/splitstream/pattern"
	"github.com/arloliu/splitstream/span"
)

// AsyncSplitter is the spliterator over sources that are not fully resident
// in memory: a seekable resource read by positional chunks, or a pull-based
// chunk stream.
//
// The state machine is the synchronous one; the only blocking points are the
// source's read primitives. Fill interleaves reads with delimiter searches
// and stops issuing reads while the queued unread byte length is at or above
// the high-water mark, producing natural backpressure.
//
// Yielded spans carry source-relative coordinates, so the synchronous and
// asynchronous spliterators emit identical ranges for the same source and
// init. The backing views point into an internal buffer that is compacted
// between fills and are valid only until the next call. Each instance must
// be advanced by at most one goroutine at a time.
type AsyncSplitter struct {
	needle *pattern.Needle
	cfg    config
	buf    *buffer.GrowBuf
	queue  span.Queue

	// exactly one of stream / seekable is set
	stream   ChunkSource
	seekable SizedReaderAt

	size    int64 // seekable only
	readPos int64 // seekable only

	base       int // source offset of buffer position 0; grows with compaction
	scanPos    int // buffer-relative: just past the last found delimiter
	searched   int // search frontier; bytes before it hold no unseen match start
	yielded    int
	hasEmitted bool
	exhausted  bool // source fully read
	drained    bool
	done       bool
	closed     bool
	err        error // first non-EOF error observed by All
}

// NewStream creates an AsyncSplitter over a pull-based chunk stream.
//
// Parameters:
//   - src: Chunk stream; Next returning io.EOF ends the source.
//   - delim: Delimiter needle, at least one byte.
//   - opts: Optional configuration. WithPosition is ignored for streams.
//
// Returns:
//   - *AsyncSplitter: The created spliterator.
//   - error: errs.ErrNilSource, errs.ErrNilDelimiter, or an option error.
func NewStream(src ChunkSource, delim *pattern.Needle, opts ...Option) (*AsyncSplitter, error) {
	if src == nil {
		return nil, errs.ErrNilSource
	}

	a, err := newAsync(delim, opts)
	if err != nil {
		return nil, err
	}
	a.stream = src

	return a, nil
}

// NewReaderAt creates an AsyncSplitter over a seekable resource with a known
// size. Reads are issued at the read cursor with length
// min(highWaterMark, remaining).
//
// Parameters:
//   - src: Seekable resource (bytes.Reader, io.SectionReader, or a
//     SizeReaderAt-wrapped os.File).
//   - delim: Delimiter needle, at least one byte.
//   - opts: Optional configuration.
//
// Returns:
//   - *AsyncSplitter: The created spliterator.
//   - error: errs.ErrNilSource, errs.ErrNilDelimiter, or an option error.
func NewReaderAt(src SizedReaderAt, delim *pattern.Needle, opts ...Option) (*AsyncSplitter, error) {
	if src == nil {
		return nil, errs.ErrNilSource
	}

	a, err := newAsync(delim, opts)
	if err != nil {
		return nil, err
	}
	a.seekable = src
	a.size = src.Size()
	a.readPos = a.cfg.position
	a.base = int(a.cfg.position)

	if a.readPos >= a.size {
		// Nothing to read; a zero position over an empty source still
		// yields its single empty record.
		a.exhausted = true
		if a.readPos > 0 {
			a.done = true
		}
	}

	return a, nil
}

func newAsync(delim *pattern.Needle, opts []Option) (*AsyncSplitter, error) {
	if delim == nil {
		return nil, errs.ErrNilDelimiter
	}

	a := &AsyncSplitter{
		needle: delim,
		cfg:    newConfig(),
		buf:    buffer.Get(),
	}
	if err := applyOptions(&a.cfg, opts); err != nil {
		buffer.Put(a.buf)
		return nil, err
	}

	return a, nil
}

// Next advances the iterator and returns the next record.
//
// The returned Span holds source-relative coordinates; the byte slice is a
// view into the internal buffer and is invalidated by the next call. Next
// returns io.EOF once the iterator is exhausted, ctx.Err() on cancellation,
// and a wrapped read error when the source fails; any error is terminal.
func (a *AsyncSplitter) Next(ctx context.Context) (span.Span, []byte, error) {
	if a.closed {
		return span.Span{}, nil, errs.ErrClosed
	}

	for {
		if a.done || a.cfg.exhausted(a.yielded) {
			a.done = true
			return span.Span{}, nil, io.EOF
		}

		if a.queue.Len() == 0 {
			if err := a.fill(ctx); err != nil {
				a.done = true
				return span.Span{}, nil, err
			}
			if a.queue.Len() == 0 {
				a.drain()
			}
			if a.queue.Len() == 0 {
				a.done = true
				return span.Span{}, nil, io.EOF
			}
		}

		r, _ := a.queue.Pop()
		a.hasEmitted = true

		if r.Empty() && a.cfg.skipEmpty {
			continue
		}
		a.yielded++
		if a.yielded <= a.cfg.drop {
			continue
		}

		view := a.buf.Sub(r.Start, r.End)

		return span.Span{Start: a.base + r.Start, End: a.base + r.End}, view, nil
	}
}

// All returns an iterator over the remaining records. Iteration stops at
// exhaustion or on the first error; check Err afterwards. The iterator is
// terminal.
func (a *AsyncSplitter) All(ctx context.Context) iter.Seq2[span.Span, []byte] {
	return func(yield func(span.Span, []byte) bool) {
		for {
			r, view, err := a.Next(ctx)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					a.err = err
				}

				return
			}
			if !yield(r, view) {
				return
			}
		}
	}
}

// Err returns the first non-EOF error observed by All.
func (a *AsyncSplitter) Err() error {
	return a.err
}

// Reader binds a context to the spliterator, producing a RecordReader for
// the decode stages.
func (a *AsyncSplitter) Reader(ctx context.Context) RecordReader {
	return &asyncReader{a: a, ctx: ctx}
}

type asyncReader struct {
	a   *AsyncSplitter
	ctx context.Context
}

func (r *asyncReader) ReadRecord() ([]byte, error) {
	_, view, err := r.a.Next(r.ctx)
	return view, err
}

// Close terminates the iterator deterministically: the queue and buffer are
// released, and the source is closed when the spliterator owns it. Close is
// idempotent. Partial records are never emitted.
func (a *AsyncSplitter) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.done = true
	a.queue.Reset()
	buffer.Put(a.buf)
	a.buf = nil

	if !a.cfg.ownSource {
		return nil
	}
	var src any = a.stream
	if a.seekable != nil {
		src = a.seekable
	}
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

// fill compacts the consumed region, then interleaves reads with delimiter
// searches until the source is exhausted or the queue reaches the high-water
// mark.
func (a *AsyncSplitter) fill(ctx context.Context) error {
	a.compact()

	for !a.exhausted && a.queue.TotalBytes() < a.cfg.hwm {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := a.read(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			a.scan()
		}
	}

	return nil
}

// compact discards the consumed prefix. Only invoked with an empty queue so
// queued coordinates never need translation.
func (a *AsyncSplitter) compact() {
	if a.queue.Len() != 0 || a.scanPos == 0 {
		return
	}

	cut := a.scanPos
	if cut > a.buf.Written() {
		cut = a.buf.Written()
	}
	a.buf.Compact(cut, a.buf.Written())
	a.base += cut
	a.scanPos = 0
	a.searched -= cut
	if a.searched < 0 {
		a.searched = 0
	}
}

// read pulls one chunk into the buffer, returning the number of bytes added.
// Source exhaustion sets the exhausted flag and returns zero.
func (a *AsyncSplitter) read(ctx context.Context) (int, error) {
	if a.seekable != nil {
		remaining := a.size - a.readPos
		if remaining <= 0 {
			a.exhausted = true
			return 0, nil
		}

		n := a.cfg.hwm
		if int64(n) > remaining {
			n = int(remaining)
		}

		dst := a.buf.Extend(n)
		read, err := a.seekable.ReadAt(dst, a.readPos)
		if read < len(dst) {
			a.buf.Truncate(a.buf.Written() - (len(dst) - read))
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return read, fmt.Errorf("split: read %d bytes at %d: %w", n, a.readPos, err)
		}
		if read == 0 {
			if errors.Is(err, io.EOF) {
				a.exhausted = true
				return 0, nil
			}

			return 0, fmt.Errorf("split: read at %d: %w", a.readPos, errs.ErrShortRead)
		}

		a.readPos += int64(read)
		if a.readPos >= a.size {
			a.exhausted = true
		}

		return read, nil
	}

	chunk, err := a.stream.Next(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			a.exhausted = true
			return 0, nil
		}

		return 0, fmt.Errorf("split: next chunk: %w", err)
	}
	if len(chunk) == 0 {
		return 0, nil
	}
	a.buf.Set(chunk, a.buf.Written())

	return len(chunk), nil
}

// scan searches newly buffered bytes for delimiters, enqueueing completed
// record spans. The search window starts Len()-1 bytes before the previous
// frontier so a delimiter straddling two chunks is still found at its true
// position.
func (a *AsyncSplitter) scan() {
	data := a.buf.Bytes()
	written := len(data)

	lo := a.scanPos
	if a.searched > lo {
		lo = a.searched
	}
	for {
		p := a.needle.Search(data, lo, written)
		if p < 0 {
			break
		}
		a.queue.Push(span.Span{Start: a.scanPos, End: p})
		a.scanPos = p + a.needle.Len()
		lo = a.scanPos
	}

	a.searched = written - (a.needle.Len() - 1)
	if a.searched < a.scanPos {
		a.searched = a.scanPos
	}
}

// drain enqueues the final record once the source is exhausted and fill can
// no longer advance. Semantics match the synchronous drain with "source
// size" replaced by bytes observed so far.
func (a *AsyncSplitter) drain() {
	if a.drained || !a.exhausted {
		return
	}
	a.drained = true

	written := a.buf.Written()
	switch {
	case a.hasEmitted:
		a.queue.Push(span.Span{Start: a.scanPos, End: written})
	case a.scanPos < written:
		a.queue.Push(span.Span{Start: a.scanPos, End: written})
	case written == 0:
		a.queue.Push(span.Span{})
	}
}
