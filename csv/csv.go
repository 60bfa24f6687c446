package csv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/arloliu/splitstream/errs"
	"github.com/arloliu/splitstream/format"
	"github.com/arloliu/splitstream/internal/hash"
	"github.com/arloliu/splitstream/internal/options"
	"github.com/arloliu/splitstream/pattern"
	"github.com/arloliu/splitstream/split"
)

// Entry is a single (key, value, index) triple emitted in entries mode.
type Entry struct {
	Key   string
	Value any
	Index int
}

// Row is one projected record.
//
// Fields are the decoded raw column strings; transformed values and the
// mode-shaped projection are derived on demand. Rows do not alias the
// spliterator's buffer and remain valid after the Reader advances.
type Row struct {
	mode   format.Mode
	header []string
	fields []string
	values []any
}

// Fields returns the decoded raw column strings.
func (r Row) Fields() []string {
	return r.fields
}

// Header returns the bound header names, nil when the Reader has no header.
func (r Row) Header() []string {
	return r.header
}

// Array returns the transformed values as a list aligned with Fields.
func (r Row) Array() []any {
	return r.values
}

// Object returns a mapping of header name to transformed value. Keys never
// leave the header set: columns beyond the header are dropped, and missing
// trailing columns are simply absent from the map.
func (r Row) Object() map[string]any {
	out := make(map[string]any, len(r.header))
	for i, key := range r.header {
		if i >= len(r.values) {
			break
		}
		out[key] = r.values[i]
	}

	return out
}

// Entries returns (key, value, index) triples for the columns covered by the
// header.
func (r Row) Entries() []Entry {
	n := len(r.header)
	if len(r.values) < n {
		n = len(r.values)
	}

	out := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Entry{Key: r.header[i], Value: r.values[i], Index: i})
	}

	return out
}

// Value returns the row shaped by the Reader's emission mode: []any for
// array mode, map[string]any for object mode, and []Entry for entries mode.
func (r Row) Value() any {
	switch r.mode {
	case format.ModeObject:
		return r.Object()
	case format.ModeEntries:
		return r.Entries()
	default:
		return r.Array()
	}
}

// Reader projects a row-level spliterator into rows of columns.
//
// Like the spliterators it wraps, a Reader is one-shot and single-threaded.
type Reader struct {
	rows   split.RecordReader
	cfg    config
	closer io.Closer

	colDelim *pattern.Needle
	header   []string
	bound    []Transform

	started  bool
	rowIndex int // data rows observed, counted after the header
	emitted  int
	err      error
}

// New creates a Reader over an in-memory byte source.
//
// Parameters:
//   - data: In-memory CSV bytes.
//   - opts: Optional configuration (delimiters, header, mode, transformers,
//     drop/take, normalization).
//
// Returns:
//   - *Reader: The created reader.
//   - error: Construction error for invalid delimiters, an invalid mode, or
//     a mode that requires a header when the header is disabled.
func New(data []byte, opts ...Option) (*Reader, error) {
	r, rowDelim, err := newReader(opts)
	if err != nil {
		return nil, err
	}

	splitOpts := []split.Option{}
	if r.cfg.skipEmpty {
		splitOpts = append(splitOpts, split.WithSkipEmpty())
	}
	rows, err := split.New(data, rowDelim, splitOpts...)
	if err != nil {
		return nil, err
	}
	r.rows = rows

	return r, nil
}

// NewReaderAt creates a Reader over a seekable resource. The context governs
// the positional reads issued while iterating.
func NewReaderAt(ctx context.Context, src split.SizedReaderAt, opts ...Option) (*Reader, error) {
	r, rowDelim, err := newReader(opts)
	if err != nil {
		return nil, err
	}

	sp, err := split.NewReaderAt(src, rowDelim, r.splitOptions()...)
	if err != nil {
		return nil, err
	}
	r.rows = sp.Reader(ctx)
	r.closer = sp

	return r, nil
}

// NewStream creates a Reader over a pull-based chunk stream. The context
// governs the chunk pulls issued while iterating.
func NewStream(ctx context.Context, src split.ChunkSource, opts ...Option) (*Reader, error) {
	r, rowDelim, err := newReader(opts)
	if err != nil {
		return nil, err
	}

	sp, err := split.NewStream(src, rowDelim, r.splitOptions()...)
	if err != nil {
		return nil, err
	}
	r.rows = sp.Reader(ctx)
	r.closer = sp

	return r, nil
}

// NewFrom creates a Reader over a caller-supplied row source. Row-level
// options (skip-empty, high-water mark) are the caller's responsibility.
func NewFrom(rows split.RecordReader, opts ...Option) (*Reader, error) {
	if rows == nil {
		return nil, errs.ErrNilSource
	}

	r, _, err := newReader(opts)
	if err != nil {
		return nil, err
	}
	r.rows = rows

	return r, nil
}

func newReader(opts []Option) (*Reader, *pattern.Needle, error) {
	r := &Reader{cfg: newConfig()}
	if err := options.Apply(&r.cfg, opts...); err != nil {
		return nil, nil, err
	}

	switch r.cfg.mode {
	case format.ModeArray:
	case format.ModeObject, format.ModeEntries:
		if !r.cfg.header {
			return nil, nil, errs.ErrHeaderRequired
		}
	default:
		return nil, nil, errs.ErrInvalidMode
	}
	if len(r.cfg.named) > 0 && !r.cfg.header {
		return nil, nil, errs.ErrHeaderRequired
	}

	rowDelim, err := pattern.NewString(r.cfg.rowDelim)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: row delimiter: %w", err)
	}
	r.colDelim, err = pattern.NewString(r.cfg.colDelim)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: column delimiter: %w", err)
	}

	return r, rowDelim, nil
}

func (r *Reader) splitOptions() []split.Option {
	opts := []split.Option{}
	if r.cfg.skipEmpty {
		opts = append(opts, split.WithSkipEmpty())
	}
	if r.cfg.hwm > 0 {
		opts = append(opts, split.WithHighWaterMark(r.cfg.hwm))
	}

	return opts
}

// Header returns the bound header names, pulling the header row on first
// use. It returns nil names when the header is disabled.
func (r *Reader) Header() ([]string, error) {
	if err := r.start(); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return r.header, nil
}

// Next returns the next projected row, or io.EOF at exhaustion. Decode and
// projection failures carry the data-row index and are terminal.
func (r *Reader) Next() (Row, error) {
	if r.err != nil {
		return Row{}, r.err
	}

	if err := r.start(); err != nil {
		return Row{}, r.fail(err)
	}

	for {
		if r.cfg.take >= 0 && r.emitted >= r.cfg.take {
			return Row{}, r.fail(io.EOF)
		}

		rec, err := r.rows.ReadRecord()
		if err != nil {
			return Row{}, r.fail(err)
		}

		r.rowIndex++
		if r.rowIndex <= r.cfg.drop {
			continue
		}

		fields, err := r.splitColumns(rec)
		if err != nil {
			return Row{}, r.fail(fmt.Errorf("csv: row %d: %w", r.rowIndex-1, err))
		}

		r.emitted++

		return Row{
			mode:   r.cfg.mode,
			header: r.header,
			fields: fields,
			values: r.transform(fields),
		}, nil
	}
}

// All returns an iterator of (index, Row) pairs over the remaining rows.
// Iteration stops at exhaustion or on the first error; check Err afterwards.
// The iterator is terminal.
func (r *Reader) All() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i := 0; ; i++ {
			row, err := r.Next()
			if err != nil {
				return
			}
			if !yield(i, row) {
				return
			}
		}
	}
}

// Err returns the first error observed, excluding io.EOF.
func (r *Reader) Err() error {
	if errors.Is(r.err, io.EOF) {
		return nil
	}

	return r.err
}

// Close releases the underlying spliterator for the streaming constructors.
// It is a no-op for in-memory and caller-supplied sources.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	return r.closer.Close()
}

// fail records a terminal error and returns it.
func (r *Reader) fail(err error) error {
	r.err = err
	return err
}

// start pulls the header row and binds transformers. Runs at most once.
func (r *Reader) start() error {
	if r.started {
		return nil
	}
	r.started = true

	if !r.cfg.header {
		r.bound = r.cfg.transforms
		return nil
	}

	rec, err := r.rows.ReadRecord()
	if err != nil {
		// An exhausted source has no header and no rows.
		return err
	}

	names, err := r.splitColumns(rec)
	if err != nil {
		return fmt.Errorf("csv: header row: %w", err)
	}
	if r.cfg.normalizeKeys() {
		names = NormalizeColumnNames(names)
	}
	r.header = names
	r.bindTransforms()

	return nil
}

// bindTransforms resolves the per-column transformer list: positional
// bindings win, then named bindings matched by header-name hash, then
// identity.
func (r *Reader) bindTransforms() {
	byName := make(map[uint64]Transform, len(r.cfg.named))
	for name, t := range r.cfg.named {
		byName[hash.ID(name)] = t
	}

	r.bound = make([]Transform, len(r.header))
	for i, name := range r.header {
		if i < len(r.cfg.transforms) && r.cfg.transforms[i] != nil {
			r.bound[i] = r.cfg.transforms[i]
			continue
		}
		if t, ok := byName[hash.ID(name)]; ok {
			r.bound[i] = t
		}
	}
}

// splitColumns splits one row into decoded column strings using a fresh
// quote-aware column spliterator.
func (r *Reader) splitColumns(rec []byte) ([]string, error) {
	sp, err := split.New(rec, r.colDelim, split.WithQuote(r.cfg.quote))
	if err != nil {
		return nil, err
	}

	return sp.CollectStrings()
}

// transform applies the bound transformers positionally, defaulting to
// identity.
func (r *Reader) transform(fields []string) []any {
	values := make([]any, len(fields))
	for i, f := range fields {
		if i < len(r.bound) && r.bound[i] != nil {
			values[i] = r.bound[i](f)
			continue
		}
		values[i] = f
	}

	return values
}
