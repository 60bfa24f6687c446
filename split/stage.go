package split

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"unicode/utf8"

	"github.com/arloliu/splitstream/errs"
)

// DecodeError reports a record that could not be decoded as UTF-8.
type DecodeError struct {
	// Index is the zero-based record index within the stage.
	Index int
	// Err is the underlying cause.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode record %d: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ParseError reports a record that could not be parsed as JSON.
type ParseError struct {
	// Index is the zero-based record index within the stage.
	Index int
	// Err is the underlying cause.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse record %d: %v", e.Index, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TextDecoder lifts a spliterator into a sequence of decoded strings.
//
// Each record is validated as UTF-8 and copied into a string. A record that
// fails validation surfaces a DecodeError carrying the record index; the
// caller decides whether to continue pulling or abort (All aborts).
type TextDecoder struct {
	src   RecordReader
	index int
	err   error
}

// NewTextDecoder creates a text stage over any RecordReader: a Splitter, an
// AsyncSplitter.Reader, or a caller-supplied source.
func NewTextDecoder(src RecordReader) *TextDecoder {
	return &TextDecoder{src: src}
}

// Next returns the next decoded record, io.EOF at exhaustion, or a
// DecodeError for an invalid record. Pulling may continue after a
// DecodeError; the failed record is consumed.
func (d *TextDecoder) Next() (string, error) {
	rec, err := d.src.ReadRecord()
	if err != nil {
		return "", err
	}

	idx := d.index
	d.index++
	if !utf8.Valid(rec) {
		return "", &DecodeError{Index: idx, Err: errs.ErrInvalidUTF8}
	}

	return string(rec), nil
}

// All returns an iterator of (index, string) pairs. Iteration aborts on the
// first failure; check Err afterwards. The iterator is terminal.
func (d *TextDecoder) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for {
			s, err := d.Next()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					d.err = err
				}

				return
			}
			if !yield(d.index-1, s) {
				return
			}
		}
	}
}

// Err returns the first non-EOF error observed by All.
func (d *TextDecoder) Err() error {
	return d.err
}

// JSONDecoder lifts a spliterator into a sequence of parsed JSON values,
// one document per record.
type JSONDecoder struct {
	src   RecordReader
	index int
	err   error
}

// NewJSONDecoder creates a JSON stage over any RecordReader.
func NewJSONDecoder(src RecordReader) *JSONDecoder {
	return &JSONDecoder{src: src}
}

// Next parses the next record into v, mirroring json.Unmarshal. It returns
// io.EOF at exhaustion and a ParseError carrying the record index when the
// record is not valid JSON; the failed record is consumed.
func (d *JSONDecoder) Next(v any) error {
	rec, err := d.src.ReadRecord()
	if err != nil {
		return err
	}

	idx := d.index
	d.index++
	if err := json.Unmarshal(rec, v); err != nil {
		return &ParseError{Index: idx, Err: err}
	}

	return nil
}

// NextValue parses the next record into an untyped value.
func (d *JSONDecoder) NextValue() (any, error) {
	var v any
	if err := d.Next(&v); err != nil {
		return nil, err
	}

	return v, nil
}

// All returns an iterator of (index, value) pairs. Iteration aborts on the
// first failure; check Err afterwards. The iterator is terminal.
func (d *JSONDecoder) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for {
			v, err := d.NextValue()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					d.err = err
				}

				return
			}
			if !yield(d.index-1, v) {
				return
			}
		}
	}
}

// Err returns the first non-EOF error observed by All.
func (d *JSONDecoder) Err() error {
	return d.err
}
