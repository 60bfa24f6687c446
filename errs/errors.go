// Package errs defines the sentinel errors shared across splitstream packages.
//
// All errors are created with errors.New and are safe to compare with
// errors.Is. Call sites wrap them with fmt.Errorf("...: %w", err) to attach
// context such as positions, lengths, and record indexes.
package errs

import "errors"

var (
	// ErrEmptyDelimiter is returned when a delimiter is constructed from zero bytes.
	ErrEmptyDelimiter = errors.New("delimiter cannot be empty")

	// ErrNilDelimiter is returned when a spliterator is constructed without a delimiter.
	ErrNilDelimiter = errors.New("delimiter cannot be nil")

	// ErrNilSource is returned when a spliterator is constructed without a source.
	ErrNilSource = errors.New("source cannot be nil")

	// ErrClosed is returned when a closed spliterator is advanced.
	ErrClosed = errors.New("spliterator is closed")

	// ErrShortRead is returned when a positional read returns no bytes without
	// reaching the end of the source.
	ErrShortRead = errors.New("short read did not advance source cursor")

	// ErrInvalidUTF8 is returned by the text stage when a record is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("record is not valid UTF-8")

	// ErrHeaderRequired is returned when an emission mode that needs column names
	// is combined with header disabled.
	ErrHeaderRequired = errors.New("emission mode requires a header row")

	// ErrInvalidMode is returned for an unknown emission mode.
	ErrInvalidMode = errors.New("invalid emission mode")

	// ErrInvalidCompression is returned for an unknown compression type.
	ErrInvalidCompression = errors.New("invalid compression type")

	// ErrInvalidPlanSize is returned when an encoded chunk plan is too short or
	// its payload length does not match the declared chunk count.
	ErrInvalidPlanSize = errors.New("invalid chunk plan size")

	// ErrInvalidPlanMagic is returned when an encoded chunk plan does not carry
	// the plan magic number.
	ErrInvalidPlanMagic = errors.New("invalid chunk plan magic number")

	// ErrPlanFingerprintMismatch is returned when the fingerprint stored in a
	// chunk plan header does not match its entry payload.
	ErrPlanFingerprintMismatch = errors.New("chunk plan fingerprint mismatch")

	// ErrInvalidPlanChunks is returned when decoded chunk ranges are not
	// monotonically increasing or exceed the declared source size.
	ErrInvalidPlanChunks = errors.New("invalid chunk plan ranges")
)
