// Package compress provides transparent decompression for delimited byte
// sources.
//
// A Codec wraps an io.Reader of compressed bytes with a streaming
// decompressor, so spliterators can consume zstd-, S2-, or LZ4-compressed
// newline-delimited data without materializing the decompressed form. The
// package also sniffs compression formats from frame magic numbers and
// adapts compressed readers directly into chunk sources for the async
// spliterator.
package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/splitstream/errs"
	"github.com/arloliu/splitstream/format"
)

// Codec wraps readers of compressed data with streaming decompression.
//
// Implementations are stateless; each NewReader call creates an independent
// decompression stream, so a single Codec value is safe for concurrent use.
type Codec interface {
	// Type identifies the compression algorithm.
	Type() format.CompressionType

	// NewReader wraps r with a decompressing reader. Closing the returned
	// reader releases decompressor resources but does not close r.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}

// nopReadCloser adapts a plain io.Reader to io.ReadCloser.
type nopReadCloser struct {
	io.Reader
}

func (nopReadCloser) Close() error {
	return nil
}
