package compress

import (
	"io"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/splitstream/format"
)

// S2Codec provides S2 (Snappy-compatible) stream decompression.
//
// S2 trades compression ratio for speed; it suits hot pipelines where the
// producer compresses on the fly.
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec creates an S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Type returns format.CompressionS2.
func (S2Codec) Type() format.CompressionType {
	return format.CompressionS2
}

// NewReader wraps r with an S2 stream decoder. The decoder also reads
// plain Snappy streams.
func (S2Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return nopReadCloser{s2.NewReader(r)}, nil
}
