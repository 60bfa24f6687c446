package compress

import (
	"io"

	"github.com/arloliu/splitstream/format"
)

// NoOpCodec passes bytes through without decompression.
//
// Useful when the compression type is configuration-driven and a pipeline
// should handle plain sources through the same code path.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec creates a pass-through codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Type returns format.CompressionNone.
func (NoOpCodec) Type() format.CompressionType {
	return format.CompressionNone
}

// NewReader returns r unchanged, adapted to io.ReadCloser. Closing the
// returned reader never closes r.
func (NoOpCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return nopReadCloser{r}, nil
}
