//go:build !cgozstd

package compress

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// NewReader wraps r with a pure-Go Zstandard decoder.
func (ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r,
		zstd.WithDecoderConcurrency(1), // single-threaded for predictable memory use
		zstd.WithDecoderLowmem(false),
	)
	if err != nil {
		return nil, err
	}

	return dec.IOReadCloser(), nil
}
