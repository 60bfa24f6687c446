package compress

import "github.com/arloliu/splitstream/format"

// ZstdCodec provides Zstandard decompression for delimited sources.
//
// Zstandard is the recommended format for archived NDJSON and log streams:
// decompression runs at several GB/s and the frame format is self-
// describing, so Sniff can detect it from the first four bytes.
//
// Two implementations are selected at build time, mirroring the pure-Go and
// cgo trade-off: the default pure-Go decoder avoids cgo entirely, while the
// cgozstd build tag swaps in the libzstd-backed decoder for peak throughput.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a Zstandard codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// Type returns format.CompressionZstd.
func (ZstdCodec) Type() format.CompressionType {
	return format.CompressionZstd
}
