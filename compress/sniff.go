package compress

import (
	"bytes"

	"github.com/arloliu/splitstream/format"
)

// Frame magic numbers.
var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
	// Stream identifier chunks of the S2 and snappy framing formats; the S2
	// reader accepts both.
	s2Magic     = []byte("\xff\x06\x00\x00S2sTwO")
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
)

// SniffLen is the number of leading bytes Sniff needs to classify a source.
const SniffLen = 10

// Sniff detects the compression format from the leading bytes of a source.
// It returns format.CompressionNone when no known frame magic matches.
func Sniff(head []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(head, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(head, s2Magic), bytes.HasPrefix(head, snappyMagic):
		return format.CompressionS2
	default:
		return format.CompressionNone
	}
}
