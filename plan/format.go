package plan

import (
	"fmt"

	"github.com/arloliu/splitstream/endian"
	"github.com/arloliu/splitstream/errs"
	"github.com/arloliu/splitstream/internal/hash"
	"github.com/arloliu/splitstream/internal/options"
	"github.com/arloliu/splitstream/span"
)

// Binary plan layout: a fixed 32-byte header followed by one fixed 16-byte
// entry per chunk.
//
//	[0:2)   flag: magic number (bits 4-15) and endianness bit, little-endian
//	[2:4)   reserved
//	[4:8)   chunk count (uint32)
//	[8:16)  source size (uint64)
//	[16:24) xxHash64 fingerprint of the entry payload
//	[24:32) reserved
//
// The flag word is always little-endian so a decoder can read it before
// knowing the byte order of the remaining fields. Each entry stores the
// chunk start and end offsets as uint64.
const (
	HeaderSize = 32 // fixed header size in bytes
	EntrySize  = 16 // fixed entry size in bytes

	// Bit masks for the flag word.
	EndiannessMask = 0x0002 // endianness bit (bit 1): 0=little, 1=big
	MagicMask      = 0xFFF0 // magic number (bits 4-15)

	// MagicPlanV1 is the version 1 magic number for the chunk plan format.
	MagicPlanV1 = 0xEC10
)

// Plan is a decoded chunk plan.
type Plan struct {
	// SourceSize is the size of the source the plan was computed for.
	SourceSize int64

	// Chunks are the delimiter-aligned ranges in source order.
	Chunks []span.Span
}

// encodeConfig holds the encode-time parameters.
type encodeConfig struct {
	engine endian.EndianEngine
	flag   uint16
}

// EncodeOption configures Encode.
type EncodeOption = options.Option[*encodeConfig]

// WithLittleEndian encodes multi-byte fields in little-endian order.
// This is the default.
func WithLittleEndian() EncodeOption {
	return options.NoError(func(c *encodeConfig) {
		c.engine = endian.GetLittleEndianEngine()
		c.flag &^= EndiannessMask
	})
}

// WithBigEndian encodes multi-byte fields in big-endian order.
func WithBigEndian() EncodeOption {
	return options.NoError(func(c *encodeConfig) {
		c.engine = endian.GetBigEndianEngine()
		c.flag |= EndiannessMask
	})
}

// Encode serializes a chunk plan for distribution to parallel workers.
//
// Parameters:
//   - chunks: Delimiter-aligned ranges in source order, typically from
//     Chunks.
//   - sourceSize: Size of the source the plan was computed for.
//   - opts: Optional configuration (byte order).
//
// Returns:
//   - []byte: The encoded plan.
//   - error: errs.ErrInvalidPlanChunks when the ranges are not monotonic or
//     exceed sourceSize, or an option error.
func Encode(chunks []span.Span, sourceSize int64, opts ...EncodeOption) ([]byte, error) {
	cfg := encodeConfig{
		engine: endian.GetLittleEndianEngine(),
		flag:   MagicPlanV1,
	}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	if err := validateChunks(chunks, sourceSize); err != nil {
		return nil, err
	}

	payload := make([]byte, 0, len(chunks)*EntrySize)
	for _, c := range chunks {
		payload = cfg.engine.AppendUint64(payload, uint64(c.Start))
		payload = cfg.engine.AppendUint64(payload, uint64(c.End))
	}

	out := make([]byte, HeaderSize, HeaderSize+len(payload))
	endian.GetLittleEndianEngine().PutUint16(out[0:2], cfg.flag)
	cfg.engine.PutUint32(out[4:8], uint32(len(chunks))) //nolint:gosec
	cfg.engine.PutUint64(out[8:16], uint64(sourceSize)) //nolint:gosec
	cfg.engine.PutUint64(out[16:24], hash.Sum64(payload))

	return append(out, payload...), nil
}

// Decode parses an encoded chunk plan, verifying the magic number, the
// declared chunk count against the payload length, the payload fingerprint,
// and the range invariants.
//
// Parameters:
//   - data: Encoded plan bytes.
//
// Returns:
//   - *Plan: The decoded plan.
//   - error: errs.ErrInvalidPlanSize, errs.ErrInvalidPlanMagic,
//     errs.ErrPlanFingerprintMismatch, or errs.ErrInvalidPlanChunks.
func Decode(data []byte) (*Plan, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInvalidPlanSize, len(data))
	}

	flag := endian.GetLittleEndianEngine().Uint16(data[0:2])
	if flag&MagicMask != MagicPlanV1&MagicMask {
		return nil, errs.ErrInvalidPlanMagic
	}

	engine := endian.GetLittleEndianEngine()
	if flag&EndiannessMask != 0 {
		engine = endian.GetBigEndianEngine()
	}

	count := int(engine.Uint32(data[4:8]))
	sourceSize := int64(engine.Uint64(data[8:16])) //nolint:gosec
	fingerprint := engine.Uint64(data[16:24])

	payload := data[HeaderSize:]
	if len(payload) != count*EntrySize {
		return nil, fmt.Errorf("%w: %d chunks need %d payload bytes, have %d",
			errs.ErrInvalidPlanSize, count, count*EntrySize, len(payload))
	}
	if hash.Sum64(payload) != fingerprint {
		return nil, errs.ErrPlanFingerprintMismatch
	}

	chunks := make([]span.Span, count)
	for i := range chunks {
		off := i * EntrySize
		chunks[i] = span.Span{
			Start: int(engine.Uint64(payload[off : off+8])),    //nolint:gosec
			End:   int(engine.Uint64(payload[off+8 : off+16])), //nolint:gosec
		}
	}
	if err := validateChunks(chunks, sourceSize); err != nil {
		return nil, err
	}

	return &Plan{SourceSize: sourceSize, Chunks: chunks}, nil
}

// validateChunks checks that ranges are well-formed, monotonically
// increasing, and bounded by sourceSize.
func validateChunks(chunks []span.Span, sourceSize int64) error {
	prevEnd := 0
	for i, c := range chunks {
		if c.Start > c.End || int64(c.End) > sourceSize {
			return fmt.Errorf("%w: chunk %d (%d,%d)", errs.ErrInvalidPlanChunks, i, c.Start, c.End)
		}
		if i > 0 && c.Start < prevEnd {
			return fmt.Errorf("%w: chunk %d overlaps previous", errs.ErrInvalidPlanChunks, i)
		}
		prevEnd = c.End
	}

	return nil
}
