package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/splitstream/format"
	"github.com/arloliu/splitstream/split"
)

// NewChunkSource adapts a (possibly compressed) reader into a chunk source
// for the async spliterator. Chunks hold at most chunkSize decompressed
// bytes; chunkSize <= 0 selects split.DefaultHighWaterMark.
//
// Parameters:
//   - r: Reader of compressed bytes.
//   - compressionType: Compression format of r; format.CompressionNone for
//     plain sources.
//   - chunkSize: Maximum decompressed chunk size.
//
// Returns:
//   - split.ChunkSource: Chunk source yielding decompressed chunks. It
//     implements io.Closer; closing it releases decompressor resources and
//     closes r when r implements io.Closer.
//   - error: Unsupported compression type or decoder construction failure.
//
// Example:
//
//	f, _ := os.Open("events.ndjson.zst")
//	src, err := compress.NewChunkSource(f, format.CompressionZstd, 0)
//	if err != nil {
//	    return err
//	}
//	delim, _ := pattern.NewString("\n")
//	sp, err := split.NewStream(src, delim, split.WithOwnedSource())
func NewChunkSource(r io.Reader, compressionType format.CompressionType, chunkSize int) (split.ChunkSource, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	dec, err := codec.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("compress: %s reader: %w", compressionType, err)
	}

	return &decodedChunkSource{
		ChunkSource: split.ReaderSource(dec, chunkSize),
		dec:         dec,
		raw:         r,
	}, nil
}

type decodedChunkSource struct {
	split.ChunkSource
	dec io.ReadCloser
	raw io.Reader
}

func (s *decodedChunkSource) Close() error {
	err := s.dec.Close()
	if c, ok := s.raw.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}

	return err
}
