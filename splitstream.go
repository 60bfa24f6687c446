// Package splitstream streams records out of delimited byte sources —
// in-memory buffers, seekable resources, and chunked streams — without
// materializing the full input in memory.
//
// The core is the spliterator: a streaming iterator that scans a growing
// buffer for delimiter occurrences, emits zero-copy views between them,
// compacts consumed regions, and handles end-of-input boundary cases. On
// top of it sit thin text, JSON, and CSV decode stages and a parallel chunk
// planner that partitions a seekable source into delimiter-aligned byte
// ranges for concurrent scanning.
//
// # Core Features
//
//   - Arbitrary delimiters of one or more bytes (LF, CRLF, custom framing)
//     searched with Boyer-Moore-Horspool
//   - Zero-copy record views with a documented view lifetime
//   - Identical semantics over in-memory, seekable, and streamed sources
//   - Drop/take/skip-empty windows and high-water-mark backpressure
//   - Quote-aware CSV column scanning with header canonicalization
//   - Delimiter-aligned chunk planning for parallel scans, with a compact
//     binary plan format
//   - Transparent zstd/S2/LZ4 source decompression
//
// # Basic Usage
//
// Splitting an in-memory buffer:
//
//	sp, err := splitstream.Split(data, "\n")
//	if err != nil {
//	    return err
//	}
//	for r, view := range sp.All() {
//	    fmt.Printf("record %d-%d: %s\n", r.Start, r.End, view)
//	}
//
// Streaming records from a file:
//
//	f, _ := os.Open("events.ndjson")
//	info, _ := f.Stat()
//	sp, err := splitstream.ReaderAt(split.SizeReaderAt(f, info.Size()), "\n")
//	if err != nil {
//	    return err
//	}
//	defer sp.Close()
//	for _, view := range sp.All(ctx) {
//	    process(view)
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the split,
// csv, and plan packages, simplifying the most common use cases. For
// advanced usage and fine-grained control, use those packages directly.
package splitstream

import (
	"github.com/arloliu/splitstream/csv"
	"github.com/arloliu/splitstream/pattern"
	"github.com/arloliu/splitstream/plan"
	"github.com/arloliu/splitstream/span"
	"github.com/arloliu/splitstream/split"
)

// Split creates a synchronous spliterator over in-memory data with the
// given delimiter string.
//
// Parameters:
//   - data: In-memory byte source, held read-only.
//   - delim: Delimiter; must be non-empty.
//   - opts: Optional configuration (split.WithDrop, split.WithTake,
//     split.WithSkipEmpty, split.WithPosition, split.WithQuote).
//
// Returns:
//   - *split.Splitter: The created spliterator.
//   - error: errs.ErrEmptyDelimiter or an option error.
//
// Example:
//
//	sp, err := splitstream.Split([]byte("a,b,c"), ",")
//	records, _ := sp.CollectStrings() // ["a" "b" "c"]
func Split(data []byte, delim string, opts ...split.Option) (*split.Splitter, error) {
	needle, err := pattern.NewString(delim)
	if err != nil {
		return nil, err
	}

	return split.New(data, needle, opts...)
}

// Lines creates a synchronous spliterator over in-memory data delimited by
// LF.
func Lines(data []byte, opts ...split.Option) (*split.Splitter, error) {
	return Split(data, "\n", opts...)
}

// Stream creates an asynchronous spliterator over a pull-based chunk
// stream.
//
// Parameters:
//   - src: Chunk stream; split.ReaderSource adapts any io.Reader and
//     compress.NewChunkSource adapts compressed readers.
//   - delim: Delimiter; must be non-empty.
//   - opts: Optional configuration.
//
// Returns:
//   - *split.AsyncSplitter: The created spliterator.
//   - error: Construction error.
func Stream(src split.ChunkSource, delim string, opts ...split.Option) (*split.AsyncSplitter, error) {
	needle, err := pattern.NewString(delim)
	if err != nil {
		return nil, err
	}

	return split.NewStream(src, needle, opts...)
}

// ReaderAt creates an asynchronous spliterator over a seekable resource
// with a known size.
//
// Parameters:
//   - src: Seekable resource; bytes.Reader and io.SectionReader qualify
//     directly, and split.SizeReaderAt wraps any io.ReaderAt.
//   - delim: Delimiter; must be non-empty.
//   - opts: Optional configuration.
//
// Returns:
//   - *split.AsyncSplitter: The created spliterator.
//   - error: Construction error.
func ReaderAt(src split.SizedReaderAt, delim string, opts ...split.Option) (*split.AsyncSplitter, error) {
	needle, err := pattern.NewString(delim)
	if err != nil {
		return nil, err
	}

	return split.NewReaderAt(src, needle, opts...)
}

// CSV creates a CSV projection over in-memory data.
//
// Example:
//
//	reader, err := splitstream.CSV(data, csv.WithMode(format.ModeObject))
//	for _, row := range reader.All() {
//	    fmt.Println(row.Object())
//	}
func CSV(data []byte, opts ...csv.Option) (*csv.Reader, error) {
	return csv.New(data, opts...)
}

// PlanChunks partitions a seekable source into at most n delimiter-aligned
// byte ranges for parallel scanning. Launch one spliterator per range with
// split.WithPosition-free io.SectionReader views, and concatenate outputs
// in plan order to recover the sequential emission.
//
// Example:
//
//	chunks, err := splitstream.PlanChunks(src, "\n", runtime.GOMAXPROCS(0))
//	for _, c := range chunks {
//	    section := io.NewSectionReader(file, int64(c.Start), int64(c.Len()))
//	    go scan(section)
//	}
func PlanChunks(src split.SizedReaderAt, delim string, n int) ([]span.Span, error) {
	needle, err := pattern.NewString(delim)
	if err != nil {
		return nil, err
	}

	return plan.Chunks(src, needle, n)
}
