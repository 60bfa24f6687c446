// Package split implements spliterators: stateful iterators that repeatedly
// split a byte source at delimiter boundaries and yield zero-copy views of
// the records between them.
//
// Two spliterators share one state machine:
//
//   - Splitter scans an in-memory byte slice.
//   - AsyncSplitter scans a seekable resource read by positional chunks, or a
//     pull-based chunk stream, reading ahead until the queued records reach
//     the high-water mark or the source ends.
//
// Both honor the same record semantics: ranges are half-open, exclude the
// delimiter, preserve source order, and reconstruct the source exactly when
// re-joined with one delimiter between adjacent records. Drop, take, and
// skip-empty limits apply identically to both.
//
// # View lifetime
//
// Yielded byte slices are views into the spliterator's internal storage. A
// view is valid only until the next call that advances the iterator; callers
// that retain record bytes must copy them. This is the documented contract
// rather than a copy-on-emit design, keeping the hot path allocation-free.
//
// # Stages
//
// TextDecoder and JSONDecoder lift any RecordReader into decoded strings or
// parsed JSON values, surfacing per-record failures with the record index.
package split
