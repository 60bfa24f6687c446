package split

import (
	"github.com/arloliu/splitstream/internal/options"
	"github.com/arloliu/splitstream/pattern"
)

// DefaultHighWaterMark bounds the size of each positional read and the total
// queued unread byte length. It is the primary memory-versus-latency knob.
const DefaultHighWaterMark = 64 * 1024

// config holds the shared init parameters of both spliterators.
type config struct {
	drop      int
	take      int // -1 means unlimited
	skipEmpty bool
	position  int64
	hwm       int
	quote     *pattern.Needle
	ownSource bool
}

func newConfig() config {
	return config{
		take: -1,
		hwm:  DefaultHighWaterMark,
	}
}

// exhausted reports whether the take limit has been reached after yielding
// the given number of records (dropped records included).
func (c *config) exhausted(yielded int) bool {
	return c.take >= 0 && yielded-c.drop >= c.take
}

// Option configures a Splitter or AsyncSplitter.
type Option = options.Option[*config]

func applyOptions(c *config, opts []Option) error {
	return options.Apply(c, opts...)
}

// WithDrop skips the first n records. Negative values are normalized to zero.
func WithDrop(n int) Option {
	return options.NoError(func(c *config) {
		if n < 0 {
			n = 0
		}
		c.drop = n
	})
}

// WithTake caps the number of emitted records at n, counted after the drop
// window. Negative values are normalized to zero.
func WithTake(n int) Option {
	return options.NoError(func(c *config) {
		if n < 0 {
			n = 0
		}
		c.take = n
	})
}

// WithSkipEmpty omits empty records from emission. Skipped records do not
// count against drop or take.
func WithSkipEmpty() Option {
	return options.NoError(func(c *config) {
		c.skipEmpty = true
	})
}

// WithPosition starts scanning at byte offset p of the source instead of 0.
// A position at or beyond the end of a non-empty source emits nothing.
// Chunk-stream sources ignore the position.
func WithPosition(p int64) Option {
	return options.NoError(func(c *config) {
		if p < 0 {
			p = 0
		}
		c.position = p
	})
}

// WithHighWaterMark overrides DefaultHighWaterMark. Values <= 0 restore the
// default.
func WithHighWaterMark(n int) Option {
	return options.NoError(func(c *config) {
		if n <= 0 {
			n = DefaultHighWaterMark
		}
		c.hwm = n
	})
}

// WithQuote makes the scan quote-aware: delimiter occurrences between an odd
// and even occurrence of q are ignored. Used by the CSV column scanner; a
// doubled quote is counted as two quotes, not an escape. Only Splitter
// honors it; AsyncSplitter scans ignore the quote.
func WithQuote(q rune) Option {
	return options.New(func(c *config) error {
		needle, err := pattern.NewRune(q)
		if err != nil {
			return err
		}
		c.quote = needle

		return nil
	})
}

// WithOwnedSource makes Close release the underlying source when it
// implements io.Closer.
func WithOwnedSource() Option {
	return options.NoError(func(c *config) {
		c.ownSource = true
	})
}
