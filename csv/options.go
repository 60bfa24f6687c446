package csv

import (
	"github.com/arloliu/splitstream/format"
	"github.com/arloliu/splitstream/internal/options"
)

// Transform rewrites a single column value before emission. Transforms must
// be pure: they are applied per cell and must not capture state across rows.
type Transform func(string) any

// config holds the projection parameters.
type config struct {
	rowDelim     string
	colDelim     string
	quote        rune
	header       bool
	mode         format.Mode
	normalize    bool
	normalizeSet bool
	transforms   []Transform
	named        map[string]Transform
	drop         int
	take         int // -1 means unlimited
	skipEmpty    bool
	hwm          int
}

func newConfig() config {
	return config{
		rowDelim:  "\n",
		colDelim:  ",",
		quote:     '"',
		header:    true,
		mode:      format.ModeArray,
		take:      -1,
		skipEmpty: true,
	}
}

// normalizeKeys resolves the tri-state default: canonicalization is on for
// object and entries modes unless explicitly configured.
func (c *config) normalizeKeys() bool {
	if c.normalizeSet {
		return c.normalize
	}

	return c.mode == format.ModeObject || c.mode == format.ModeEntries
}

// Option configures a Reader.
type Option = options.Option[*config]

// WithRowDelimiter sets the delimiter between records. Defaults to LF.
func WithRowDelimiter(d string) Option {
	return options.NoError(func(c *config) {
		c.rowDelim = d
	})
}

// WithColumnDelimiter sets the delimiter between fields within a row.
// Defaults to comma.
func WithColumnDelimiter(d string) Option {
	return options.NoError(func(c *config) {
		c.colDelim = d
	})
}

// WithQuote sets the quote character honored by the column scanner.
// Defaults to '"'.
func WithQuote(q rune) Option {
	return options.NoError(func(c *config) {
		c.quote = q
	})
}

// WithHeader controls whether the first row becomes the header list.
// Defaults to true.
func WithHeader(header bool) Option {
	return options.NoError(func(c *config) {
		c.header = header
	})
}

// WithMode selects the emission shape of Row.Value. Defaults to
// format.ModeArray.
func WithMode(m format.Mode) Option {
	return options.NoError(func(c *config) {
		c.mode = m
	})
}

// WithNormalizeKeys controls header canonicalization. When not set,
// canonicalization defaults to on for object and entries modes and off
// otherwise.
func WithNormalizeKeys(normalize bool) Option {
	return options.NoError(func(c *config) {
		c.normalize = normalize
		c.normalizeSet = true
	})
}

// WithTransforms binds transformers positionally, aligned with columns.
// A nil entry keeps the identity transform for that column.
func WithTransforms(ts ...Transform) Option {
	return options.NoError(func(c *config) {
		c.transforms = ts
	})
}

// WithNamedTransforms binds transformers by header name. Keys match the
// emitted header names, after canonicalization when it is enabled.
// Named bindings require a header row.
func WithNamedTransforms(m map[string]Transform) Option {
	return options.NoError(func(c *config) {
		c.named = m
	})
}

// WithDrop skips the first n data rows, counted after the header row.
// Negative values are normalized to zero.
func WithDrop(n int) Option {
	return options.NoError(func(c *config) {
		if n < 0 {
			n = 0
		}
		c.drop = n
	})
}

// WithTake caps the number of emitted rows, counted after the header row and
// the drop window. Negative values are normalized to zero.
func WithTake(n int) Option {
	return options.NoError(func(c *config) {
		if n < 0 {
			n = 0
		}
		c.take = n
	})
}

// WithSkipEmpty controls whether empty rows are dropped before projection.
// Defaults to true, so a source ending with a row delimiter does not produce
// a trailing empty row.
func WithSkipEmpty(skip bool) Option {
	return options.NoError(func(c *config) {
		c.skipEmpty = skip
	})
}

// WithHighWaterMark tunes the row spliterator's read size and queued byte
// bound for the streaming constructors.
func WithHighWaterMark(n int) Option {
	return options.NoError(func(c *config) {
		c.hwm = n
	})
}
