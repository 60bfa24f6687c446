// Package csv projects delimited sources into rows of columns.
//
// A Reader composes a row-level spliterator with a per-row, quote-aware
// column spliterator. The first row optionally becomes the header, header
// names can be canonicalized to unique snake_case identifiers, and each
// column value can be rewritten by a caller-supplied transformer before
// emission as an array, an object keyed by header, or key/value entries.
//
// This is not a full CSV parser: the row delimiter is treated literally, so
// embedded newlines inside quoted fields split the record, and a doubled
// quote is counted as two quotes rather than an escape.
//
// # Basic Usage
//
//	reader, err := csv.New(data,
//	    csv.WithMode(format.ModeObject),
//	)
//	if err != nil {
//	    return err
//	}
//	for i, row := range reader.All() {
//	    fmt.Println(i, row.Object())
//	}
package csv
