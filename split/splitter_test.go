package split

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/splitstream/errs"
	"github.com/arloliu/splitstream/pattern"
	"github.com/arloliu/splitstream/span"
)

func mustNeedle(t *testing.T, s string) *pattern.Needle {
	t.Helper()
	needle, err := pattern.NewString(s)
	require.NoError(t, err)

	return needle
}

func collectStrings(t *testing.T, s *Splitter) []string {
	t.Helper()
	out, err := s.CollectStrings()
	require.NoError(t, err)

	return out
}

func TestNew_Validation(t *testing.T) {
	_, err := New([]byte("a"), nil)
	require.ErrorIs(t, err, errs.ErrNilDelimiter)
}

func TestSplitter_Basic(t *testing.T) {
	tests := []struct {
		name   string
		source string
		delim  string
		want   []string
	}{
		{"simple fields", "a,b,c", ",", []string{"a", "b", "c"}},
		{"no delimiter", "abc", ",", []string{"abc"}},
		{"trailing delimiter", "a,b,", ",", []string{"a", "b", ""}},
		{"leading delimiter", ",a", ",", []string{"", "a"}},
		{"consecutive delimiters", "a,,b", ",", []string{"a", "", "b"}},
		{"crlf lines", "one\r\ntwo\r\nthree", "\r\n", []string{"one", "two", "three"}},
		{"multi byte delimiter", "a::b::c", "::", []string{"a", "b", "c"}},
		{"delimiter only", ",", ",", []string{"", ""}},
		{"empty source", "", ",", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New([]byte(tt.source), mustNeedle(t, tt.delim))
			require.NoError(t, err)
			require.Equal(t, tt.want, collectStrings(t, s))
		})
	}
}

func TestSplitter_Reconstruction(t *testing.T) {
	// Joining the emitted records with one delimiter copy reconstructs the
	// source exactly.
	sources := []string{
		"", "x", "\n", "a\nb", "a\nb\n", "\n\n\n", "no delimiters at all",
		"trailing\nempty\n", "\nleading",
	}

	for _, src := range sources {
		s, err := New([]byte(src), mustNeedle(t, "\n"))
		require.NoError(t, err)

		records := collectStrings(t, s)
		require.Equal(t, src, strings.Join(records, "\n"), "source %q", src)
	}
}

func TestSplitter_SkipEmpty(t *testing.T) {
	t.Run("Drops interior and trailing empties", func(t *testing.T) {
		s, err := New([]byte("a,,b,"), mustNeedle(t, ","), WithSkipEmpty())
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, collectStrings(t, s))
	})

	t.Run("Empty source emits nothing", func(t *testing.T) {
		s, err := New(nil, mustNeedle(t, ","), WithSkipEmpty())
		require.NoError(t, err)
		require.Empty(t, collectStrings(t, s))
	})

	t.Run("Delimiter-only source emits nothing", func(t *testing.T) {
		s, err := New([]byte(","), mustNeedle(t, ","), WithSkipEmpty())
		require.NoError(t, err)
		require.Empty(t, collectStrings(t, s))
	})
}

func TestSplitter_DropTake(t *testing.T) {
	const source = "r0,r1,r2,r3,r4"
	delim := ","

	tests := []struct {
		name string
		opts []Option
		want []string
	}{
		{"drop skips leading records", []Option{WithDrop(2)}, []string{"r2", "r3", "r4"}},
		{"take caps emission", []Option{WithTake(2)}, []string{"r0", "r1"}},
		{"drop then take", []Option{WithDrop(1), WithTake(2)}, []string{"r1", "r2"}},
		{"drop beyond total", []Option{WithDrop(9)}, nil},
		{"take beyond total", []Option{WithTake(9)}, []string{"r0", "r1", "r2", "r3", "r4"}},
		{"take zero", []Option{WithTake(0)}, nil},
		{"negative values normalized", []Option{WithDrop(-1), WithTake(-1)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New([]byte(source), mustNeedle(t, delim), tt.opts...)
			require.NoError(t, err)

			got, err := s.CollectStrings()
			require.NoError(t, err)
			if tt.want == nil {
				require.Empty(t, got)
			} else {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSplitter_SkipEmptyDoesNotCountAgainstLimits(t *testing.T) {
	s, err := New([]byte("a,,b,,c"), mustNeedle(t, ","), WithSkipEmpty(), WithDrop(1), WithTake(1))
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, collectStrings(t, s))
}

func TestSplitter_Position(t *testing.T) {
	t.Run("Starts mid source", func(t *testing.T) {
		s, err := New([]byte("ab\ncd\nef"), mustNeedle(t, "\n"), WithPosition(3))
		require.NoError(t, err)

		r, view, ok := s.Next()
		require.True(t, ok)
		require.Equal(t, span.Span{Start: 3, End: 5}, r)
		require.Equal(t, "cd", string(view))
	})

	t.Run("Position at source size emits nothing", func(t *testing.T) {
		s, err := New([]byte("abc"), mustNeedle(t, "\n"), WithPosition(3))
		require.NoError(t, err)
		require.Empty(t, s.Collect())
	})

	t.Run("Position beyond source size emits nothing", func(t *testing.T) {
		s, err := New([]byte("abc"), mustNeedle(t, "\n"), WithPosition(100))
		require.NoError(t, err)
		require.Empty(t, s.Collect())
	})
}

func TestSplitter_Spans(t *testing.T) {
	s, err := New([]byte("ab,c,"), mustNeedle(t, ","))
	require.NoError(t, err)

	require.Equal(t, []span.Span{
		{Start: 0, End: 2},
		{Start: 3, End: 4},
		{Start: 5, End: 5},
	}, s.Collect())
}

func TestSplitter_TerminalAfterDone(t *testing.T) {
	s, err := New([]byte("a"), mustNeedle(t, ","))
	require.NoError(t, err)

	_, _, ok := s.Next()
	require.True(t, ok)
	for i := 0; i < 3; i++ {
		_, _, ok = s.Next()
		require.False(t, ok)
	}
}

func TestSplitter_All(t *testing.T) {
	s, err := New([]byte("a,b,c"), mustNeedle(t, ","))
	require.NoError(t, err)

	var got []string
	for r, view := range s.All() {
		require.Equal(t, r.Len(), len(view))
		got = append(got, string(view))
	}
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestSplitter_QuoteAware(t *testing.T) {
	t.Run("Delimiter inside quotes ignored", func(t *testing.T) {
		s, err := New([]byte(`"a,b",c`), mustNeedle(t, ","), WithQuote('"'))
		require.NoError(t, err)
		require.Equal(t, []string{`"a,b"`, "c"}, collectStrings(t, s))
	})

	t.Run("Unquoted fields unaffected", func(t *testing.T) {
		s, err := New([]byte("a,b,c"), mustNeedle(t, ","), WithQuote('"'))
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b", "c"}, collectStrings(t, s))
	})

	t.Run("Quoted field mid record", func(t *testing.T) {
		s, err := New([]byte(`x,"y,z",w`), mustNeedle(t, ","), WithQuote('"'))
		require.NoError(t, err)
		require.Equal(t, []string{"x", `"y,z"`, "w"}, collectStrings(t, s))
	})

	t.Run("Doubled quote counts as two quotes", func(t *testing.T) {
		// "" is not an escape: the pair closes and reopens, so the comma
		// after it sits outside quotes.
		s, err := New([]byte(`"a""b",c`), mustNeedle(t, ","), WithQuote('"'))
		require.NoError(t, err)
		require.Equal(t, []string{`"a""b"`, "c"}, collectStrings(t, s))
	})

	t.Run("Unterminated quote swallows the rest", func(t *testing.T) {
		s, err := New([]byte(`"a,b`), mustNeedle(t, ","), WithQuote('"'))
		require.NoError(t, err)
		require.Equal(t, []string{`"a,b`}, collectStrings(t, s))
	})
}

func TestSplitter_ReadRecord(t *testing.T) {
	s, err := New([]byte("a,b"), mustNeedle(t, ","))
	require.NoError(t, err)

	rec, err := s.ReadRecord()
	require.NoError(t, err)
	require.Equal(t, "a", string(rec))

	rec, err = s.ReadRecord()
	require.NoError(t, err)
	require.Equal(t, "b", string(rec))

	_, err = s.ReadRecord()
	require.ErrorIs(t, err, io.EOF)
}
