package pattern

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/splitstream/errs"
)

func TestNew(t *testing.T) {
	t.Run("Copies delimiter bytes", func(t *testing.T) {
		delim := []byte(",")
		needle, err := New(delim)
		require.NoError(t, err)

		delim[0] = ';'
		require.Equal(t, []byte(","), needle.Bytes())
	})

	t.Run("Empty delimiter", func(t *testing.T) {
		_, err := New(nil)
		require.ErrorIs(t, err, errs.ErrEmptyDelimiter)

		_, err = NewString("")
		require.ErrorIs(t, err, errs.ErrEmptyDelimiter)
	})
}

func TestNewRune(t *testing.T) {
	needle, err := NewRune('\n')
	require.NoError(t, err)
	require.Equal(t, 1, needle.Len())

	needle, err = NewRune('台')
	require.NoError(t, err)
	require.Equal(t, 3, needle.Len())
	require.Equal(t, "台", needle.String())
}

func TestNeedle_SkipTable(t *testing.T) {
	needle, err := NewString("abca")
	require.NoError(t, err)

	// Interior bytes shift by their distance from the last position;
	// absent bytes shift the full length.
	require.Equal(t, 1, needle.skip['c'])
	require.Equal(t, 2, needle.skip['b'])
	require.Equal(t, 3, needle.skip['a']) // last occurrence ignored, first counts
	require.Equal(t, 4, needle.skip['z'])
}

func TestNeedle_Search(t *testing.T) {
	tests := []struct {
		name     string
		needle   string
		haystack string
		lo, hi   int
		want     int
	}{
		{"single byte hit", ",", "a,b,c", 0, 5, 1},
		{"single byte from offset", ",", "a,b,c", 2, 5, 3},
		{"single byte miss", ",", "abc", 0, 3, -1},
		{"multi byte hit", "\r\n", "ab\r\ncd", 0, 6, 2},
		{"multi byte at start", "\r\n", "\r\nab", 0, 4, 0},
		{"multi byte at end", "\r\n", "ab\r\n", 0, 4, 2},
		{"multi byte miss", "\r\n", "ab\rcd\n", 0, 6, -1},
		{"window excludes match", ",", "a,b", 2, 3, -1},
		{"window too small for needle", "\r\n", "ab\r\n", 3, 4, -1},
		{"empty haystack", ",", "", 0, 0, -1},
		{"overlapping candidates", "aa", "abaab", 0, 5, 2},
		{"repeated needle", "aba", "ababa", 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			needle, err := NewString(tt.needle)
			require.NoError(t, err)
			require.Equal(t, tt.want, needle.Search([]byte(tt.haystack), tt.lo, tt.hi))
		})
	}
}

func TestNeedle_Search_MatchesIndex(t *testing.T) {
	// The BMH result must agree with the reference scan for every window.
	haystacks := []string{
		"",
		"x",
		"field1\tfield2\tfield3",
		"aaaaaaaaab",
		"line1\r\nline2\r\n\r\nline3",
		"の,テ,スト",
	}
	needles := []string{"\t", "\r\n", "aa", "ab", ","}

	for _, h := range haystacks {
		for _, n := range needles {
			needle, err := NewString(n)
			require.NoError(t, err)

			for lo := 0; lo <= len(h); lo++ {
				got := needle.Search([]byte(h), lo, len(h))
				want := bytes.Index([]byte(h)[lo:], []byte(n))
				if want >= 0 {
					want += lo
				}
				require.Equal(t, want, got, "needle %q haystack %q lo %d", n, h, lo)
			}
		}
	}
}

func TestNeedle_Search_ClampsBounds(t *testing.T) {
	needle, err := NewString(",")
	require.NoError(t, err)

	require.Equal(t, 1, needle.Search([]byte("a,b"), -5, 100))
}
