package split

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/splitstream/errs"
)

func TestTextDecoder(t *testing.T) {
	t.Run("Decodes records in order", func(t *testing.T) {
		s, err := New([]byte("alpha\nbeta\ngamma"), mustNeedle(t, "\n"))
		require.NoError(t, err)

		dec := NewTextDecoder(s)
		var got []string
		for {
			rec, err := dec.Next()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			got = append(got, rec)
		}
		require.Equal(t, []string{"alpha", "beta", "gamma"}, got)
	})

	t.Run("Surfaces decode failure with record index", func(t *testing.T) {
		source := []byte("ok\n\xff\xfe\nstill ok")
		s, err := New(source, mustNeedle(t, "\n"))
		require.NoError(t, err)

		dec := NewTextDecoder(s)

		rec, err := dec.Next()
		require.NoError(t, err)
		require.Equal(t, "ok", rec)

		_, err = dec.Next()
		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		require.Equal(t, 1, decodeErr.Index)
		require.ErrorIs(t, err, errs.ErrInvalidUTF8)

		// The caller may continue past the failed record.
		rec, err = dec.Next()
		require.NoError(t, err)
		require.Equal(t, "still ok", rec)
	})

	t.Run("All aborts on failure", func(t *testing.T) {
		s, err := New([]byte("ok\n\xff"), mustNeedle(t, "\n"))
		require.NoError(t, err)

		dec := NewTextDecoder(s)
		var got []string
		for _, rec := range dec.All() {
			got = append(got, rec)
		}
		require.Equal(t, []string{"ok"}, got)
		require.Error(t, dec.Err())
	})

	t.Run("Works over async reader", func(t *testing.T) {
		a, err := NewStream(chunksOf("one\ntwo", 2), mustNeedle(t, "\n"))
		require.NoError(t, err)

		dec := NewTextDecoder(a.Reader(context.Background()))
		var got []string
		for _, rec := range dec.All() {
			got = append(got, rec)
		}
		require.NoError(t, dec.Err())
		require.Equal(t, []string{"one", "two"}, got)
	})
}

func TestJSONDecoder(t *testing.T) {
	t.Run("Parses NDJSON records", func(t *testing.T) {
		source := []byte(`{"name":"cpu","value":1}` + "\n" + `{"name":"mem","value":2}`)
		s, err := New(source, mustNeedle(t, "\n"))
		require.NoError(t, err)

		type metric struct {
			Name  string  `json:"name"`
			Value float64 `json:"value"`
		}

		dec := NewJSONDecoder(s)
		var got []metric
		for {
			var m metric
			err := dec.Next(&m)
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			got = append(got, m)
		}
		require.Equal(t, []metric{{"cpu", 1}, {"mem", 2}}, got)
	})

	t.Run("Surfaces parse failure with record index", func(t *testing.T) {
		s, err := New([]byte("{}\nnot json\n{}"), mustNeedle(t, "\n"))
		require.NoError(t, err)

		dec := NewJSONDecoder(s)

		_, err = dec.NextValue()
		require.NoError(t, err)

		_, err = dec.NextValue()
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		require.Equal(t, 1, parseErr.Index)

		_, err = dec.NextValue()
		require.NoError(t, err)
	})

	t.Run("All yields untyped values", func(t *testing.T) {
		s, err := New([]byte(`1`+"\n"+`"two"`), mustNeedle(t, "\n"))
		require.NoError(t, err)

		dec := NewJSONDecoder(s)
		var got []any
		for _, v := range dec.All() {
			got = append(got, v)
		}
		require.NoError(t, dec.Err())
		require.Equal(t, []any{float64(1), "two"}, got)
	})
}
