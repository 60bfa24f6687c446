//go:build cgozstd

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

// NewReader wraps r with the libzstd-backed streaming decoder.
func (ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return &gozstdReader{r: gozstd.NewReader(r)}, nil
}

type gozstdReader struct {
	r *gozstd.Reader
}

func (g *gozstdReader) Read(p []byte) (int, error) {
	return g.r.Read(p)
}

func (g *gozstdReader) Close() error {
	g.r.Release()
	return nil
}
