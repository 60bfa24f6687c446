package buffer

import "sync"

// pool recycles scan buffers across spliterator instances. Buffers that grew
// past MaxPooledThreshold are discarded to prevent memory bloat.
var pool = sync.Pool{
	New: func() any {
		return NewGrowBuf(DefaultSize)
	},
}

// Get retrieves a GrowBuf from the pool.
func Get() *GrowBuf {
	g, _ := pool.Get().(*GrowBuf)
	return g
}

// Put returns a GrowBuf to the pool for reuse.
func Put(g *GrowBuf) {
	if g == nil {
		return
	}
	if cap(g.b) > MaxPooledThreshold {
		return
	}

	g.Reset()
	pool.Put(g)
}
