package split

import "iter"

// Zip pairs two record sequences element-wise. When one side is exhausted
// first, its position is padded with nil until the longer side ends.
func Zip(a, b iter.Seq[[]byte]) iter.Seq2[[]byte, []byte] {
	return func(yield func([]byte, []byte) bool) {
		nextA, stopA := iter.Pull(a)
		defer stopA()
		nextB, stopB := iter.Pull(b)
		defer stopB()

		for {
			av, aok := nextA()
			bv, bok := nextB()
			if !aok && !bok {
				return
			}
			if !aok {
				av = nil
			}
			if !bok {
				bv = nil
			}
			if !yield(av, bv) {
				return
			}
		}
	}
}
