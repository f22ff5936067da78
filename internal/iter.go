package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// Spans splits total into consecutive (offset, size) spans of at most limit.
// The final span carries the remainder. A non-positive limit yields nothing.
func Spans(total int, limit int) iter.Seq2[int, int] {
	return func(yield func(offset int, size int) bool) {
		if limit <= 0 {
			return
		}
		for offset := 0; offset < total; offset += limit {
			size := min(total-offset, limit)
			if !yield(offset, size) {
				return
			}
		}
	}
}
