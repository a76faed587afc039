package internal

import (
	"iter"
	"slices"
)

// IterSeqConcat concatenates multiple iterators into a single iterator sequence.
func IterSeqConcat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

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

// Permutations yields every ordering of items, in lexicographic order of
// their indexes. Each yielded slice is a fresh copy.
func Permutations[T any](items []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		index := make([]int, len(items))
		for n := range index {
			index[n] = n
		}

		for {
			perm := make([]T, len(items))
			for n, i := range index {
				perm[n] = items[i]
			}
			if !yield(perm) {
				return
			}

			// Next lexicographic index ordering.
			k := len(index) - 2
			for k >= 0 && index[k] >= index[k+1] {
				k--
			}
			if k < 0 {
				return
			}
			l := len(index) - 1
			for index[l] <= index[k] {
				l--
			}
			index[k], index[l] = index[l], index[k]
			slices.Reverse(index[k+1:])
		}
	}
}
