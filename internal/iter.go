package internal

import (
	"iter"
	"maps"
	"slices"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return
				}
			}
		}
	}
}

// IterSeq2Sorted yields the pairs of a sequence ordered by key. Later
// duplicates of a key replace earlier ones.
func IterSeq2Sorted[T2 any](seq iter.Seq2[string, T2]) iter.Seq2[string, T2] {
	return func(yield func(string, T2) bool) {
		collected := map[string]T2{}
		for key, val := range seq {
			collected[key] = val
		}
		for _, key := range slices.Sorted(maps.Keys(collected)) {
			if !yield(key, collected[key]) {
				return
			}
		}
	}
}
