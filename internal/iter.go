// Package internal holds helpers shared by the lc3asm packages.
package internal

import (
	"iter"
)

// Concat2 yields every pair of each sequence, one sequence after another.
func Concat2[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, val := range seq {
				if !yield(key, val) {
					return
				}
			}
		}
	}
}
