// Package internal holds iterator helpers shared by the emulator and monitor.
package internal

import (
	"iter"
	"strings"
)

// Concat2 chains key/value iterators, in order.
func Concat2[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

// WithPrefix yields the strings of seq that start with prefix.
func WithPrefix(seq iter.Seq[string], prefix string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for str := range seq {
			if strings.HasPrefix(str, prefix) && !yield(str) {
				return
			}
		}
	}
}
