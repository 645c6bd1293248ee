package liner

import (
	"iter"
	"slices"
)

// Values returns a re-iterable sequence over elems.
func Values(elems ...any) iter.Seq[any] {
	return slices.Values(elems)
}

// Slice returns a re-iterable sequence over the elements of s.
func Slice[T any](s []T) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

// From adapts a typed sequence. The result is restartable only if seq is.
func From[T any](seq iter.Seq[T]) iter.Seq[any] {
	return func(yield func(any) bool) {
		for v := range seq {
			if !yield(v) {
				return
			}
		}
	}
}

// Chan returns a single-pass sequence that receives from ch until it is
// closed or the consumer stops.
func Chan[T any](ch <-chan T) iter.Seq[any] {
	return func(yield func(any) bool) {
		for v := range ch {
			if !yield(v) {
				return
			}
		}
	}
}

// Concat yields the elements of each sequence in turn. Nil sequences are
// treated as empty.
func Concat(seqs ...iter.Seq[any]) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, seq := range seqs {
			if seq == nil {
				continue
			}
			for v := range seq {
				if !yield(v) {
					return
				}
			}
		}
	}
}
