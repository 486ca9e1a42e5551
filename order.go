package twin

import (
	"golang.org/x/exp/constraints"
)

// Comparator reports whether a must be ordered before b.
type Comparator[T any] func(a, b T) bool

// Less reports whether a.Second is less than b.Second.
//
// First fields are ignored: twins with equal seconds are neither less nor
// greater than each other. Do not use Less to check value equality.
func Less[A any, B constraints.Ordered](a, b Twin[A, B]) bool {
	return a.Second < b.Second
}

// Greater reports whether a.Second is greater than b.Second.
// It is the mirror of Less: Greater(a, b) == Less(b, a).
func Greater[A any, B constraints.Ordered](a, b Twin[A, B]) bool {
	return Less(b, a)
}

// LessBy returns a comparator which orders twins by their second fields
// using given less function.
func LessBy[A, B any](less func(B, B) bool) Comparator[Twin[A, B]] {
	return func(a, b Twin[A, B]) bool {
		return less(a.Second, b.Second)
	}
}

// GreaterBy returns the mirror of LessBy(less).
func GreaterBy[A, B any](less func(B, B) bool) Comparator[Twin[A, B]] {
	return func(a, b Twin[A, B]) bool {
		return less(b.Second, a.Second)
	}
}

// Reverse returns a comparator with arguments of cmp swapped.
func Reverse[T any](cmp Comparator[T]) Comparator[T] {
	return func(a, b T) bool {
		return cmp(b, a)
	}
}
