/*
Package twin provides a generic two-slot value container and the heap and
queue primitives built around it.

A Twin holds two independently typed values. Twins are ordered by their
second field only: two twins with equal seconds are heap-equivalent even if
their first fields differ. That is, ordering functions of this package must
never be used as a substitute for value equality.
*/
package twin

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Twin is a pair of two values of independent types.
//
// No invariant relates First and Second; both fields can be assigned
// independently. The zero value is a twin holding zero values.
type Twin[A, B any] struct {
	First  A
	Second B
}

// Make returns a twin holding a and b.
func Make[A, B any](a A, b B) Twin[A, B] {
	return Twin[A, B]{
		First:  a,
		Second: b,
	}
}

// Zero returns a twin with both fields set to their zero values.
// It is the explicit form of default construction.
func Zero[A, B any]() (t Twin[A, B]) {
	return t
}

// Unpack returns both fields of t.
func (t Twin[A, B]) Unpack() (A, B) {
	return t.First, t.Second
}

// String formats t as (first, second).
func (t Twin[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", t.First, t.Second)
}

// Assign copies fields of src into t and returns t.
func (t *Twin[A, B]) Assign(src Twin[A, B]) *Twin[A, B] {
	t.First = src.First
	t.Second = src.Second
	return t
}

// Move transfers fields of src into t and returns t. After Move src holds
// zero values, unless src and t are the same twin.
func (t *Twin[A, B]) Move(src *Twin[A, B]) *Twin[A, B] {
	if t == src {
		return t
	}
	*t = Take(src)
	return t
}

// Take returns the value of src and resets src to zero value.
func Take[A, B any](src *Twin[A, B]) Twin[A, B] {
	t := *src
	*src = Twin[A, B]{}
	return t
}

// Convert returns a twin built from src by converting its fields with fa and
// fb respectively.
func Convert[A, B, C, D any](src Twin[C, D], fa func(C) A, fb func(D) B) Twin[A, B] {
	return Twin[A, B]{
		First:  fa(src.First),
		Second: fb(src.Second),
	}
}

// TakeConvert is like Convert but also resets src to zero value.
func TakeConvert[A, B, C, D any](src *Twin[C, D], fa func(C) A, fb func(D) B) Twin[A, B] {
	return Convert(Take(src), fa, fb)
}

// AssignConvert converts fields of src with fa and fb and stores them in
// dst. It returns dst.
func AssignConvert[A, B, C, D any](dst *Twin[A, B], src Twin[C, D], fa func(C) A, fb func(D) B) *Twin[A, B] {
	dst.First = fa(src.First)
	dst.Second = fb(src.Second)
	return dst
}

// MoveConvert is like AssignConvert but also resets src to zero value.
func MoveConvert[A, B, C, D any](dst *Twin[A, B], src *Twin[C, D], fa func(C) A, fb func(D) B) *Twin[A, B] {
	return AssignConvert(dst, Take(src), fa, fb)
}

// Number is a constraint for types which Numeric can convert between.
type Number interface {
	constraints.Integer | constraints.Float
}

// Identity returns x. It is a converter for fields which types do not
// change.
func Identity[T any](x T) T {
	return x
}

// Numeric converts x to type To following Go conversion rules for numeric
// types.
func Numeric[From, To Number](x From) To {
	return To(x)
}
