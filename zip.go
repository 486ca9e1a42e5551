package twin

import (
	"github.com/samber/lo"
)

// Zip pairs elements of as and bs by their position. If slices have
// different lengths, missing elements are zero values.
func Zip[A, B any](as []A, bs []B) []Twin[A, B] {
	return lo.Map(lo.Zip2(as, bs), func(x lo.Tuple2[A, B], _ int) Twin[A, B] {
		return Make(x.A, x.B)
	})
}

// Unzip splits ts into slices of first and second fields.
func Unzip[A, B any](ts []Twin[A, B]) ([]A, []B) {
	as := lo.Map(ts, func(t Twin[A, B], _ int) A {
		return t.First
	})
	bs := lo.Map(ts, func(t Twin[A, B], _ int) B {
		return t.Second
	})
	return as, bs
}
