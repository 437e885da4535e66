package simplevector

import (
	"cmp"
	"slices"
)

// Comparator is a function that compares two elements.
// It should return:
//   - a negative value if a < b
//   - zero if a == b
//   - a positive value if a > b
type Comparator[T any] func(a, b T) int

// Equal reports whether a and b have the same length and equal elements.
// A nil vector compares as empty.
func Equal[T comparable](a, b *Vector[T]) bool {
	return slices.Equal(a.Slice(), b.Slice())
}

// EqualFunc is Equal with a custom element equality.
func EqualFunc[T any](a, b *Vector[T], eq func(x, y T) bool) bool {
	return slices.EqualFunc(a.Slice(), b.Slice(), eq)
}

// NotEqual is the negation of Equal.
func NotEqual[T comparable](a, b *Vector[T]) bool {
	return !Equal(a, b)
}

// Compare compares a and b lexicographically. The result is 0 if a == b,
// -1 if a < b and +1 if a > b.
// Compare and the ordering predicates follow cmp.Compare, so a NaN element
// equals another NaN and sorts before every other value. Equal uses == instead,
// under which NaN never equals anything.
func Compare[T cmp.Ordered](a, b *Vector[T]) int {
	return slices.Compare(a.Slice(), b.Slice())
}

// CompareFunc is Compare with a custom element comparator.
func CompareFunc[T any](a, b *Vector[T], compare Comparator[T]) int {
	if compare == nil {
		panic("simplevector: comparator cannot be nil")
	}
	return slices.CompareFunc(a.Slice(), b.Slice(), compare)
}

// Less reports whether a sorts before b lexicographically.
func Less[T cmp.Ordered](a, b *Vector[T]) bool {
	return Compare(a, b) < 0
}

// LessOrEqual reports whether a does not sort after b.
func LessOrEqual[T cmp.Ordered](a, b *Vector[T]) bool {
	return Compare(a, b) <= 0
}

// Greater reports whether a sorts after b.
func Greater[T cmp.Ordered](a, b *Vector[T]) bool {
	return Compare(a, b) > 0
}

// GreaterOrEqual reports whether a does not sort before b.
func GreaterOrEqual[T cmp.Ordered](a, b *Vector[T]) bool {
	return Compare(a, b) >= 0
}
