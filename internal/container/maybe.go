// Package container provides the immutable building blocks the parser
// combinators thread their results through: an optional value, a pair and a
// persistent singly-linked list.
package container

// Maybe holds either nothing or exactly one value of type T
type Maybe[T any] struct {
	value T
	ok    bool
}

// Just wraps x in a present Maybe
func Just[T any](x T) Maybe[T] {
	return Maybe[T]{value: x, ok: true}
}

// Nothing returns an absent Maybe
func Nothing[T any]() Maybe[T] {
	return Maybe[T]{}
}

// IsJust reports whether a value is present
func (m Maybe[T]) IsJust() bool {
	return m.ok
}

// IsNothing reports whether the value is absent
func (m Maybe[T]) IsNothing() bool {
	return !m.ok
}

// Get returns the value and whether it was present
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.ok
}

// OrElse returns the value if present, otherwise def
func (m Maybe[T]) OrElse(def T) T {
	if m.ok {
		return m.value
	}
	return def
}

// Or returns m if it is present, otherwise other
func (m Maybe[T]) Or(other Maybe[T]) Maybe[T] {
	if m.ok {
		return m
	}
	return other
}

// FoldMaybe eliminates m: nothing when absent, just(x) when present
func FoldMaybe[T, R any](m Maybe[T], nothing R, just func(T) R) R {
	if m.ok {
		return just(m.value)
	}
	return nothing
}

// MapMaybe applies f to the value inside m, if any
func MapMaybe[T, R any](f func(T) R, m Maybe[T]) Maybe[R] {
	if m.ok {
		return Just(f(m.value))
	}
	return Nothing[R]()
}

// AltMaybe is the left-biased choice between two Maybes
func AltMaybe[T any](ma, mb Maybe[T]) Maybe[T] {
	return ma.Or(mb)
}
