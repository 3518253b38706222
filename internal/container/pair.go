package container

// Pair is an immutable two-element tuple
type Pair[A, B any] struct {
	first  A
	second B
}

// NewPair creates a Pair from its two components
func NewPair[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{first: a, second: b}
}

// Fst returns the first component
func (p Pair[A, B]) Fst() A {
	return p.first
}

// Snd returns the second component
func (p Pair[A, B]) Snd() B {
	return p.second
}

// MapPair applies f to the second component, keeping the first
func MapPair[A, B, R any](f func(B) R, p Pair[A, B]) Pair[A, R] {
	return NewPair(p.first, f(p.second))
}
