package container

import "strings"

// List is a persistent singly-linked list. The zero value is the empty list.
// Lists are never modified after construction, so any two lists may share tails.
type List[T any] struct {
	cell *cell[T]
}

type cell[T any] struct {
	head T
	tail List[T]
}

// Nil returns the empty list
func Nil[T any]() List[T] {
	return List[T]{}
}

// Cons prepends x to xs
func Cons[T any](x T, xs List[T]) List[T] {
	return List[T]{cell: &cell[T]{head: x, tail: xs}}
}

// Singleton returns the one-element list containing x
func Singleton[T any](x T) List[T] {
	return Cons(x, Nil[T]())
}

// Foldr folds xs from the front: cons(x0, cons(x1, ... cons(xn, empty))).
// It walks the list iteratively, so the depth of the Go stack does not
// grow with the length of xs.
func Foldr[T, R any](xs List[T], cons func(T, R) R, empty R) R {
	items := xs.ToSlice()
	acc := empty
	for i := len(items) - 1; i >= 0; i-- {
		acc = cons(items[i], acc)
	}
	return acc
}

// Foldl folds xs left to right starting from acc
func Foldl[T, R any](xs List[T], step func(R, T) R, acc R) R {
	for c := xs.cell; c != nil; c = c.tail.cell {
		acc = step(acc, c.head)
	}
	return acc
}

// IsEmpty reports whether the list has no elements
func (xs List[T]) IsEmpty() bool {
	return xs.cell == nil
}

// Head returns the first element, if any
func (xs List[T]) Head() Maybe[T] {
	if xs.cell == nil {
		return Nothing[T]()
	}
	return Just(xs.cell.head)
}

// Tail returns everything after the first element. The tail of the empty
// list is the empty list.
func (xs List[T]) Tail() List[T] {
	if xs.cell == nil {
		return xs
	}
	return xs.cell.tail
}

// Len counts the elements by walking the whole list. It is O(n).
func (xs List[T]) Len() int {
	n := 0
	for c := xs.cell; c != nil; c = c.tail.cell {
		n++
	}
	return n
}

// Shorter reports whether xs has fewer elements than ys. When xs is a suffix
// sharing cells with ys, only the elements in front of it are visited.
func Shorter[T any](xs, ys List[T]) bool {
	steps := 0
	for c := ys.cell; ; c = c.tail.cell {
		if c == xs.cell {
			return steps > 0
		}
		if c == nil {
			break
		}
		steps++
	}
	return xs.Len() < steps
}

// ToSlice copies the elements into a new slice, in order
func (xs List[T]) ToSlice() []T {
	out := make([]T, 0)
	for c := xs.cell; c != nil; c = c.tail.cell {
		out = append(out, c.head)
	}
	return out
}

// FromSlice builds a list holding the elements of items, in order
func FromSlice[T any](items []T) List[T] {
	xs := Nil[T]()
	for i := len(items) - 1; i >= 0; i-- {
		xs = Cons(items[i], xs)
	}
	return xs
}

// FromString converts text into a list of runes
func FromString(s string) List[rune] {
	return FromSlice([]rune(s))
}

// ToString concatenates a list of runes back into text
func ToString(xs List[rune]) string {
	var sb strings.Builder
	for c := xs.cell; c != nil; c = c.tail.cell {
		sb.WriteRune(c.head)
	}
	return sb.String()
}

// Append returns xs followed by ys. ys is shared, not copied.
func Append[T any](xs, ys List[T]) List[T] {
	return Foldr(xs, Cons[T], ys)
}

// Reverse returns the elements of xs in reverse order
func Reverse[T any](xs List[T]) List[T] {
	return Foldl(xs, func(acc List[T], x T) List[T] { return Cons(x, acc) }, Nil[T]())
}

// Take returns the first n elements of xs, or all of them if xs is shorter
func Take[T any](n int, xs List[T]) List[T] {
	prefix := make([]T, 0)
	for c := xs.cell; c != nil && len(prefix) < n; c = c.tail.cell {
		prefix = append(prefix, c.head)
	}
	return FromSlice(prefix)
}

// Drop returns xs without its first n elements
func Drop[T any](n int, xs List[T]) List[T] {
	for i := 0; i < n && xs.cell != nil; i++ {
		xs = xs.cell.tail
	}
	return xs
}

// MapList applies f to every element, preserving order and length
func MapList[T, R any](f func(T) R, xs List[T]) List[R] {
	return Foldr(xs, func(x T, acc List[R]) List[R] { return Cons(f(x), acc) }, Nil[R]())
}

// Replicate returns a list containing x n times
func Replicate[T any](n int, x T) List[T] {
	xs := Nil[T]()
	for i := 0; i < n; i++ {
		xs = Cons(x, xs)
	}
	return xs
}

// Zip pairs up the elements of xs and ys, stopping at the shorter list
func Zip[A, B any](xs List[A], ys List[B]) List[Pair[A, B]] {
	pairs := make([]Pair[A, B], 0)
	for a, b := xs.cell, ys.cell; a != nil && b != nil; a, b = a.tail.cell, b.tail.cell {
		pairs = append(pairs, NewPair(a.head, b.head))
	}
	return FromSlice(pairs)
}

// ApList applies every function in fs to every element of xs. The results
// are grouped by function: all of fs[0]'s results come first.
func ApList[A, B any](fs List[func(A) B], xs List[A]) List[B] {
	return Foldr(fs, func(f func(A) B, acc List[B]) List[B] {
		return Append(MapList(f, xs), acc)
	}, Nil[B]())
}

// Equal reports whether xs and ys have the same length and pairwise equal elements
func Equal[T any](xs, ys List[T], eq func(a, b T) bool) bool {
	a, b := xs.cell, ys.cell
	for a != nil && b != nil {
		if !eq(a.head, b.head) {
			return false
		}
		a, b = a.tail.cell, b.tail.cell
	}
	return a == nil && b == nil
}
