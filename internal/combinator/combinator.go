// Package combinator implements generic parser combinators over a list of
// runes.
//
// A Parser is a pure function: given the remaining input it either fails
// (Nothing) or succeeds with the input left over and the value it produced.
// Failure carries no position or message. Alternation always backtracks to
// the input it was given, so a failed branch never consumes anything.
package combinator

import (
	"github.com/mcncl/jsonpc/internal/container"
)

// Input is the text a parser consumes
type Input = container.List[rune]

// Result is what a parser returns: nothing, or the remaining input and a value
type Result[T any] = container.Maybe[container.Pair[Input, T]]

// Parser consumes a prefix of its input and produces a T
type Parser[T any] func(Input) Result[T]

func success[T any](rest Input, v T) Result[T] {
	return container.Just(container.NewPair(rest, v))
}

func failure[T any]() Result[T] {
	return container.Nothing[container.Pair[Input, T]]()
}

// Run applies p to input and eliminates the result with the two continuations
func Run[T, R any](p Parser[T], input Input, onFailure R, onSuccess func(rest Input, value T) R) R {
	return container.FoldMaybe(p(input), onFailure, func(r container.Pair[Input, T]) R {
		return onSuccess(r.Fst(), r.Snd())
	})
}

// Map applies f to the value produced by p
func Map[A, B any](f func(A) B, p Parser[A]) Parser[B] {
	return func(input Input) Result[B] {
		return container.MapMaybe(func(r container.Pair[Input, A]) container.Pair[Input, B] {
			return container.MapPair(f, r)
		}, p(input))
	}
}

// Pure succeeds without consuming input
func Pure[T any](v T) Parser[T] {
	return func(input Input) Result[T] {
		return success(input, v)
	}
}

// Apply runs pf and then pa on what pf left over, applying the function to the value
func Apply[A, B any](pf Parser[func(A) B], pa Parser[A]) Parser[B] {
	return func(input Input) Result[B] {
		rf, ok := pf(input).Get()
		if !ok {
			return failure[B]()
		}
		ra, ok := pa(rf.Fst()).Get()
		if !ok {
			return failure[B]()
		}
		return success(ra.Fst(), rf.Snd()(ra.Snd()))
	}
}

// Lift2 combines the values of pa and pb, run in sequence, with f
func Lift2[A, B, C any](f func(A, B) C, pa Parser[A], pb Parser[B]) Parser[C] {
	curried := func(a A) func(B) C {
		return func(b B) C { return f(a, b) }
	}
	return Apply(Map(curried, pa), pb)
}

// KeepLeft runs pa then pb and keeps pa's value
func KeepLeft[A, B any](pa Parser[A], pb Parser[B]) Parser[A] {
	return Lift2(func(a A, _ B) A { return a }, pa, pb)
}

// KeepRight runs pa then pb and keeps pb's value
func KeepRight[A, B any](pa Parser[A], pb Parser[B]) Parser[B] {
	return Lift2(func(_ A, b B) B { return b }, pa, pb)
}

// Between runs open, p and end in sequence and keeps p's value
func Between[O, T, C any](open Parser[O], p Parser[T], end Parser[C]) Parser[T] {
	return KeepLeft(KeepRight(open, p), end)
}

// Empty always fails
func Empty[T any]() Parser[T] {
	return func(Input) Result[T] {
		return failure[T]()
	}
}

// Alt tries p1 and, if it fails, p2 on the same input
func Alt[T any](p1, p2 Parser[T]) Parser[T] {
	return func(input Input) Result[T] {
		if r := p1(input); r.IsJust() {
			return r
		}
		return p2(input)
	}
}

// Choice tries each parser in order and returns the first success
func Choice[T any](ps ...Parser[T]) Parser[T] {
	return func(input Input) Result[T] {
		for _, p := range ps {
			if r := p(input); r.IsJust() {
				return r
			}
		}
		return failure[T]()
	}
}

// Many applies p zero or more times. It stops at the first failure, or as
// soon as an application succeeds without consuming input; the result of
// that application is dropped.
func Many[T any](p Parser[T]) Parser[container.List[T]] {
	return func(input Input) Result[container.List[T]] {
		values, rest := repeat(p, input)
		return success(rest, container.FromSlice(values))
	}
}

// Some is Many but requires at least one application
func Some[T any](p Parser[T]) Parser[container.List[T]] {
	return func(input Input) Result[container.List[T]] {
		values, rest := repeat(p, input)
		if len(values) == 0 {
			return failure[container.List[T]]()
		}
		return success(rest, container.FromSlice(values))
	}
}

func repeat[T any](p Parser[T], input Input) ([]T, Input) {
	values := make([]T, 0)
	for {
		r, ok := p(input).Get()
		if !ok {
			return values, input
		}
		if !container.Shorter(r.Fst(), input) {
			return values, input
		}
		values = append(values, r.Snd())
		input = r.Fst()
	}
}

// Satisfy consumes one rune if pred accepts it
func Satisfy(pred func(rune) bool) Parser[rune] {
	return func(input Input) Result[rune] {
		h, ok := input.Head().Get()
		if !ok || !pred(h) {
			return failure[rune]()
		}
		return success(input.Tail(), h)
	}
}

// Char matches exactly c
func Char(c rune) Parser[rune] {
	return Satisfy(func(r rune) bool { return r == c })
}

// Literal matches the runes of lit in order
func Literal(lit container.List[rune]) Parser[container.List[rune]] {
	return SequenceAll(container.MapList(Char, lit))
}

// String matches the text s
func String(s string) Parser[container.List[rune]] {
	return Literal(container.FromString(s))
}

// Optional always succeeds: Just(v) if p does, otherwise Nothing without consuming input
func Optional[T any](p Parser[T]) Parser[container.Maybe[T]] {
	return Alt(Map(container.Just[T], p), Pure(container.Nothing[T]()))
}

// Lookahead succeeds when p does but reports the input it was given as remaining
func Lookahead[T any](p Parser[T]) Parser[T] {
	return func(input Input) Result[T] {
		return container.MapMaybe(func(r container.Pair[Input, T]) container.Pair[Input, T] {
			return container.NewPair(input, r.Snd())
		}, p(input))
	}
}

// NotFollowedBy succeeds without consuming input when p fails, and fails when p succeeds
func NotFollowedBy[T any](p Parser[T]) Parser[struct{}] {
	return func(input Input) Result[struct{}] {
		if p(input).IsJust() {
			return failure[struct{}]()
		}
		return success(input, struct{}{})
	}
}

// SequenceAll runs each parser in order on the threaded input and collects their values
func SequenceAll[T any](ps container.List[Parser[T]]) Parser[container.List[T]] {
	return func(input Input) Result[container.List[T]] {
		values := make([]T, 0)
		for _, p := range ps.ToSlice() {
			r, ok := p(input).Get()
			if !ok {
				return failure[container.List[T]]()
			}
			values = append(values, r.Snd())
			input = r.Fst()
		}
		return success(input, container.FromSlice(values))
	}
}

// SepBy1 matches one or more p separated by sep
func SepBy1[T, S any](p Parser[T], sep Parser[S]) Parser[container.List[T]] {
	return Lift2(container.Cons[T], p, Many(KeepRight(sep, p)))
}

// SepBy matches zero or more p separated by sep
func SepBy[T, S any](p Parser[T], sep Parser[S]) Parser[container.List[T]] {
	return Alt(SepBy1(p, sep), Pure(container.Nil[T]()))
}

// Lazy defers building a parser until it is first run. Recursive grammars
// use it to refer to a rule that is not assigned yet.
func Lazy[T any](build func() Parser[T]) Parser[T] {
	return func(input Input) Result[T] {
		return build()(input)
	}
}

// EOF succeeds only at the end of the input
func EOF() Parser[struct{}] {
	return func(input Input) Result[struct{}] {
		if !input.IsEmpty() {
			return failure[struct{}]()
		}
		return success(input, struct{}{})
	}
}
