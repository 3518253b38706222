// Package grammar assembles a JSON value parser from the combinators in
// internal/combinator.
//
// Each production has its own parser. Value dispatches over them with
// left-to-right alternation; because the productions start with disjoint
// characters, the order of the alternatives does not change what is parsed.
// Leading whitespace before a value is not skipped.
package grammar

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	c "github.com/mcncl/jsonpc/internal/combinator"
	"github.com/mcncl/jsonpc/internal/container"
	"github.com/mcncl/jsonpc/internal/errors"
	"github.com/mcncl/jsonpc/internal/models"
)

type runes = container.List[rune]

// Production names one alternative of the value rule
type Production int

const (
	ProductionString Production = iota
	ProductionBool
	ProductionNull
	ProductionNumber
	ProductionArray
	ProductionObject
)

// DefaultOrder is the order Value tries its alternatives in
var DefaultOrder = []Production{
	ProductionString,
	ProductionBool,
	ProductionNull,
	ProductionNumber,
	ProductionArray,
	ProductionObject,
}

var escapes = map[rune]rune{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isNonZeroDigit(r rune) bool { return r >= '1' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isUnescaped(r rune) bool {
	return r != '"' && r != '\\' && r >= 0x20
}

func isEscapeKey(r rune) bool {
	_, ok := escapes[r]
	return ok
}

// Whitespace matches zero or more spaces, tabs, newlines and carriage returns
func Whitespace() c.Parser[runes] {
	return c.Many(c.Satisfy(isSpace))
}

// token matches p and the whitespace around it
func token[T any](p c.Parser[T]) c.Parser[T] {
	return c.Between(Whitespace(), p, Whitespace())
}

// unicodeEscape decodes uXXXX into a single UTF-16 code unit. Surrogate
// pairs spread over two escapes are not combined, and a lone surrogate
// (D800 to DFFF) is not a valid rune in a Go string, so every one of them
// ends up as U+FFFD and the original code unit is lost.
func unicodeEscape() c.Parser[rune] {
	hex4 := c.SequenceAll(container.Replicate(4, c.Satisfy(isHexDigit)))
	return c.KeepRight(c.Char('u'), c.Map(func(xs runes) rune {
		// four hex digits always fit in 16 bits
		v, _ := strconv.ParseUint(container.ToString(xs), 16, 16)
		return rune(v)
	}, hex4))
}

func escapedChar() c.Parser[rune] {
	simple := c.Map(func(r rune) rune { return escapes[r] }, c.Satisfy(isEscapeKey))
	return c.KeepRight(c.Char('\\'), c.Alt(simple, unicodeEscape()))
}

func stringLiteral() c.Parser[string] {
	body := c.Many(c.Alt(c.Satisfy(isUnescaped), escapedChar()))
	return c.Map(container.ToString, c.Between(c.Char('"'), body, c.Char('"')))
}

// String parses a quoted string with escapes
func String() c.Parser[models.JSONValue] {
	return c.Map(func(s string) models.JSONValue { return s }, stringLiteral())
}

// Bool parses true or false
func Bool() c.Parser[models.JSONValue] {
	return c.Alt(
		c.KeepRight(c.String("true"), c.Pure[models.JSONValue](true)),
		c.KeepRight(c.String("false"), c.Pure[models.JSONValue](false)),
	)
}

// Null parses null
func Null() c.Parser[models.JSONValue] {
	return c.KeepRight(c.String("null"), c.Pure[models.JSONValue](nil))
}

func prependMaybe(m container.Maybe[rune], xs runes) runes {
	return container.FoldMaybe(m, xs, func(x rune) runes { return container.Cons(x, xs) })
}

func appendMaybe(xs runes, m container.Maybe[runes]) runes {
	return container.FoldMaybe(m, xs, func(ys runes) runes { return container.Append(xs, ys) })
}

// optionalPart matches marker followed by body, or nothing at all when the
// marker is absent. A marker without a valid body fails.
func optionalPart(marker c.Parser[rune], body c.Parser[runes]) c.Parser[container.Maybe[runes]] {
	return c.Alt(
		c.Map(container.Just[runes], c.Lift2(container.Cons[rune], marker, body)),
		c.KeepRight(c.NotFollowedBy(marker), c.Pure(container.Nothing[runes]())),
	)
}

func numberLiteral() c.Parser[runes] {
	digits := c.Some(c.Satisfy(isDigit))
	zero := c.Map(container.Singleton[rune], c.Char('0'))
	nonZero := c.Lift2(container.Cons[rune], c.Satisfy(isNonZeroDigit), c.Many(c.Satisfy(isDigit)))
	integer := c.Lift2(prependMaybe, c.Optional(c.Char('-')), c.Alt(zero, nonZero))

	fraction := optionalPart(c.Char('.'), digits)
	sign := c.Optional(c.Satisfy(func(r rune) bool { return r == '+' || r == '-' }))
	exponent := optionalPart(
		c.Satisfy(func(r rune) bool { return r == 'e' || r == 'E' }),
		c.Lift2(prependMaybe, sign, digits),
	)

	return c.Lift2(appendMaybe, c.Lift2(appendMaybe, integer, fraction), exponent)
}

// Number parses an integer with optional fraction and exponent as a float64.
// Values beyond the float64 range become +Inf or -Inf.
func Number() c.Parser[models.JSONValue] {
	return c.Map(func(xs runes) models.JSONValue {
		// the literal is well formed, so the only possible error is ErrRange
		f, _ := strconv.ParseFloat(container.ToString(xs), 64)
		return f
	}, numberLiteral())
}

// Array parses a bracketed, comma separated list of values
func Array(value c.Parser[models.JSONValue]) c.Parser[models.JSONValue] {
	elements := c.SepBy(value, token(c.Char(',')))
	return c.Map(func(xs container.List[models.JSONValue]) models.JSONValue {
		return models.JSONArray(xs.ToSlice())
	}, c.Between(c.KeepLeft(c.Char('['), Whitespace()), elements, c.KeepRight(Whitespace(), c.Char(']'))))
}

type member = container.Pair[string, models.JSONValue]

// Object parses a braced, comma separated list of "key": value members.
// A repeated key keeps the last value.
func Object(value c.Parser[models.JSONValue]) c.Parser[models.JSONValue] {
	key := c.KeepLeft(stringLiteral(), Whitespace())
	kv := c.Lift2(container.NewPair[string, models.JSONValue], key, c.KeepRight(c.KeepLeft(c.Char(':'), Whitespace()), value))
	members := c.SepBy(kv, token(c.Char(',')))

	return c.Map(func(xs container.List[member]) models.JSONValue {
		return container.Foldl(xs, func(obj models.JSONObject, m member) models.JSONObject {
			obj[m.Fst()] = m.Snd()
			return obj
		}, make(models.JSONObject))
	}, c.Between(c.KeepLeft(c.Char('{'), Whitespace()), members, c.KeepRight(Whitespace(), c.Char('}'))))
}

// Build returns a value parser that tries the productions in the given
// order. With no arguments it uses DefaultOrder. It panics on a Production
// outside the declared set.
func Build(order ...Production) c.Parser[models.JSONValue] {
	if len(order) == 0 {
		order = DefaultOrder
	}

	var value c.Parser[models.JSONValue]
	self := c.Lazy(func() c.Parser[models.JSONValue] { return value })

	alternatives := make([]c.Parser[models.JSONValue], 0, len(order))
	for _, p := range order {
		switch p {
		case ProductionString:
			alternatives = append(alternatives, String())
		case ProductionBool:
			alternatives = append(alternatives, Bool())
		case ProductionNull:
			alternatives = append(alternatives, Null())
		case ProductionNumber:
			alternatives = append(alternatives, Number())
		case ProductionArray:
			alternatives = append(alternatives, Array(self))
		case ProductionObject:
			alternatives = append(alternatives, Object(self))
		default:
			panic(fmt.Sprintf("grammar: unknown production %d", p))
		}
	}

	value = c.Choice(alternatives...)
	return value
}

var defaultValue = Build()

// Value is the JSON value parser with the alternatives in DefaultOrder
func Value() c.Parser[models.JSONValue] {
	return defaultValue
}

// ParseValue parses input as a JSON value and passes the outcome to one of
// the two continuations. A match may leave part of the input unconsumed.
func ParseValue[R any](input c.Input, onFailure R, onSuccess func(remaining c.Input, value models.JSONValue) R) R {
	return c.Run(defaultValue, input, onFailure, onSuccess)
}

// Parse parses text as a JSON value. It returns errors.ErrNoMatch if no
// value could be matched at the start of text. The remaining input is sliced
// from text itself, so invalid UTF-8 after the value is returned unchanged.
func Parse(text string) (models.Match, error) {
	type outcome struct {
		match models.Match
		ok    bool
	}
	out := ParseValue(container.FromString(text), outcome{}, func(rest c.Input, v models.JSONValue) outcome {
		consumed := utf8.RuneCountInString(text) - rest.Len()
		return outcome{match: models.Match{Value: v, Remaining: text[runeOffset(text, consumed):]}, ok: true}
	})
	if !out.ok {
		return models.Match{}, errors.ErrNoMatch
	}
	return out.match, nil
}

// runeOffset returns the byte offset of the n-th rune of text. Each invalid
// byte counts as one rune, the same way a []rune conversion decodes it.
func runeOffset(text string, n int) int {
	offset := 0
	for ; n > 0 && offset < len(text); n-- {
		_, size := utf8.DecodeRuneInString(text[offset:])
		offset += size
	}
	return offset
}
