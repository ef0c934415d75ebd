// Package chars provides a minimal set of rune-level primitive parsers
// over parsec.Stream[rune] — digit/letter/whitespace style building
// blocks. Per spec.md §1, a prebuilt primitive surface is explicitly out
// of scope as a *product*; this package exists only because §4.G/§4.K
// require that such primitives exist for the core combinator contract to
// be exercised and tested.
package chars

import (
	"unicode"

	"github.com/goparsec/parsec"
)

// Char matches a single rune exactly.
func Char(r rune) parsec.Parser[rune, rune] {
	return parsec.Satisfy(func(c rune) bool { return c == r }, string(r))
}

// Digit matches one ASCII digit.
func Digit() parsec.Parser[rune, rune] {
	return parsec.Satisfy(func(c rune) bool { return c >= '0' && c <= '9' }, "digit")
}

// Letter matches one Unicode letter.
func Letter() parsec.Parser[rune, rune] {
	return parsec.Satisfy(unicode.IsLetter, "letter")
}

// AlphaNum matches one Unicode letter or digit.
func AlphaNum() parsec.Parser[rune, rune] {
	return parsec.Satisfy(func(c rune) bool { return unicode.IsLetter(c) || unicode.IsDigit(c) }, "alphanumeric")
}

// Space matches one whitespace rune.
func Space() parsec.Parser[rune, rune] {
	return parsec.Satisfy(unicode.IsSpace, "whitespace")
}

// Spaces matches zero or more whitespace runes, returning them.
func Spaces() parsec.Parser[rune, []rune] {
	return parsec.Many(Space()).Named("spaces")
}

// Spaces1 matches one or more whitespace runes, returning them.
func Spaces1() parsec.Parser[rune, []rune] {
	return parsec.Many1(Space()).Named("spaces1")
}

// Integer matches an optionally-signed run of digits and evaluates it.
func Integer() parsec.Parser[rune, int] {
	sign := parsec.OptionalOr(parsec.Choice(Char('+'), Char('-')), '+')
	digits := parsec.Many1(Digit())
	body := parsec.Then(sign, digits)
	return parsec.Map(body, func(p parsec.Pair[rune, []rune]) int {
		total := 0
		for _, d := range p.Second {
			total = total*10 + int(d-'0')
		}
		if p.First == '-' {
			total = -total
		}
		return total
	}).Named("integer")
}

// Lexeme runs p then discards trailing whitespace, using Spaces as the
// host grammar's whitespace definition (§4.K).
func Lexeme[V any](p parsec.Parser[rune, V]) parsec.Parser[rune, V] {
	return parsec.Lexeme(p, Spaces())
}

// Symbol matches the literal string s, then discards trailing whitespace.
func Symbol(s string) parsec.Parser[rune, string] {
	return parsec.Symbol(s, Spaces())
}
