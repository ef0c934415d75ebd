package parsec

import "fmt"

// Literal matches a fixed sequence of tokens exactly, per comparable T. It
// generalizes the teacher's byte-only literal matcher to any token type.
func Literal[T comparable](target []T) Parser[T, []T] {
	return NewParser(fmt.Sprintf("literal(%v)", target), func(s Stream[T], _ *Context) Result[T, []T] {
		cur := s
		for _, want := range target {
			if cur.AtEnd() || cur.Current() != want {
				return Failure[T, []T](ExpectedError(cur.Pos(), fmt.Sprintf("literal %v", target)), cur)
			}
			cur = cur.Advance()
		}
		return Success[T, []T](target, cur, nil)
	})
}

// StringLiteral matches a literal string against a Stream[rune], producing
// the matched string as its value. It is the rune-stream convenience form
// of Literal.
func StringLiteral(str string) Parser[rune, string] {
	runes := []rune(str)
	return Map(Literal(runes), func([]rune) string { return str }).Named("literal(\"" + str + "\")")
}

// Lexeme runs p, then discards trailing "whitespace" as defined by
// skipTrailing (typically a host grammar's Many(Space)) — §4.K's lexeme
// contract. Only p's value survives.
func Lexeme[T any, V any, S any](p Parser[T, V], skipTrailing Parser[T, S]) Parser[T, V] {
	return ThenSkip(p, skipTrailing).Named("lexeme(" + p.name + ")")
}

// Symbol matches the literal string s on a Stream[rune], then applies the
// Lexeme trailing-space skip — §4.K's symbol contract.
func Symbol[S any](s string, skipTrailing Parser[rune, S]) Parser[rune, string] {
	return Lexeme(StringLiteral(s), skipTrailing).Named("symbol(\"" + s + "\")")
}
