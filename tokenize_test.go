package parsec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLiteralMatchesExactSequence(t *testing.T) {
	p := Literal([]byte("GET"))
	v, err := RunBytes(p, "t", []byte("GET"))
	require.Nil(t, err)
	require.Equal(t, []byte("GET"), v)
}

func TestLiteralFailsOnMismatch(t *testing.T) {
	p := Literal([]byte("GET"))
	_, err := RunBytes(p, "t", []byte("POST"))
	require.NotNil(t, err)
}

func TestStringLiteralMatchesRuneStream(t *testing.T) {
	v, err := RunString(StringLiteral("hello"), "t", "hello")
	require.Nil(t, err)
	require.Equal(t, "hello", v)
}

func TestLexemeDiscardsTrailingWhitespace(t *testing.T) {
	ws := Many(Satisfy(func(r rune) bool { return r == ' ' }, "space"))
	p := Lexeme(StringLiteral("foo"), ws)
	v, err := RunString(p, "t", "foo   ")
	require.Nil(t, err)
	require.Equal(t, "foo", v)
}

func TestSymbolMatchesLiteralAndSkipsTrailing(t *testing.T) {
	ws := Many(Satisfy(func(r rune) bool { return r == ' ' }, "space"))
	p := Symbol("=>", ws)
	v, err := RunString(p, "t", "=>  ")
	require.Nil(t, err)
	require.Equal(t, "=>", v)
}
