package parsec

import (
	"testing"

	"github.com/goparsec/parsec/chars"
	"github.com/stretchr/testify/require"
)

func TestManyAccumulatesZeroOrMore(t *testing.T) {
	p := Many(chars.Digit())
	v, err := RunString(ThenSkip(p, EOF[rune]()), "t", "")
	require.Nil(t, err)
	require.Equal(t, []rune{}, v)

	v2, err := RunString(ThenSkip(Many(chars.Digit()), EOF[rune]()), "t", "123")
	require.Nil(t, err)
	require.Equal(t, []rune{'1', '2', '3'}, v2)
}

func TestMany1RequiresAtLeastOne(t *testing.T) {
	_, err := RunString(Many1(chars.Digit()), "t", "")
	require.NotNil(t, err)
}

func TestManyFailsFatallyOnZeroConsumeInnerSuccess(t *testing.T) {
	zeroConsume := Return[rune, rune]('z')
	p := Many(zeroConsume)
	_, err := RunString(p, "t", "abc")
	require.NotNil(t, err, "an inner parser that always succeeds without consuming must not loop forever")
}

func TestManyPropagatesConsumingFailure(t *testing.T) {
	// On "ay", the 'a'-then-'z' branch consumes 'a' before failing on 'y'.
	inner := Try(chars.Char('x'))
	consuming := Or(inner, SkipThen(chars.Char('a'), chars.Char('z')))
	_, err := RunString(Many(consuming), "t", "ay")
	require.NotNil(t, err)
}

func TestSepByNoTrailingSeparator(t *testing.T) {
	p := SepBy(chars.Digit(), chars.Char(','))
	v, err := RunString(p, "t", "1,2,3")
	require.Nil(t, err)
	require.Equal(t, []rune{'1', '2', '3'}, v)
}

func TestSepByEmpty(t *testing.T) {
	p := SepBy(chars.Digit(), chars.Char(','))
	v, err := RunString(ThenSkip(p, EOF[rune]()), "t", "")
	require.Nil(t, err)
	require.Len(t, v, 0)
}

func TestSepBy1RequiresAtLeastOne(t *testing.T) {
	_, err := RunString(SepBy1(chars.Digit(), chars.Char(',')), "t", "")
	require.NotNil(t, err)
}

func TestEndByRequiresTrailingSeparator(t *testing.T) {
	p := ThenSkip(EndBy(chars.Digit(), chars.Char(';')), EOF[rune]())
	v, err := RunString(p, "t", "1;2;3;")
	require.Nil(t, err)
	require.Equal(t, []rune{'1', '2', '3'}, v)

	_, err2 := RunString(p, "t", "1;2;3")
	require.NotNil(t, err2, "EndBy requires every element to be followed by a separator")
}

func TestSepEndByAllowsOneTrailingSeparator(t *testing.T) {
	p := ThenSkip(SepEndBy(chars.Digit(), chars.Char(',')), EOF[rune]())
	v, err := RunString(p, "t", "1,2,3,")
	require.Nil(t, err)
	require.Equal(t, []rune{'1', '2', '3'}, v)
}

func TestChainLeftFoldsLeft(t *testing.T) {
	minus := Map(chars.Char('-'), func(rune) func(int, int) int {
		return func(a, b int) int { return a - b }
	})
	term := Map(chars.Digit(), func(r rune) int { return int(r - '0') })
	p := ChainLeft(term, minus)

	v, err := RunString(p, "t", "9-3-2")
	require.Nil(t, err)
	require.Equal(t, 4, v) // (9-3)-2
}

func TestChainRightFoldsRight(t *testing.T) {
	caret := Map(chars.Char('^'), func(rune) func(int, int) int {
		return intPowTest
	})
	term := Map(chars.Digit(), func(r rune) int { return int(r - '0') })
	p := ChainRight(term, caret)

	v, err := RunString(p, "t", "2^3^2")
	require.Nil(t, err)
	require.Equal(t, 512, v) // 2^(3^2)
}

func intPowTest(base, exp int) int {
	r := 1
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}

func TestOptionalAbsentDoesNotConsume(t *testing.T) {
	p := Then(Optional(chars.Char('a')), chars.Char('b'))
	v, err := RunString(p, "t", "b")
	require.Nil(t, err)
	require.False(t, v.First.Valid)
	require.Equal(t, 'b', v.Second)
}

func TestOptionalOrSubstitutesDefault(t *testing.T) {
	p := OptionalOr(chars.Digit(), '0')
	v, err := RunString(p, "t", "")
	require.Nil(t, err)
	require.Equal(t, '0', v)
}

func TestBetweenKeepsOnlyInnerValue(t *testing.T) {
	p := Between(chars.Char('('), chars.Char(')'), chars.Digit())
	v, err := RunString(p, "t", "(5)")
	require.Nil(t, err)
	require.Equal(t, '5', v)
}
