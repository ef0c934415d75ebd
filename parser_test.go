package parsec

import (
	"testing"

	"github.com/goparsec/parsec/chars"
	"github.com/stretchr/testify/require"
)

func TestMapTransformsSuccessfulValue(t *testing.T) {
	p := Map(chars.Digit(), func(r rune) int { return int(r - '0') })
	v, err := RunString(p, "t", "7")
	require.Nil(t, err)
	require.Equal(t, 7, v)
}

func TestMapPassesFailureThrough(t *testing.T) {
	p := Map(chars.Digit(), func(r rune) int { return int(r - '0') })
	_, err := RunString(p, "t", "x")
	require.NotNil(t, err)
}

func TestBindSequencesAndMergesCarriedErrors(t *testing.T) {
	p := Bind(chars.Digit(), func(d rune) Parser[rune, string] {
		return Map(chars.Letter(), func(l rune) string { return string(d) + string(l) })
	})
	v, err := RunString(p, "t", "7a")
	require.Nil(t, err)
	require.Equal(t, "7a", v)
}

func TestBindPropagatesFirstStageFailure(t *testing.T) {
	p := Bind(chars.Digit(), func(d rune) Parser[rune, string] {
		return Return[rune, string]("unreached")
	})
	_, err := RunString(p, "t", "x")
	require.NotNil(t, err)
}

func TestBindPropagatesSecondStageFailure(t *testing.T) {
	p := Bind(chars.Digit(), func(d rune) Parser[rune, rune] {
		return chars.Letter()
	})
	_, err := RunString(p, "t", "77")
	require.NotNil(t, err)
}

func TestFilterRejectsValuesFailingPredicate(t *testing.T) {
	even := Filter(Map(chars.Digit(), func(r rune) int { return int(r - '0') }),
		func(n int) bool { return n%2 == 0 }, "even digit")
	_, err := RunString(even, "t", "3")
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "even digit")

	v, err2 := RunString(even, "t", "4")
	require.Nil(t, err2)
	require.Equal(t, 4, v)
}

func TestFilterRejectionReflectsConsumedPosition(t *testing.T) {
	// twoDigits consumes two tokens before the predicate ever runs; a
	// rejection must report that consumed position, not the pre-p one.
	twoDigits := Map(Then(chars.Digit(), chars.Digit()), func(pr Pair[rune, rune]) string {
		return string(pr.First) + string(pr.Second)
	})
	never := Filter(twoDigits, func(string) bool { return false }, "never")

	s := NewCharStream("t", "12x")
	res := never.Parse(s, DefaultContext())
	require.False(t, res.IsSuccess())
	require.Equal(t, 2, res.Remaining().Pos().Offset,
		"the predicate ran after twoDigits consumed \"12\"; the failure must report that position")
}

func TestFilterRejectionCommitsOrToFailure(t *testing.T) {
	twoDigits := Map(Then(chars.Digit(), chars.Digit()), func(pr Pair[rune, rune]) string {
		return string(pr.First) + string(pr.Second)
	})
	never := Filter(twoDigits, func(string) bool { return false }, "never")
	altRan := false
	alt := NewParser("alt", func(s Stream[rune], _ *Context) Result[rune, string] {
		altRan = true
		return Success[rune, string]("fallback", s, nil)
	})
	p := Or(never, alt)

	_, err := RunString(p, "t", "12x")
	require.NotNil(t, err, "Filter consumed input before rejecting, so Or must surface that failure")
	require.False(t, altRan, "the alternative must never run once the first branch has consumed input before failing")
}

func TestWithExpectedReplacesMessagesOnFailureOnly(t *testing.T) {
	p := chars.Digit().WithExpected("a digit")
	_, err := RunString(p, "t", "x")
	require.NotNil(t, err)
	require.Len(t, err.Messages, 1)
	require.Equal(t, Expected, err.Messages[0].Kind)
	require.Equal(t, "a digit", err.Messages[0].Text)
}

func TestWithContextPrependsLabelOnFailureOnly(t *testing.T) {
	p := chars.Digit().WithContext("number")
	_, err := RunString(p, "t", "x")
	require.NotNil(t, err)
	require.Equal(t, []string{"number"}, err.Context)
}

func TestNamedOnlyAffectsDiagnosticName(t *testing.T) {
	p := chars.Digit().Named("myDigit")
	require.Equal(t, "myDigit", p.Name())
	v, err := RunString(p, "t", "5")
	require.Nil(t, err)
	require.Equal(t, '5', v)
}

func TestEOFFailsWithRemainingInput(t *testing.T) {
	_, err := RunString(EOF[rune](), "t", "x")
	require.NotNil(t, err)
}

func TestAnyTokenConsumesOneToken(t *testing.T) {
	v, err := RunString(AnyToken[rune](), "t", "q")
	require.Nil(t, err)
	require.Equal(t, 'q', v)
}

func TestAnyTokenFailsAtEndOfInput(t *testing.T) {
	_, err := RunString(AnyToken[rune](), "t", "")
	require.NotNil(t, err)
}

func TestGetPositionDoesNotConsume(t *testing.T) {
	p := ThenSkip(GetPosition[rune](), chars.Char('a'))
	v, err := RunString(p, "t", "a")
	require.Nil(t, err)
	require.Equal(t, 0, v.Offset)
}
