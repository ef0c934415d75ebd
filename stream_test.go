package parsec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCharStreamAdvancesTracksNewlines(t *testing.T) {
	s := NewCharStream("t", "ab\nc")
	require.Equal(t, 'a', s.Current())
	require.Equal(t, Position{Offset: 0, Line: 1, Column: 1, Source: "t"}, s.Pos())

	s1 := s.Advance()
	require.Equal(t, 'b', s1.Current())
	require.Equal(t, Position{Offset: 1, Line: 1, Column: 2, Source: "t"}, s1.Pos())

	s2 := s1.Advance()
	require.Equal(t, '\n', s2.Current())

	s3 := s2.Advance()
	require.Equal(t, 'c', s3.Current())
	require.Equal(t, Position{Offset: 3, Line: 2, Column: 1, Source: "t"}, s3.Pos())
}

func TestCharStreamAdvanceAtEndIsNoop(t *testing.T) {
	s := NewCharStream("t", "")
	require.True(t, s.AtEnd())
	require.True(t, s.Advance().Equal(s))
}

func TestCharStreamEqualComparesSameOffset(t *testing.T) {
	a := NewCharStream("t", "abc")
	b := a.Advance().Advance()
	c := NewCharStream("t", "abc").Advance().Advance()
	require.False(t, a.Equal(b))
	require.True(t, b.Equal(c))
}

func TestByteStreamBulkAdvanceAndSlice(t *testing.T) {
	s := NewByteStream("t", []byte("hello world"))
	got := s.SliceN(5)
	require.Equal(t, []byte("hello"), got)
	// SliceN does not consume.
	require.Equal(t, byte('h'), s.Current())

	advanced := s.AdvanceN(6)
	require.Equal(t, byte('w'), advanced.Current())
}

func TestByteStreamAdvanceNClampsAtEnd(t *testing.T) {
	s := NewByteStream("t", []byte("ab"))
	out := s.AdvanceN(10)
	require.True(t, out.AtEnd())
}

func TestTokenStreamEqualIsReferenceIdentityPlusOffset(t *testing.T) {
	toks := []string{"a", "b", "c"}
	s1 := NewTokenStream("t", toks, nil)
	s2 := NewTokenStream("t", toks, nil)

	require.True(t, s1.Equal(s1))
	require.False(t, s1.Equal(s2), "distinct streams over equal-content slices are not the same sequence")

	advanced := s1.Advance()
	require.False(t, s1.Equal(advanced))
	require.True(t, advanced.Equal(s1.Advance()))
}

func TestTokenStreamEqualHandlesEmptySlice(t *testing.T) {
	s := NewTokenStream[string]("t", nil, nil)
	require.NotPanics(t, func() {
		require.True(t, s.Equal(s))
	})
}

func TestContextPreviewEscapesControlCharacters(t *testing.T) {
	s := NewCharStream("t", "a\nb")
	require.Equal(t, `a\nb`, s.ContextPreview(10))
}

func TestContextPreviewTruncatesWithEllipsis(t *testing.T) {
	s := NewCharStream("t", "abcdef")
	preview := s.ContextPreview(3)
	require.Equal(t, "abc"+previewEllipsis, preview)
}
