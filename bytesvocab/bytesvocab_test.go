package bytesvocab

import (
	"testing"

	"github.com/goparsec/parsec"
	"github.com/stretchr/testify/require"
)

func TestOneOfAcceptsListedBytes(t *testing.T) {
	v, err := parsec.RunBytes(OneOf("abc"), "t", []byte("b"))
	require.Nil(t, err)
	require.Equal(t, byte('b'), v)
}

func TestNoneOfRejectsListedBytes(t *testing.T) {
	_, err := parsec.RunBytes(NoneOf("abc"), "t", []byte("a"))
	require.NotNil(t, err)
}

func TestRangeAcceptsInclusiveBounds(t *testing.T) {
	v, err := parsec.RunBytes(Range('0', '9'), "t", []byte("5"))
	require.Nil(t, err)
	require.Equal(t, byte('5'), v)

	_, err2 := parsec.RunBytes(Range('0', '9'), "t", []byte("a"))
	require.NotNil(t, err2)
}

func TestAlphaAcceptsBothCases(t *testing.T) {
	v, err := parsec.RunBytes(Alpha(), "t", []byte("Z"))
	require.Nil(t, err)
	require.Equal(t, byte('Z'), v)
}
