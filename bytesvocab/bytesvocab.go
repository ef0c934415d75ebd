// Package bytesvocab provides byte-level primitive parsers over
// parsec.Stream[byte], mirroring the teacher's OneOf/NoneOf/Range byte
// predicates (bshepherdson-psec) retyped onto the generic engine. As with
// the chars package, this exists only to exercise and test §4.G/§4.K's
// primitive contract, not as a prebuilt-primitives product (spec.md §1).
package bytesvocab

import (
	"fmt"

	"github.com/goparsec/parsec"
)

// OneOf matches any single byte present in options.
func OneOf(options string) parsec.Parser[byte, byte] {
	return parsec.Satisfy(func(b byte) bool {
		return indexByte(options, b) >= 0
	}, fmt.Sprintf("one of %q", options))
}

// NoneOf matches any single byte NOT present in blacklist.
func NoneOf(blacklist string) parsec.Parser[byte, byte] {
	return parsec.Satisfy(func(b byte) bool {
		return indexByte(blacklist, b) < 0
	}, fmt.Sprintf("none of %q", blacklist))
}

// Range matches any byte in [lo, hi] inclusive.
func Range(lo, hi byte) parsec.Parser[byte, byte] {
	return parsec.Satisfy(func(b byte) bool { return lo <= b && b <= hi }, fmt.Sprintf("range(%c..%c)", lo, hi))
}

// Digit matches one ASCII digit byte.
func Digit() parsec.Parser[byte, byte] { return Range('0', '9') }

// Alpha matches one ASCII letter byte.
func Alpha() parsec.Parser[byte, byte] {
	return parsec.Or(Range('a', 'z'), Range('A', 'Z')).Named("alpha")
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
