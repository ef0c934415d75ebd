package parsec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go4.org/mem"
)

// Stream is an immutable cursor over a sequence of tokens of type T. All
// operations return new values; nothing is mutated in place. Streams are
// cheap to copy: a conforming implementation holds only a reference to its
// backing buffer plus an index and a Position (§5).
//
// Advancing a stream that is AtEnd is a no-op: it must return a stream equal
// to itself.
type Stream[T any] interface {
	// Pos returns the current position.
	Pos() Position
	// AtEnd reports whether the stream has no more tokens.
	AtEnd() bool
	// Current returns the token under the cursor. Its value is unspecified
	// (and must not be observed) when AtEnd is true.
	Current() T
	// Advance returns a new stream positioned one token further along. At
	// end of input, it returns a stream equal to the receiver.
	Advance() Stream[T]
	// Equal reports whether two streams reference the same underlying
	// sequence at the same offset.
	Equal(other Stream[T]) bool
	// ContextPreview renders up to maxLen tokens starting at the cursor,
	// for diagnostics. Control characters are escaped for text streams;
	// bytes are hex-encoded for byte streams. A truncated preview is
	// suffixed with an ellipsis marker.
	ContextPreview(maxLen int) string
}

const previewEllipsis = "…"

func escapePreviewRune(r rune) string {
	switch r {
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	}
	if r < 0x20 || r == 0x7f {
		return fmt.Sprintf(`\x%02x`, r)
	}
	return string(r)
}

// CharStream is a Stream[rune] over a UTF-8 string source.
type CharStream struct {
	src    string
	buf    mem.RO // reference-only view over src, shared across copies
	off    int    // byte offset into src
	curr   rune
	size   int // byte width of curr, 0 at end
	pos    Position
}

// NewCharStream builds a CharStream over str, attributing positions to the
// given source name (typically a filename, used only in error rendering).
func NewCharStream(source, str string) *CharStream {
	cs := &CharStream{
		src: str,
		buf: mem.S(str),
		pos: InitialPosition(source),
	}
	cs.curr, cs.size = utf8.DecodeRuneInString(str)
	return cs
}

func (s *CharStream) Pos() Position { return s.pos }
func (s *CharStream) AtEnd() bool   { return s.off >= len(s.src) }
func (s *CharStream) Current() rune { return s.curr }

func (s *CharStream) Advance() Stream[rune] {
	if s.AtEnd() {
		return s
	}
	nextOff := s.off + s.size
	next := &CharStream{
		src: s.src,
		buf: s.buf,
		off: nextOff,
		pos: s.pos.AdvanceText(s.curr),
	}
	next.curr, next.size = utf8.DecodeRuneInString(s.src[nextOff:])
	return next
}

func (s *CharStream) Equal(other Stream[rune]) bool {
	o, ok := other.(*CharStream)
	if !ok {
		return false
	}
	return s.buf.EqualString(o.src) && s.off == o.off
}

func (s *CharStream) ContextPreview(maxLen int) string {
	rest := s.src[s.off:]
	var b strings.Builder
	count := 0
	truncated := false
	for _, r := range rest {
		if count >= maxLen {
			truncated = true
			break
		}
		b.WriteString(escapePreviewRune(r))
		count++
	}
	if truncated {
		b.WriteString(previewEllipsis)
	}
	return b.String()
}

// ByteStream is a Stream[byte] over a raw byte buffer, with no textual
// interpretation. Position tracking still advances Line/Column per §4.B's
// convention (one token per "column"), but callers must not extract source
// lines from it for error rendering.
type ByteStream struct {
	buf mem.RO
	off int
	pos Position
}

// NewByteStream builds a ByteStream over buf, attributing positions to the
// given source name.
func NewByteStream(source string, buf []byte) *ByteStream {
	return &ByteStream{buf: mem.B(buf), pos: InitialPosition(source)}
}

func (s *ByteStream) Pos() Position  { return s.pos }
func (s *ByteStream) AtEnd() bool    { return s.off >= s.buf.Len() }
func (s *ByteStream) Current() byte {
	if s.AtEnd() {
		return 0
	}
	return s.buf.At(s.off)
}

func (s *ByteStream) Advance() Stream[byte] {
	if s.AtEnd() {
		return s
	}
	return &ByteStream{buf: s.buf, off: s.off + 1, pos: s.pos.AdvanceOpaque()}
}

// AdvanceN returns a stream advanced by n bytes in bulk (clamped to the end
// of the buffer), per §4.B's bulk-advance requirement for byte streams.
func (s *ByteStream) AdvanceN(n int) *ByteStream {
	out := s
	for i := 0; i < n && !out.AtEnd(); i++ {
		out = out.Advance().(*ByteStream)
	}
	return out
}

// SliceN returns the next n bytes (or fewer, at end of input) without
// advancing the stream.
func (s *ByteStream) SliceN(n int) []byte {
	end := s.off + n
	if end > s.buf.Len() {
		end = s.buf.Len()
	}
	return []byte(s.buf.Slice(s.off, end).StringCopy()) // copy out for caller ownership
}

func (s *ByteStream) Equal(other Stream[byte]) bool {
	o, ok := other.(*ByteStream)
	if !ok {
		return false
	}
	return s.buf.StringCopy() == o.buf.StringCopy() && s.off == o.off
}

func (s *ByteStream) ContextPreview(maxLen int) string {
	n := maxLen
	if s.off+n > s.buf.Len() {
		n = s.buf.Len() - s.off
	}
	truncated := s.off+maxLen < s.buf.Len()
	slice := s.buf.Slice(s.off, s.off+n)
	var b strings.Builder
	for i := 0; i < slice.Len(); i++ {
		fmt.Fprintf(&b, "%02x", slice.At(i))
	}
	if truncated {
		b.WriteString(previewEllipsis)
	}
	return b.String()
}

// TokenStream is a generic Stream[T] over an arbitrary ordered sequence,
// with a user-supplied function describing how consuming one token advances
// the position (e.g. treating a delimiter token as a "newline" for a
// line-oriented token stream).
type TokenStream[T any] struct {
	toks    []T
	off     int
	pos     Position
	advance func(Position, T) Position
	id      *struct{} // identifies the underlying sequence, shared by all Advance()s
}

// NewTokenStream builds a TokenStream over toks. advance computes the next
// position given the current one and the token being consumed; pass nil to
// use Position.AdvanceOpaque for every token.
func NewTokenStream[T any](source string, toks []T, advance func(Position, T) Position) *TokenStream[T] {
	if advance == nil {
		advance = func(p Position, _ T) Position { return p.AdvanceOpaque() }
	}
	return &TokenStream[T]{toks: toks, pos: InitialPosition(source), advance: advance, id: new(struct{})}
}

func (s *TokenStream[T]) Pos() Position { return s.pos }
func (s *TokenStream[T]) AtEnd() bool   { return s.off >= len(s.toks) }

func (s *TokenStream[T]) Current() T {
	var zero T
	if s.AtEnd() {
		return zero
	}
	return s.toks[s.off]
}

func (s *TokenStream[T]) Advance() Stream[T] {
	if s.AtEnd() {
		return s
	}
	return &TokenStream[T]{
		toks:    s.toks,
		off:     s.off + 1,
		pos:     s.advance(s.pos, s.toks[s.off]),
		advance: s.advance,
		id:      s.id,
	}
}

func (s *TokenStream[T]) Equal(other Stream[T]) bool {
	o, ok := other.(*TokenStream[T])
	if !ok {
		return false
	}
	return s.id == o.id && s.off == o.off
}

func (s *TokenStream[T]) ContextPreview(maxLen int) string {
	n := maxLen
	if s.off+n > len(s.toks) {
		n = len(s.toks) - s.off
	}
	truncated := s.off+maxLen < len(s.toks)
	var b strings.Builder
	fmt.Fprintf(&b, "%v", s.toks[s.off:s.off+n])
	if truncated {
		b.WriteString(previewEllipsis)
	}
	return b.String()
}
