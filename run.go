package parsec

// Run is the typed top-level entry point: it runs p over s, and requires
// that the whole stream be consumed, mirroring the teacher's ParseString
// "incomplete parse" contract. On success it returns the value and a nil
// error; it never surfaces a carried error here (see DESIGN.md's decision
// on Open Question 3) — inspect Result.CarriedError directly via
// Parser.Parse if that trail is wanted.
func Run[T any, V any](p Parser[T, V], s Stream[T], ctx *Context) (V, *ParseError) {
	res := p.Parse(s, ctx)
	var zero V
	if !res.IsSuccess() {
		return zero, res.Error()
	}
	v, _ := res.Value()
	rem := res.Remaining()
	if !rem.AtEnd() {
		return zero, MessageError(rem.Pos(), "incomplete parse, expected end of input but input remains")
	}
	return v, nil
}

// RunString is a convenience for running a Parser[rune, V] over a named
// string source.
func RunString[V any](p Parser[rune, V], source, input string) (V, *ParseError) {
	return Run(p, NewCharStream(source, input), DefaultContext())
}

// RunBytes is a convenience for running a Parser[byte, V] over a named
// byte buffer.
func RunBytes[V any](p Parser[byte, V], source string, input []byte) (V, *ParseError) {
	return Run(p, NewByteStream(source, input), DefaultContext())
}
