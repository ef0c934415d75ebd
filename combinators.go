package parsec

import "fmt"

// Return succeeds with v, consuming nothing (§4.G).
func Return[T any, V any](v V) Parser[T, V] {
	return NewParser("return", func(s Stream[T], _ *Context) Result[T, V] {
		return Success[T, V](v, s, nil)
	})
}

// Fail always fails with Message(msg) at the current position, consuming
// nothing (§4.G).
func Fail[T any, V any](msg string) Parser[T, V] {
	return NewParser("fail", func(s Stream[T], _ *Context) Result[T, V] {
		return Failure[T, V](MessageError(s.Pos(), "%s", msg), s)
	})
}

// GetPosition succeeds with the current position, consuming nothing
// (§4.G).
func GetPosition[T any]() Parser[T, Position] {
	return NewParser("getPosition", func(s Stream[T], _ *Context) Result[T, Position] {
		return Success[T, Position](s.Pos(), s, nil)
	})
}

// EOF succeeds with struct{}{} if the stream is at end; otherwise fails
// Expected("end of input"), consuming nothing (§4.G).
func EOF[T any]() Parser[T, struct{}] {
	return NewParser("eof", func(s Stream[T], _ *Context) Result[T, struct{}] {
		if s.AtEnd() {
			return Success[T, struct{}](struct{}{}, s, nil)
		}
		return Failure[T, struct{}](ExpectedError(s.Pos(), "end of input"), s)
	})
}

// AnyToken consumes and returns one token. At end of input it fails
// EndOfInput (§4.G).
func AnyToken[T any]() Parser[T, T] {
	return NewParser("anyToken", func(s Stream[T], _ *Context) Result[T, T] {
		if s.AtEnd() {
			return Failure[T, T](EndOfInputError(s.Pos()), s)
		}
		v := s.Current()
		return Success[T, T](v, s.Advance(), nil)
	})
}

// Satisfy consumes one token if predicate accepts it, like AnyToken, but
// fails with both Expected(label) and Unexpected(token) when the
// predicate rejects — and consumes nothing on rejection (§4.G).
func Satisfy[T any](predicate func(T) bool, label string) Parser[T, T] {
	return NewParser("satisfy("+label+")", func(s Stream[T], _ *Context) Result[T, T] {
		if s.AtEnd() {
			return Failure[T, T](EndOfInputError(s.Pos()), s)
		}
		c := s.Current()
		if !predicate(c) {
			err := &ParseError{
				Pos: s.Pos(),
				Messages: []ErrorMessage{
					expectedMsg(label),
					unexpectedMsg(fmt.Sprintf("%v", c)),
				},
			}
			return Failure[T, T](err, s)
		}
		return Success[T, T](c, s.Advance(), nil)
	})
}
