package parsec

import "fmt"

// Or runs a; if it succeeds, the result is returned carrying a's error (so
// it can merge into a later failure's diagnostics). If a fails WITHOUT
// consuming input, b is tried and the two errors are merged. If a fails
// HAVING consumed input, its failure is surfaced verbatim and b is never
// tried — this committed-choice discipline is the defining Parsec
// property (§4.H, §8 invariant 2).
func Or[T any, V any](a, b Parser[T, V]) Parser[T, V] {
	return Parser[T, V]{
		name: a.name + " or " + b.name,
		run: func(s Stream[T], ctx *Context) Result[T, V] {
			if ctx.cancelled() {
				return Failure[T, V](cancelledError(s.Pos()), s)
			}
			ra := a.run(s, ctx)
			if ra.IsSuccess() {
				return ra
			}
			if !ra.Remaining().Equal(s) {
				// a consumed input before failing: commit to a's failure.
				return ra
			}
			rb := b.run(s, ctx)
			if rb.IsSuccess() {
				v, _ := rb.Value()
				return Success[T, V](v, rb.Remaining(), MergeErrors(ra.Error(), rb.CarriedError()))
			}
			return Failure[T, V](MergeErrors(ra.Error(), rb.Error()), rb.Remaining())
		},
	}
}

// Try runs p; on failure it rewinds the reported remaining stream to the
// original input, turning a failure that consumed input into a
// zero-consume one. Success is unchanged. Pairing Try(a).Or(b) recovers
// full backtracking alternation when a and b share a prefix (§4.H,
// §8 invariant 3).
func Try[T any, V any](p Parser[T, V]) Parser[T, V] {
	return Parser[T, V]{
		name: "try(" + p.name + ")",
		run: func(s Stream[T], ctx *Context) Result[T, V] {
			res := p.run(s, ctx)
			if res.IsSuccess() {
				return res
			}
			return Failure[T, V](res.Error(), s)
		},
	}
}

// Choice left-folds Or across ps, in order (§4.H). Choice() with no
// arguments always fails at the current position.
func Choice[T any, V any](ps ...Parser[T, V]) Parser[T, V] {
	if len(ps) == 0 {
		return NewParser("choice()", func(s Stream[T], _ *Context) Result[T, V] {
			return Failure[T, V](MessageError(s.Pos(), "no alternatives"), s)
		})
	}
	out := ps[0]
	for _, p := range ps[1:] {
		out = Or(out, p)
	}
	return out
}

// Lookahead runs p and, on success, returns its value but reports the
// original input as remaining: a zero-consume observation. Failure is
// unchanged (§4.H, §8 invariant 4).
func Lookahead[T any, V any](p Parser[T, V]) Parser[T, V] {
	return Parser[T, V]{
		name: "lookahead(" + p.name + ")",
		run: func(s Stream[T], ctx *Context) Result[T, V] {
			res := p.run(s, ctx)
			if !res.IsSuccess() {
				return res
			}
			v, _ := res.Value()
			return Success[T, V](v, s, res.CarriedError())
		},
	}
}

// NotFollowedBy runs p; if p succeeds, NotFollowedBy fails with
// Unexpected(p's name + " succeeded") at the original position; if p
// fails, NotFollowedBy succeeds with struct{}{} at the original position.
// It is always zero-consume (§4.H).
func NotFollowedBy[T any, V any](p Parser[T, V]) Parser[T, struct{}] {
	return Parser[T, struct{}]{
		name: "notFollowedBy(" + p.name + ")",
		run: func(s Stream[T], ctx *Context) Result[T, struct{}] {
			res := p.run(s, ctx)
			if res.IsSuccess() {
				msg := unexpectedMsg(fmt.Sprintf("%s succeeded", p.name))
				return Failure[T, struct{}](NewParseError(s.Pos(), msg), s)
			}
			return Success[T, struct{}](struct{}{}, s, nil)
		},
	}
}

// (Parser method forms, for the fluent style some callers prefer.)

// Or is the method form of the package-level Or.
func (p Parser[T, V]) Or(q Parser[T, V]) Parser[T, V] { return Or(p, q) }
