package parsec

// Many repeatedly runs p, accumulating successes into a slice (§4.I).
//
// A success that consumes no input is a grammar-authoring error (p would
// loop forever): Many fails fatally with a Message identifying the guard,
// per §8 invariant 1. A failure that consumed input propagates as Many's
// own failure. A failure that consumed nothing ends the loop normally,
// and Many succeeds with everything accumulated so far, carrying the
// merged error from the terminating failure (and any carried errors from
// successful iterations) so diagnostics survive even though the loop
// succeeded overall.
func Many[T any, V any](p Parser[T, V]) Parser[T, []V] {
	return ManyMin(p, 0)
}

// Many1 requires at least one success; equivalent to one p followed by
// Many(p) (§4.I).
func Many1[T any, V any](p Parser[T, V]) Parser[T, []V] {
	return ManyMin(p, 1)
}

// ManyMin is Many with a caller-supplied minimum count.
func ManyMin[T any, V any](p Parser[T, V], min int) Parser[T, []V] {
	return Parser[T, []V]{
		name: "many(" + p.name + ")",
		run: func(s Stream[T], ctx *Context) Result[T, []V] {
			results := make([]V, 0)
			var carried *ParseError
			cur := s
			for {
				if ctx.cancelled() {
					return Failure[T, []V](cancelledError(cur.Pos()), cur)
				}
				res := p.run(cur, ctx)
				if res.IsSuccess() {
					if res.Remaining().Equal(cur) {
						return Failure[T, []V](MessageError(cur.Pos(),
							"many: inner parser %q succeeded without consuming input; this would loop forever", p.name), cur)
					}
					v, _ := res.Value()
					results = append(results, v)
					carried = MergeErrors(carried, res.CarriedError())
					cur = res.Remaining()
					continue
				}
				if !res.Remaining().Equal(cur) {
					return castFailure[T, V, []V](res)
				}
				carried = MergeErrors(carried, res.Error())
				break
			}
			if len(results) < min {
				return Failure[T, []V](carried, cur)
			}
			return Success[T, []V](results, cur, carried)
		},
	}
}

// Count runs p exactly n times, failing if any iteration fails.
func Count[T any, V any](p Parser[T, V], n int) Parser[T, []V] {
	return Parser[T, []V]{
		name: "count",
		run: func(s Stream[T], ctx *Context) Result[T, []V] {
			results := make([]V, 0, n)
			cur := s
			var carried *ParseError
			for i := 0; i < n; i++ {
				res := p.run(cur, ctx)
				if !res.IsSuccess() {
					return castFailure[T, V, []V](res)
				}
				v, _ := res.Value()
				results = append(results, v)
				carried = MergeErrors(carried, res.CarriedError())
				cur = res.Remaining()
			}
			return Success[T, []V](results, cur, carried)
		},
	}
}

// SepBy matches zero or more p separated by sep: either empty, or
// p (sep p)*. It does not consume a trailing separator (§4.I, §8 S8).
func SepBy[T any, V any, S any](p Parser[T, V], sep Parser[T, S]) Parser[T, []V] {
	return sepByMin(p, sep, 0)
}

// SepBy1 is SepBy requiring at least one p.
func SepBy1[T any, V any, S any](p Parser[T, V], sep Parser[T, S]) Parser[T, []V] {
	return sepByMin(p, sep, 1)
}

func sepByMin[T any, V any, S any](p Parser[T, V], sep Parser[T, S], min int) Parser[T, []V] {
	// Try wraps the (sep p) pair so that a trailing separator not followed
	// by another p rewinds rather than surfacing as a consuming failure:
	// without it, "1,2,3," would fail instead of stopping before the comma.
	rest := Many(Try(SkipThen(sep, p)))
	combined := Bind(Optional(p), func(first Maybe[V]) Parser[T, []V] {
		if !first.Valid {
			return Return[T, []V](nil)
		}
		return Map(rest, func(tail []V) []V {
			return append([]V{first.Value}, tail...)
		})
	})
	return Filter(combined, func(vs []V) bool { return len(vs) >= min },
		"").Named("sepBy(" + p.name + ", " + sep.name + ")")
}

// EndBy matches zero or more p, each followed by sep: (p sep)* (§4.I).
func EndBy[T any, V any, S any](p Parser[T, V], sep Parser[T, S]) Parser[T, []V] {
	return Many(ThenSkip(p, sep)).Named("endBy(" + p.name + ", " + sep.name + ")")
}

// EndBy1 is EndBy requiring at least one p.
func EndBy1[T any, V any, S any](p Parser[T, V], sep Parser[T, S]) Parser[T, []V] {
	return Many1(ThenSkip(p, sep)).Named("endBy1(" + p.name + ", " + sep.name + ")")
}

// SepEndBy matches zero or more p, separated by sep, with an optional
// single trailing sep. A second trailing separator is rejected: only one
// optional trailing sep is consumed, per the decision recorded in
// DESIGN.md for this open question.
func SepEndBy[T any, V any, S any](p Parser[T, V], sep Parser[T, S]) Parser[T, []V] {
	core := SepBy(p, sep)
	return Bind(core, func(vs []V) Parser[T, []V] {
		return Map(Optional(sep), func(Maybe[S]) []V { return vs })
	}).Named("sepEndBy(" + p.name + ", " + sep.name + ")")
}

// ChainLeft parses term (op term)*, folding left: for binary combiners
// produced by op, "((d1 op d2) op d3) op ..." (§4.I, §8 invariant 7).
func ChainLeft[T any, V any](term Parser[T, V], op Parser[T, func(V, V) V]) Parser[T, V] {
	return Bind(term, func(first V) Parser[T, V] {
		return chainLeftRest(first, term, op)
	}).Named("chainLeft")
}

func chainLeftRest[T any, V any](acc V, term Parser[T, V], op Parser[T, func(V, V) V]) Parser[T, V] {
	return Parser[T, V]{
		name: "chainLeftRest",
		run: func(s Stream[T], ctx *Context) Result[T, V] {
			rop := op.run(s, ctx)
			if !rop.IsSuccess() {
				if !rop.Remaining().Equal(s) {
					return castFailure[T, func(V, V) V, V](rop)
				}
				return Success[T, V](acc, s, rop.Error())
			}
			combine, _ := rop.Value()
			rterm := term.run(rop.Remaining(), ctx)
			if !rterm.IsSuccess() {
				return castFailure[T, V, V](rterm)
			}
			v, _ := rterm.Value()
			next := combine(acc, v)
			return chainLeftRest(next, term, op).run(rterm.Remaining(), ctx)
		},
	}
}

// ChainRight parses term (op chainRight)?, recursing right: for binary
// combiners produced by op, "d1 op (d2 op (d3 op ...))" (§4.I, §8
// invariant 7).
func ChainRight[T any, V any](term Parser[T, V], op Parser[T, func(V, V) V]) Parser[T, V] {
	var self Parser[T, V]
	self = Parser[T, V]{
		name: "chainRight",
		run: func(s Stream[T], ctx *Context) Result[T, V] {
			rterm := term.run(s, ctx)
			if !rterm.IsSuccess() {
				return rterm
			}
			left, _ := rterm.Value()
			rop := op.run(rterm.Remaining(), ctx)
			if !rop.IsSuccess() {
				if !rop.Remaining().Equal(rterm.Remaining()) {
					return castFailure[T, func(V, V) V, V](rop)
				}
				return Success[T, V](left, rterm.Remaining(), MergeErrors(rterm.CarriedError(), rop.Error()))
			}
			combine, _ := rop.Value()
			rright := self.run(rop.Remaining(), ctx)
			if !rright.IsSuccess() {
				return rright
			}
			right, _ := rright.Value()
			return Success[T, V](combine(left, right), rright.Remaining(), rright.CarriedError())
		},
	}
	return self
}

// Maybe is the explicit absence-aware result of Optional, following Go's
// idiomatic (value, ok) convention as a single value rather than a bare
// pointer (which would not distinguish "absent" from "present zero
// value" as clearly in generic code).
type Maybe[V any] struct {
	Value V
	Valid bool
}

// Optional attempts p. On success, returns its value wrapped as present.
// On a zero-consume failure, returns absence without consuming input. On
// a failure that consumed input, the failure propagates (§4.I).
func Optional[T any, V any](p Parser[T, V]) Parser[T, Maybe[V]] {
	return Parser[T, Maybe[V]]{
		name: "optional(" + p.name + ")",
		run: func(s Stream[T], ctx *Context) Result[T, Maybe[V]] {
			res := p.run(s, ctx)
			if res.IsSuccess() {
				v, _ := res.Value()
				return Success[T, Maybe[V]](Maybe[V]{Value: v, Valid: true}, res.Remaining(), res.CarriedError())
			}
			if !res.Remaining().Equal(s) {
				return castFailure[T, V, Maybe[V]](res)
			}
			return Success[T, Maybe[V]](Maybe[V]{}, s, res.Error())
		},
	}
}

// OptionalOr is Optional but substitutes def for an absent value instead
// of returning a Maybe (§4.I).
func OptionalOr[T any, V any](p Parser[T, V], def V) Parser[T, V] {
	return Map(Optional(p), func(m Maybe[V]) V {
		if m.Valid {
			return m.Value
		}
		return def
	}).Named("optionalOr(" + p.name + ")")
}

// Pair holds the two results of Then.
type Pair[A any, B any] struct {
	First  A
	Second B
}

// Then runs a then b in sequence, returning both values (§4.I).
func Then[T any, A any, B any](a Parser[T, A], b Parser[T, B]) Parser[T, Pair[A, B]] {
	return Bind(a, func(av A) Parser[T, Pair[A, B]] {
		return Map(b, func(bv B) Pair[A, B] { return Pair[A, B]{First: av, Second: bv} })
	}).Named("then")
}

// ThenSkip runs a then b in sequence, keeping only a's value (§4.I).
func ThenSkip[T any, A any, B any](a Parser[T, A], b Parser[T, B]) Parser[T, A] {
	return Bind(a, func(av A) Parser[T, A] {
		return Map(b, func(B) A { return av })
	}).Named("thenSkip")
}

// SkipThen runs a then b in sequence, keeping only b's value (§4.I).
func SkipThen[T any, A any, B any](a Parser[T, A], b Parser[T, B]) Parser[T, B] {
	return Bind(a, func(A) Parser[T, B] { return b }).Named("skipThen")
}

// Between runs open, then inner, then close, returning inner's value
// (§4.I, §4.K).
func Between[T any, O any, V any, C any](open Parser[T, O], close Parser[T, C], inner Parser[T, V]) Parser[T, V] {
	return SkipThen(open, ThenSkip(inner, close)).Named("between")
}
