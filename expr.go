package parsec

// Assoc is an infix operator's associativity (§3 Operator Table).
type Assoc int

const (
	AssocLeft Assoc = iota
	AssocRight
	AssocNone
)

type operatorKind int

const (
	opInfix operatorKind = iota
	opPrefix
	opPostfix
)

// Operator is one entry in an OperatorTable level: an infix operator with
// an associativity, or a prefix/postfix unary operator. Build one with
// Infix, Prefix, or Postfix (§3, §6).
type Operator[T any, V any] struct {
	kind   operatorKind
	assoc  Assoc
	infix  Parser[T, func(V, V) V]
	unary  Parser[T, func(V) V]
}

// Infix builds an infix Operator with the given associativity. opParser
// must yield the binary combiner function to apply when it matches.
func Infix[T any, V any](assoc Assoc, opParser Parser[T, func(V, V) V]) Operator[T, V] {
	return Operator[T, V]{kind: opInfix, assoc: assoc, infix: opParser}
}

// Prefix builds a prefix unary Operator. opParser must yield the unary
// combiner function to apply when it matches.
func Prefix[T any, V any](opParser Parser[T, func(V) V]) Operator[T, V] {
	return Operator[T, V]{kind: opPrefix, unary: opParser}
}

// Postfix builds a postfix unary Operator.
func Postfix[T any, V any](opParser Parser[T, func(V) V]) Operator[T, V] {
	return Operator[T, V]{kind: opPostfix, unary: opParser}
}

// OperatorTable is an ordered list of precedence levels, lowest precedence
// first; each level is a set of operators that compete via try-backed
// choice in declaration order (§3, §4.J).
type OperatorTable[T any, V any] [][]Operator[T, V]

// BuildExpressionParser transforms an OperatorTable and a terminal-
// expression parser into a full expression parser, per the
// precedence-climbing algorithm of §4.J: levels are processed from
// highest to lowest precedence (i.e. right-to-left over the declared,
// lowest-first list), each level wrapping the prior result in a unary
// (prefix/postfix) layer and then, if the level declares infix
// operators, a left-fold loop.
//
// Mixing Left and Right associativity within a single level is permitted
// (per an explicit Open Question in the spec this engine implements): the
// loop evaluates Left-associative operators first, then Right, then
// None, on every iteration — this ordering is preserved deliberately for
// compatibility rather than silently normalized away.
func BuildExpressionParser[T any, V any](table OperatorTable[T, V], term Parser[T, V]) Parser[T, V] {
	e := term
	for i := len(table) - 1; i >= 0; i-- {
		e = buildLevel(table[i], e)
	}
	return e
}

func buildLevel[T any, V any](ops []Operator[T, V], higher Parser[T, V]) Parser[T, V] {
	var prefixes, postfixes []Parser[T, func(V) V]
	var lefts, rights, nones []Parser[T, func(V, V) V]
	for _, op := range ops {
		switch op.kind {
		case opPrefix:
			prefixes = append(prefixes, Try(op.unary))
		case opPostfix:
			postfixes = append(postfixes, Try(op.unary))
		case opInfix:
			switch op.assoc {
			case AssocLeft:
				lefts = append(lefts, Try(op.infix))
			case AssocRight:
				rights = append(rights, Try(op.infix))
			case AssocNone:
				nones = append(nones, Try(op.infix))
			}
		}
	}

	unaryWrapped := wrapUnary(prefixes, higher, postfixes)

	if len(lefts) == 0 && len(rights) == 0 && len(nones) == 0 {
		return unaryWrapped
	}

	var level Parser[T, V]
	level = Parser[T, V]{
		name: "exprLevel",
		run: func(s Stream[T], ctx *Context) Result[T, V] {
			first := unaryWrapped.run(s, ctx)
			if !first.IsSuccess() {
				return first
			}
			acc, _ := first.Value()
			carried := first.CarriedError()
			return infixLoop(acc, first.Remaining(), carried, unaryWrapped, lefts, rights, nones, level, ctx)
		},
	}
	return level
}

func tryEach[T any, V any](ops []Parser[T, V], s Stream[T], ctx *Context) (Result[T, V], bool) {
	for _, op := range ops {
		res := op.run(s, ctx)
		if res.IsSuccess() {
			return res, true
		}
	}
	var zero Result[T, V]
	return zero, false
}

func infixLoop[T any, V any](
	acc V,
	s Stream[T],
	carried *ParseError,
	unaryWrapped Parser[T, V],
	lefts, rights, nones []Parser[T, func(V, V) V],
	level Parser[T, V],
	ctx *Context,
) Result[T, V] {
	for {
		if ctx.cancelled() {
			return Failure[T, V](cancelledError(s.Pos()), s)
		}

		if res, ok := tryEach(lefts, s, ctx); ok {
			combine, _ := res.Value()
			rhs := unaryWrapped.run(res.Remaining(), ctx)
			if !rhs.IsSuccess() {
				return castFailure[T, V, V](rhs)
			}
			v, _ := rhs.Value()
			acc = combine(acc, v)
			carried = MergeErrors(carried, MergeErrors(res.CarriedError(), rhs.CarriedError()))
			s = rhs.Remaining()
			continue
		}

		if res, ok := tryEach(rights, s, ctx); ok {
			combine, _ := res.Value()
			rhsRes := level.run(res.Remaining(), ctx)
			if !rhsRes.IsSuccess() {
				return castFailure[T, V, V](rhsRes)
			}
			v, _ := rhsRes.Value()
			acc = combine(acc, v)
			carried = MergeErrors(carried, MergeErrors(res.CarriedError(), rhsRes.CarriedError()))
			return Success[T, V](acc, rhsRes.Remaining(), carried)
		}

		if res, ok := tryEach(nones, s, ctx); ok {
			combine, _ := res.Value()
			rhs := unaryWrapped.run(res.Remaining(), ctx)
			if !rhs.IsSuccess() {
				return castFailure[T, V, V](rhs)
			}
			v, _ := rhs.Value()
			// A second non-associative operator of this class immediately
			// following is a static error (§4.J tie-break rule).
			if second, ok := tryEach(nones, rhs.Remaining(), ctx); ok {
				return Failure[T, V](MessageError(rhs.Remaining().Pos(),
					"non-associative operator cannot chain"), second.Remaining())
			}
			acc = combine(acc, v)
			carried = MergeErrors(carried, MergeErrors(res.CarriedError(), rhs.CarriedError()))
			s = rhs.Remaining()
			continue
		}

		return Success[T, V](acc, s, carried)
	}
}

func wrapUnary[T any, V any](prefixes []Parser[T, func(V) V], higher Parser[T, V], postfixes []Parser[T, func(V) V]) Parser[T, V] {
	return Parser[T, V]{
		name: "unaryWrapped",
		run: func(s Stream[T], ctx *Context) Result[T, V] {
			var prefixFns []func(V) V
			cur := s
			var carried *ParseError
			for {
				res, ok := tryEach(prefixes, cur, ctx)
				if !ok {
					break
				}
				fn, _ := res.Value()
				prefixFns = append(prefixFns, fn)
				carried = MergeErrors(carried, res.CarriedError())
				cur = res.Remaining()
			}

			hres := higher.run(cur, ctx)
			if !hres.IsSuccess() {
				return hres
			}
			value, _ := hres.Value()
			carried = MergeErrors(carried, hres.CarriedError())
			cur = hres.Remaining()

			for {
				res, ok := tryEach(postfixes, cur, ctx)
				if !ok {
					break
				}
				fn, _ := res.Value()
				value = fn(value)
				carried = MergeErrors(carried, res.CarriedError())
				cur = res.Remaining()
			}

			for i := len(prefixFns) - 1; i >= 0; i-- {
				value = prefixFns[i](value)
			}

			return Success[T, V](value, cur, carried)
		},
	}
}
