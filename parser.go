package parsec

import (
	"fmt"
	"time"
)

// Parser is the polymorphic parser value: an immutable wrapper around a
// pure function from (stream, context) to a Result, plus a human-readable
// name used for diagnostics and tracing (§3/§4.E). Parsers carry no
// ambient mutable state and are safe to share across goroutines (§5).
type Parser[T any, V any] struct {
	name string
	run  func(Stream[T], *Context) Result[T, V]
}

// NewParser builds a Parser from a raw run function, with a diagnostic
// name.
func NewParser[T any, V any](name string, run func(Stream[T], *Context) Result[T, V]) Parser[T, V] {
	return Parser[T, V]{name: name, run: run}
}

// Name returns the parser's diagnostic name.
func (p Parser[T, V]) Name() string { return p.name }

// Named returns a copy of p with a new diagnostic name; it affects traces
// only, never error text (§4.E/§7: distinct concerns from WithExpected).
func (p Parser[T, V]) Named(name string) Parser[T, V] {
	return Parser[T, V]{name: name, run: p.run}
}

// Run invokes the underlying parse function directly, with no tracing
// bookkeeping. Parse is the public entry point; Run is exposed for
// combinators that need to delegate without re-checking trace state.
func (p Parser[T, V]) Run(s Stream[T], ctx *Context) Result[T, V] {
	return p.run(s, ctx)
}

// Parse is the top-level driver (§4.E): when tracing is enabled on ctx, it
// records a trace entry before delegating and an exit after; the
// non-tracing path (the common case) does no bookkeeping at all, per §9's
// tracing-overhead design note.
func (p Parser[T, V]) Parse(s Stream[T], ctx *Context) Result[T, V] {
	if ctx == nil {
		ctx = DefaultContext()
	}
	if !ctx.tracing() && !ctx.logging() {
		return p.run(s, ctx)
	}

	start := s.Pos()
	depth := 0
	if ctx.tracing() {
		depth = ctx.Trace.depth
	}
	var startTime time.Time
	if ctx.tracing() && ctx.Trace.Timing {
		startTime = time.Now()
	}
	if ctx.tracing() {
		ctx.Trace.Enter(p.name, start)
	}
	if ctx.logging() {
		ctx.Logger.Debug().Str("parser", p.name).Int("depth", depth).Str("at", start.String()).Msg("enter")
	}

	res := p.run(s, ctx)

	var elapsed *time.Duration
	if ctx.tracing() && ctx.Trace.Timing {
		d := time.Since(startTime)
		elapsed = &d
	}
	var valuePreview, errorPreview string
	if res.IsSuccess() {
		if v, ok := res.Value(); ok {
			valuePreview = fmt.Sprintf("%v", v)
		}
	} else if res.Error() != nil {
		errorPreview = res.Error().Error()
	}
	if ctx.tracing() {
		ctx.Trace.Exit(p.name, res.Remaining().Pos(), res.IsSuccess(), valuePreview, errorPreview, elapsed)
	}
	if ctx.logging() {
		ctx.Logger.Debug().Str("parser", p.name).Int("depth", depth).Bool("success", res.IsSuccess()).Msg("exit")
	}
	return res
}

// WithExpected returns a parser that, on failure only, replaces the
// error's messages with a single Expected(label), preserving position and
// context stack (§4.E).
func (p Parser[T, V]) WithExpected(label string) Parser[T, V] {
	return Parser[T, V]{
		name: p.name,
		run: func(s Stream[T], ctx *Context) Result[T, V] {
			res := p.run(s, ctx)
			if res.IsSuccess() {
				return res
			}
			return Failure[T, V](res.Error().WithExpected(label), res.Remaining())
		},
	}
}

// WithContext returns a parser that, on failure only, prepends label to
// the error's context stack (§4.E).
func (p Parser[T, V]) WithContext(label string) Parser[T, V] {
	return Parser[T, V]{
		name: p.name,
		run: func(s Stream[T], ctx *Context) Result[T, V] {
			res := p.run(s, ctx)
			if res.IsSuccess() {
				return res
			}
			return Failure[T, V](res.Error().WithContext(label), res.Remaining())
		},
	}
}

// Map transforms p's successful value with f, preserving any carried
// error. Failures pass through unchanged (§4.E).
func Map[T any, A any, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	return Parser[T, B]{
		name: p.name,
		run: func(s Stream[T], ctx *Context) Result[T, B] {
			res := p.run(s, ctx)
			if !res.IsSuccess() {
				return castFailure[T, A, B](res)
			}
			return MapResult(res, f)
		},
	}
}

// Bind is the monadic sequencing contract at the heart of the engine
// (§4.E): run p; on success run k(value) at the remaining stream; errors
// from both stages merge via MergeErrors so diagnostics accumulate across
// sequencing even when the combined parse succeeds.
func Bind[T any, A any, B any](p Parser[T, A], k func(A) Parser[T, B]) Parser[T, B] {
	return Parser[T, B]{
		name: p.name,
		run: func(s Stream[T], ctx *Context) Result[T, B] {
			rp := p.run(s, ctx)
			if !rp.IsSuccess() {
				return castFailure[T, A, B](rp)
			}
			v, _ := rp.Value()
			rq := k(v).run(rp.Remaining(), ctx)
			if !rq.IsSuccess() {
				return Failure[T, B](MergeErrors(rp.CarriedError(), rq.Error()), rq.Remaining())
			}
			rv, _ := rq.Value()
			return Success[T, B](rv, rq.Remaining(), MergeErrors(rp.CarriedError(), rq.CarriedError()))
		},
	}
}

// Filter refines p, failing (without consuming beyond what p consumed) if
// pred rejects the parsed value. expectedLabel, if non-empty, replaces the
// failure's message with Expected(expectedLabel); otherwise a generic
// Message is produced.
func Filter[T any, V any](p Parser[T, V], pred func(V) bool, expectedLabel string) Parser[T, V] {
	return Parser[T, V]{
		name: p.name,
		run: func(s Stream[T], ctx *Context) Result[T, V] {
			res := p.run(s, ctx)
			if !res.IsSuccess() {
				return res
			}
			v, _ := res.Value()
			if pred(v) {
				return res
			}
			var err *ParseError
			if expectedLabel != "" {
				err = ExpectedError(res.Remaining().Pos(), expectedLabel)
			} else {
				err = MessageError(res.Remaining().Pos(), "unexpected value %v", v)
			}
			return Failure[T, V](err, res.Remaining())
		},
	}
}
