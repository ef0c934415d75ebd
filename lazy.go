package parsec

import "sync"

// Lazy defers constructing its inner parser until the first invocation,
// breaking the initialization cycle that a direct self-reference would
// create when building mutually recursive grammars (e.g. an expression
// parser whose atom includes a parenthesized sub-expression referring
// back to the expression parser itself) — see §9 "Cyclic/recursive
// parser references".
//
// factory is called at most once, the first time the returned parser
// runs; its result is cached for every subsequent call.
func Lazy[T any, V any](factory func() Parser[T, V]) Parser[T, V] {
	var once sync.Once
	var inner Parser[T, V]
	return Parser[T, V]{
		name: "lazy",
		run: func(s Stream[T], ctx *Context) Result[T, V] {
			once.Do(func() { inner = factory() })
			return inner.run(s, ctx)
		},
	}
}
