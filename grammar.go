package parsec

import "fmt"

// Grammar is the named-grammar alternative to Lazy for building
// self-referential parsers: a set of named rules (each erased to
// Parser[T, any], following the teacher's interface{}-based symbol table)
// plus a start symbol. Where Lazy wraps a single recursive definition in a
// closure, Grammar lets an entire mutually-recursive rule set be declared
// by name and wired up incrementally, matching the style many grammar
// authors already expect from Parsec-family libraries.
type Grammar[T any] struct {
	symbols     map[string]Parser[T, any]
	startSymbol string
}

// NewGrammar builds an empty grammar with start symbol "START".
func NewGrammar[T any]() *Grammar[T] {
	return &Grammar[T]{symbols: make(map[string]Parser[T, any]), startSymbol: "START"}
}

// AddSymbol adds or overwrites a named rule.
func (g *Grammar[T]) AddSymbol(name string, p Parser[T, any]) {
	g.symbols[name] = p
}

// AddTyped adds a named rule built from a typed parser, erasing its value
// to any.
func AddTyped[T any, V any](g *Grammar[T], name string, p Parser[T, V]) {
	g.AddSymbol(name, Map(p, func(v V) any { return v }))
}

// Ref runs another parser in the grammar by name — the named-grammar
// indirection that resolves recursive references without Lazy's closure
// capture. Referring to an undeclared name is a programming error and
// panics, exactly as the teacher's Symbol did.
func Ref[T any](g *Grammar[T], name string) Parser[T, any] {
	return NewParser[T, any]("ref("+name+")", func(s Stream[T], ctx *Context) Result[T, any] {
		p, ok := g.symbols[name]
		if !ok {
			panic(fmt.Sprintf("parsec: no symbol named %q", name))
		}
		return p.Run(s, ctx)
	})
}

// SetStartSymbol overrides the default "START" start symbol.
func (g *Grammar[T]) SetStartSymbol(name string) { g.startSymbol = name }

// RunFrom runs the named start symbol (g.startSymbol, or the one set via
// SetStartSymbol) over s, requiring the whole input be consumed — the
// same "incomplete parse" contract the teacher's ParseString enforced.
func (g *Grammar[T]) RunFrom(s Stream[T], ctx *Context) (any, *ParseError) {
	p, ok := g.symbols[g.startSymbol]
	if !ok {
		panic(fmt.Sprintf("parsec: start symbol %q does not exist", g.startSymbol))
	}
	res := p.Run(s, ctx)
	if !res.IsSuccess() {
		return nil, res.Error()
	}
	v, _ := res.Value()
	rem := res.Remaining()
	if !rem.AtEnd() {
		return nil, MessageError(rem.Pos(), "incomplete parse, expected end of input but input remains")
	}
	return v, nil
}
