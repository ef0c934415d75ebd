package parsec

import (
	stdcontext "context"

	"github.com/rs/zerolog"
)

// Context carries the optional, stateless-otherwise configuration passed
// by shared reference through every parser invocation (§3/§4.L). There are
// no ambient globals: a parse that needs tracing, logging, or cancellation
// must supply a Context built with the relevant options.
type Context struct {
	Trace  *TraceCollector
	Logger *zerolog.Logger
	Cancel stdcontext.Context
}

// ContextOption configures a Context built by NewContext, following the
// functional-options shape used for the engine's ambient configuration
// (see SPEC_FULL.md's AMBIENT STACK section).
type ContextOption func(*Context)

// WithTrace attaches a TraceCollector, enabling the trace-recording path in
// Parser.Parse.
func WithTrace(tc *TraceCollector) ContextOption {
	return func(c *Context) { c.Trace = tc }
}

// WithLogger attaches a zerolog.Logger; when set, the engine emits a
// debug-level event per trace enter/exit alongside (not instead of) the
// TraceCollector.
func WithLogger(l zerolog.Logger) ContextOption {
	return func(c *Context) { c.Logger = &l }
}

// WithCancel attaches a cooperative cancellation context, checked at
// Or/Many boundaries (§5). Cancellation surfaces as a ParseError of kind
// Cancelled at the point it was observed.
func WithCancel(ctx stdcontext.Context) ContextOption {
	return func(c *Context) { c.Cancel = ctx }
}

// NewContext builds a Context from the given options.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultContext = &Context{}

// DefaultContext returns the shared, trace-disabled default Context used
// when a caller does not supply one.
func DefaultContext() *Context { return defaultContext }

// tracing reports whether this context wants trace recording, checked once
// per Parser.Parse call so the non-tracing hot path pays no plumbing cost
// (per §9's tracing-overhead design note).
func (c *Context) tracing() bool { return c != nil && c.Trace != nil }

// logging reports whether this context wants per-event debug logging.
func (c *Context) logging() bool { return c != nil && c.Logger != nil }

// cancelled reports whether this context's cancellation source has fired.
func (c *Context) cancelled() bool {
	if c == nil || c.Cancel == nil {
		return false
	}
	select {
	case <-c.Cancel.Done():
		return true
	default:
		return false
	}
}

func cancelledError(pos Position) *ParseError {
	return NewParseError(pos, ErrorMessage{Kind: Cancelled, Text: "parse cancelled"})
}
