package parsec

import (
	"fmt"
	"strings"
)

// MessageKind tags the variant of an ErrorMessage, per §3.
type MessageKind int

const (
	Expected MessageKind = iota
	Unexpected
	Message
	EndOfInput
	NestedContext
	// Cancelled marks a failure produced by cooperative cancellation
	// (§5); it is the one distinguished kind the engine adds beyond the
	// base taxonomy in §7.
	Cancelled
)

func (k MessageKind) String() string {
	switch k {
	case Expected:
		return "Expected"
	case Unexpected:
		return "Unexpected"
	case Message:
		return "Message"
	case EndOfInput:
		return "EndOfInput"
	case NestedContext:
		return "NestedContext"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// ErrorMessage is a single tagged diagnostic, per §3. Equality is
// structural (same Kind and Text).
type ErrorMessage struct {
	Kind MessageKind
	Text string
}

func (m ErrorMessage) String() string { return m.Text }

func expectedMsg(what string) ErrorMessage   { return ErrorMessage{Expected, what} }
func unexpectedMsg(what string) ErrorMessage { return ErrorMessage{Unexpected, what} }
func messageMsg(text string) ErrorMessage    { return ErrorMessage{Message, text} }
func eofMsg() ErrorMessage                   { return ErrorMessage{EndOfInput, "end of input"} }

// ParseError is the engine's structured failure value: a position, a
// deduplicated (first-seen order preserved) set of messages, and an
// innermost-to-outermost context stack. See §3/§7.
type ParseError struct {
	Pos      Position
	Messages []ErrorMessage
	Context  []string
}

// NewParseError builds a ParseError with a single message at pos.
func NewParseError(pos Position, msg ErrorMessage) *ParseError {
	return &ParseError{Pos: pos, Messages: []ErrorMessage{msg}}
}

// ExpectedError builds a ParseError of kind Expected.
func ExpectedError(pos Position, what string) *ParseError {
	return NewParseError(pos, expectedMsg(what))
}

// MessageError builds a ParseError of kind Message.
func MessageError(pos Position, format string, args ...interface{}) *ParseError {
	return NewParseError(pos, messageMsg(fmt.Sprintf(format, args...)))
}

// EndOfInputError builds a ParseError of kind EndOfInput.
func EndOfInputError(pos Position) *ParseError {
	return NewParseError(pos, eofMsg())
}

func addMessage(msgs []ErrorMessage, m ErrorMessage) []ErrorMessage {
	for _, existing := range msgs {
		if existing == m {
			return msgs
		}
	}
	return append(msgs, m)
}

func unionMessages(a, b []ErrorMessage) []ErrorMessage {
	out := make([]ErrorMessage, 0, len(a)+len(b))
	for _, m := range a {
		out = addMessage(out, m)
	}
	for _, m := range b {
		out = addMessage(out, m)
	}
	return out
}

func unionContext(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, c := range append(append([]string{}, a...), b...) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// MergeErrors implements the single most important invariant of the engine
// (§3): the error at the furthest position wins; at equal positions the
// message sets and context stacks are unioned, preserving first-seen order.
// Either argument may be nil, in which case the other is returned verbatim
// (nil if both are nil).
func MergeErrors(a, b *ParseError) *ParseError {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Pos.Offset > b.Pos.Offset {
		return a
	}
	if b.Pos.Offset > a.Pos.Offset {
		return b
	}
	return &ParseError{
		Pos:      a.Pos,
		Messages: unionMessages(a.Messages, b.Messages),
		Context:  unionContext(a.Context, b.Context),
	}
}

// WithContext returns a new error with label prepended as the innermost
// context frame. The original is left untouched.
func (e *ParseError) WithContext(label string) *ParseError {
	if e == nil {
		return nil
	}
	out := &ParseError{Pos: e.Pos, Messages: e.Messages, Context: make([]string, 0, len(e.Context)+1)}
	out.Context = append(out.Context, label)
	out.Context = append(out.Context, e.Context...)
	return out
}

// WithExpected returns a new error at the same position and context stack,
// but whose messages are replaced by a single Expected(label) message, per
// §4.E's with_expected contract.
func (e *ParseError) WithExpected(label string) *ParseError {
	if e == nil {
		return nil
	}
	return &ParseError{Pos: e.Pos, Messages: []ErrorMessage{expectedMsg(label)}, Context: e.Context}
}

// Equal compares two errors ignoring context-stack order within the same
// element set, per §4.C.
func (e *ParseError) Equal(o *ParseError) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.Pos != o.Pos {
		return false
	}
	if len(e.Messages) != len(o.Messages) || len(e.Context) != len(o.Context) {
		return false
	}
	for _, m := range e.Messages {
		found := false
		for _, m2 := range o.Messages {
			if m == m2 {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	seen := map[string]bool{}
	for _, c := range o.Context {
		seen[c] = true
	}
	for _, c := range e.Context {
		if !seen[c] {
			return false
		}
	}
	return true
}

func joinNaturally(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
	}
}

// Error renders the terse form required by §6: it contains the literal
// substring "parse error", the position as source:line:column, and an
// expected clause enumerating alternatives with a natural "or" before the
// last one.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	var expected, unexpected, other []string
	for _, m := range e.Messages {
		switch m.Kind {
		case Expected:
			expected = append(expected, m.Text)
		case Unexpected:
			unexpected = append(unexpected, m.Text)
		case EndOfInput:
			expected = append(expected, "end of input")
		case Cancelled:
			other = append(other, "cancelled: "+m.Text)
		default:
			other = append(other, m.Text)
		}
	}

	var clauses []string
	if len(expected) > 0 {
		clauses = append(clauses, "expected "+joinNaturally(dedupStrings(expected)))
	}
	for _, u := range unexpected {
		clauses = append(clauses, "unexpected "+u)
	}
	clauses = append(clauses, other...)

	body := strings.Join(clauses, "; ")
	if body == "" {
		body = "parse error"
	} else {
		body = "parse error: " + body
	}
	return fmt.Sprintf("%s at %s", body, e.Pos.String())
}

func dedupStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// DetailedError renders the terse form plus, when source is non-empty, the
// offending source line followed by a line with spaces and a caret aligned
// to the failure column, per §4.C/§6.
func (e *ParseError) DetailedError(source string) string {
	terse := e.Error()
	if source == "" || e.Pos.Line < 1 {
		return terse
	}
	lines := strings.Split(source, "\n")
	idx := e.Pos.Line - 1
	if idx < 0 || idx >= len(lines) {
		return terse
	}
	line := lines[idx]
	col := e.Pos.Column - 1
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	caret := strings.Repeat(" ", col) + "^"
	return fmt.Sprintf("%s\n%s\n%s", terse, line, caret)
}
