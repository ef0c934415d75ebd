package parsec

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

// TraceEntry is one recorded parser invocation, per §4.F.
type TraceEntry struct {
	Name          string
	Start         Position
	End           *Position
	Success       bool
	Depth         int
	ValuePreview  string
	ErrorPreview  string
	Elapsed       *time.Duration
}

// TraceCollector records parser entries/exits in strict pre-order/post-order
// around invocations (§5's ordering guarantee), up to MaxEntries. It is not
// safe for concurrent use; pair one collector with one parse (§5).
type TraceCollector struct {
	entries    []TraceEntry
	open       []int // indices into entries of still-open calls, as a stack
	depth      int
	MaxEntries int
	Timing     bool
}

// NewTraceCollector builds a collector capped at maxEntries (0 means
// unlimited). timing controls whether Parser.Parse measures elapsed time
// and passes it to Exit.
func NewTraceCollector(maxEntries int, timing bool) *TraceCollector {
	return &TraceCollector{MaxEntries: maxEntries, Timing: timing}
}

func (tc *TraceCollector) full() bool {
	return tc.MaxEntries > 0 && len(tc.entries) >= tc.MaxEntries
}

// Enter pushes an open entry for name at pos and increments the depth
// counter. Subsequent calls are dropped silently once MaxEntries is
// reached, per §4.F — but a sentinel (-1) is still pushed onto open so
// the stack stays one-to-one with call nesting; Exit uses it to tell a
// dropped call apart from a still-open ancestor.
func (tc *TraceCollector) Enter(name string, pos Position) {
	if tc.full() {
		tc.open = append(tc.open, -1)
		tc.depth++
		return
	}
	tc.entries = append(tc.entries, TraceEntry{Name: name, Start: pos, Depth: tc.depth})
	tc.open = append(tc.open, len(tc.entries)-1)
	tc.depth++
}

// Exit closes the most recently opened entry for name, recording the end
// position, outcome, and optional previews/elapsed time. A no-op if the
// matching Enter was dropped for exceeding MaxEntries.
func (tc *TraceCollector) Exit(name string, end Position, success bool, valuePreview, errorPreview string, elapsed *time.Duration) {
	tc.depth--
	if len(tc.open) == 0 {
		return
	}
	idx := tc.open[len(tc.open)-1]
	tc.open = tc.open[:len(tc.open)-1]
	if idx < 0 {
		return // this call's Enter was dropped for being over MaxEntries
	}
	e := &tc.entries[idx]
	e.End = &end
	e.Success = success
	e.ValuePreview = valuePreview
	e.ErrorPreview = errorPreview
	e.Elapsed = elapsed
}

// Entries returns the recorded entries in emission order.
func (tc *TraceCollector) Entries() []TraceEntry {
	return tc.entries
}

func glyph(success bool, colorize bool) string {
	if success {
		if colorize {
			return color.GreenString("✓")
		}
		return "+"
	}
	if colorize {
		return color.RedString("✗")
	}
	return "x"
}

// Report renders a multi-line textual listing: one line per entry, indented
// proportionally to depth, with a success/failure glyph, positions, a
// value/error preview, and elapsed time when measured. Glyphs are
// colorized via github.com/fatih/color when writing to a color-capable
// terminal (color.NoColor, honoring NO_COLOR, disables this automatically).
func (tc *TraceCollector) Report() string {
	var b strings.Builder
	colorize := !color.NoColor
	for _, e := range tc.entries {
		indent := strings.Repeat("  ", e.Depth)
		endStr := "…"
		if e.End != nil {
			endStr = e.End.String()
		}
		fmt.Fprintf(&b, "%s%s %s [%s -> %s]", indent, glyph(e.Success, colorize), e.Name, e.Start, endStr)
		if e.Success && e.ValuePreview != "" {
			fmt.Fprintf(&b, " = %s", e.ValuePreview)
		}
		if !e.Success && e.ErrorPreview != "" {
			fmt.Fprintf(&b, " : %s", e.ErrorPreview)
		}
		if e.Elapsed != nil {
			fmt.Fprintf(&b, " (%s)", e.Elapsed)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
