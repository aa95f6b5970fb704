package subquest

import (
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/subquest/core"
)

// ConsoleTracer renders trace events as human-readable progress lines with
// indentation proportional to recursion depth. It is presentation only --
// the engine's decisions are carried entirely by the events themselves.
type ConsoleTracer struct {
	w io.Writer
}

// NewConsoleTracer creates a tracer writing to w.
func NewConsoleTracer(w io.Writer) *ConsoleTracer {
	return &ConsoleTracer{w: w}
}

// Emit implements core.TraceSink.
func (t *ConsoleTracer) Emit(ev core.TraceEvent) {
	indent := strings.Repeat("    ", ev.Depth)

	switch ev.Kind {
	case core.TraceRunStart:
		fmt.Fprintf(t.w, "%s? %s\n", indent, ev.Question)
	case core.TraceSplit:
		for _, sub := range ev.SubQuestions {
			fmt.Fprintf(t.w, "%s+ %s\n", indent, sub)
		}
	case core.TraceSplitRejected:
		fmt.Fprintf(t.w, "%s- dropped near-duplicate (similarity %.3f): %s\n", indent, ev.Similarity, ev.Detail)
	case core.TraceMemoryHit:
		fmt.Fprintf(t.w, "%s= answered from memory, no data tools used\n", indent)
	case core.TraceToolPicked:
		fmt.Fprintf(t.w, "%s> tool %d: %s\n", indent, ev.ToolID, ev.Detail)
	case core.TraceToolResult:
		fmt.Fprintf(t.w, "%s< %s\n", indent, ev.Detail)
	case core.TraceFallback:
		fmt.Fprintf(t.w, "%s~ no data tool applicable (router said %q), reasoning from context\n", indent, ev.Detail)
	case core.TraceBudget:
		fmt.Fprintf(t.w, "%s! %s\n", indent, ev.Detail)
	case core.TraceRunEnd:
		fmt.Fprintf(t.w, "%s$ estimated cost ~%.1f cents\n", indent, ev.Cost*100)
	}
}
