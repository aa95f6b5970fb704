package core

import (
	"time"

	"github.com/google/uuid"
)

// TraceKind classifies trace events emitted during a run.
type TraceKind string

const (
	// TraceRunStart marks the beginning of a top-level run.
	TraceRunStart TraceKind = "run_start"
	// TraceSplit reports the sub-questions a split produced.
	TraceSplit TraceKind = "split"
	// TraceSplitRejected reports a sub-question discarded by the similarity gate.
	TraceSplitRejected TraceKind = "split_rejected"
	// TraceMemoryHit reports that the transcript was sufficient, no tool used.
	TraceMemoryHit TraceKind = "memory_hit"
	// TraceToolPicked reports the routed tool for a question.
	TraceToolPicked TraceKind = "tool_picked"
	// TraceToolResult reports the answer a tool produced.
	TraceToolResult TraceKind = "tool_result"
	// TraceFallback reports the no-tool reasoning path being taken.
	TraceFallback TraceKind = "fallback"
	// TraceBudget reports the depth or call budget forcing a direct answer.
	TraceBudget TraceKind = "budget_exhausted"
	// TraceRunEnd carries the final answer and the total run cost.
	TraceRunEnd TraceKind = "run_end"
)

// TraceEvent is an immutable record of one orchestration decision. The
// engine returns/emits these instead of printing so the decision algorithm
// stays testable; presentation (indentation, coloring) is left to a
// TraceSink implementation.
type TraceEvent struct {
	ID           string    `json:"id"`
	RunID        string    `json:"run_id"`
	Kind         TraceKind `json:"kind"`
	Depth        int       `json:"depth"`
	Question     string    `json:"question"`
	SubQuestions []string  `json:"sub_questions,omitempty"`
	ToolID       int       `json:"tool_id,omitempty"`
	Detail       string    `json:"detail,omitempty"`
	Similarity   float64   `json:"similarity,omitempty"`
	Cost         float64   `json:"cost,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewTraceEvent creates a trace event bound to a run with a fresh ID and
// UTC timestamp.
func NewTraceEvent(runID string, kind TraceKind, depth int, question string) TraceEvent {
	return TraceEvent{
		ID:        NewID(),
		RunID:     runID,
		Kind:      kind,
		Depth:     depth,
		Question:  question,
		Timestamp: time.Now().UTC(),
	}
}

// TraceSink receives trace events as they occur. Implementations must not
// block for long; the engine emits synchronously.
type TraceSink interface {
	Emit(ev TraceEvent)
}

// NopSink discards all trace events.
type NopSink struct{}

// Emit implements TraceSink.
func (NopSink) Emit(TraceEvent) {}

// NewID generates a new unique identifier for runs and trace events.
func NewID() string { return uuid.NewString() }
