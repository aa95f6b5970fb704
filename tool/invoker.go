package tool

import (
	"context"

	"github.com/hupe1980/subquest/gateway"
)

// Call carries everything an invoker needs for one tool execution: the
// descriptor being invoked, the model-synthesized argument JSON, the
// original question, the serialized transcript for answer folding, and the
// run's cost meter so any gateway calls the invoker makes are billed to the
// same run.
type Call struct {
	Tool       *Descriptor
	Args       string
	Question   string
	Transcript string

	// AnswerPrompt is the resolved answer-shaping question: the tool's
	// override when present, the original question otherwise.
	AnswerPrompt string

	// Meter and Tier thread the run's cost accounting into gateway calls
	// the invoker performs. Meter may be nil, in which case such calls go
	// unbilled.
	Meter *gateway.Meter
	Tier  gateway.Tier
}

// Invoker performs the actual tool call and returns a textual result,
// already folded into a natural-language answer where the implementation
// supports it. Implementations should honor ctx cancellation and return
// *ToolError for categorized failures.
type Invoker interface {
	Invoke(ctx context.Context, call Call) (string, error)
}

// InvokerFunc adapts a plain function to the Invoker interface.
type InvokerFunc func(ctx context.Context, call Call) (string, error)

// Invoke implements Invoker.
func (f InvokerFunc) Invoke(ctx context.Context, call Call) (string, error) {
	return f(ctx, call)
}
