// Package subquest provides a high-level façade over the recursive
// decomposition engine: a conversational agent that answers a question by
// optionally splitting it into independent sub-questions, routing each to
// either transcript reasoning or a catalog tool, and metering the monetary
// cost of every model call. Most applications interact with this package
// by:
//  1. Building a validated tool.Catalog
//  2. Creating an Agent via New() with a completion gateway and embedder
//  3. Calling Run per user turn, carrying the returned memory forward
//
// The façade delegates orchestration to engine.Engine while keeping setup
// ergonomics concise. Defaults are safe for local development; production
// deployments typically supply a structured logger and a trace sink.
package subquest

import (
	"context"

	"github.com/hupe1980/subquest/core"
	"github.com/hupe1980/subquest/embedding"
	"github.com/hupe1980/subquest/engine"
	"github.com/hupe1980/subquest/gateway"
	"github.com/hupe1980/subquest/logging"
	"github.com/hupe1980/subquest/tool"
)

// Options configures the Agent instance.
type Options struct {
	// Embedder powers the similarity gate that stops degenerate splits.
	Embedder embedding.Embedder

	// Persona is appended to reasoning prompts, giving the agent a voice.
	Persona string

	// MaxDepth caps recursion depth; branches at the cap answer directly.
	MaxDepth int

	// MaxGatewayCalls caps completion calls per run.
	MaxGatewayCalls int

	// PriceThreshold is the run spend above which argument synthesis drops
	// to the economy tier.
	PriceThreshold float64

	// ShuffleSeed seeds the deterministic few-shot example shuffle.
	ShuffleSeed int64

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// Tracer receives structured decision trace events (defaults to NopSink).
	Tracer core.TraceSink
}

// Agent is the high-level façade aggregating the engine and its services.
type Agent struct {
	engine *engine.Engine
}

// New creates a new Agent over the given gateway and catalog with optional
// overrides. The embedder defaults to the in-memory mock whose fallback
// vector makes unregistered questions gate as identical, effectively
// disabling splitting; supply a real provider for meaningful gating.
func New(gw gateway.Gateway, catalog tool.Catalog, optFns ...func(o *Options)) (*Agent, error) {
	opts := Options{
		Embedder:        embedding.NewMockEmbedder(),
		MaxDepth:        8,
		MaxGatewayCalls: 64,
		PriceThreshold:  0.2,
		ShuffleSeed:     4,
		Logger:          logging.NoOpLogger{},
		Tracer:          core.NopSink{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	eng, err := engine.New(gw, opts.Embedder, catalog, func(o *engine.Options) {
		o.Logger = opts.Logger
		o.Tracer = opts.Tracer
		o.Persona = opts.Persona
		o.MaxDepth = opts.MaxDepth
		o.MaxGatewayCalls = opts.MaxGatewayCalls
		o.PriceThreshold = opts.PriceThreshold
		o.ShuffleSeed = opts.ShuffleSeed
	})
	if err != nil {
		return nil, err
	}

	return &Agent{engine: eng}, nil
}

// Run resolves one user question against the conversation memory and
// returns the answer plus the updated memory. The input memory is never
// mutated; callers carry the returned copy into the next turn. Degraded
// service conditions surface as answer text -- the only error returned is
// context cancellation.
func (a *Agent) Run(ctx context.Context, question string, memory core.Memory) (string, core.Memory, error) {
	result, err := a.engine.Run(ctx, question, memory)
	if err != nil {
		return "", memory, err
	}

	return result.Answer, result.Memory, nil
}

// RunDetailed exposes the full engine result (facts, cost, call count) for
// callers that report or assert on run internals.
func (a *Agent) RunDetailed(ctx context.Context, question string, memory core.Memory) (engine.RunResult, error) {
	return a.engine.Run(ctx, question, memory)
}
