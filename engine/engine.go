package engine

import (
	"context"
	"fmt"

	"github.com/hupe1980/subquest/core"
	"github.com/hupe1980/subquest/embedding"
	"github.com/hupe1980/subquest/gateway"
	"github.com/hupe1980/subquest/logging"
	"github.com/hupe1980/subquest/tool"
)

// Options configure an Engine instance.
//
// Use functional options with New to override defaults.
type Options struct {
	// Logger receives structured diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
	// Tracer receives decision trace events. Defaults to NopSink.
	Tracer core.TraceSink
	// Persona is appended to reasoning system prompts, letting callers give
	// the agent a voice without touching engine prompts.
	Persona string
	// MaxDepth caps the recursion depth of the decomposition. The organic
	// guards (single-item splits, the similarity gate) do not strictly
	// bound depth, so the cap is mandatory; branches at the cap fall back
	// to a direct reasoning answer.
	MaxDepth int
	// MaxGatewayCalls caps the number of completion calls per run; once
	// exhausted, remaining branches resolve without splitting or tools.
	MaxGatewayCalls int
	// PriceThreshold is the cumulative run cost (currency units) above
	// which argument synthesis drops to the economy tier.
	PriceThreshold float64
	// SimilarityThreshold separates "different question" from "restatement
	// of the same question" in the split gate. Strictly-below passes.
	SimilarityThreshold float64
	// RouterTemperature is the sampling temperature for tool selection.
	RouterTemperature float64
	// ShuffleSeed seeds the deterministic shuffle of few-shot examples so
	// identical catalogs always produce identical synthesis prompts.
	ShuffleSeed int64
	// AnswerMaxTokens bounds reasoning answers.
	AnswerMaxTokens int64
	// ArgsMaxTokens bounds synthesized tool arguments.
	ArgsMaxTokens int64
	// SplitMaxTokens bounds the splitter's sub-question list.
	SplitMaxTokens int64
}

// Engine drives the recursive decomposition loop over a fixed tool catalog.
// An Engine is immutable after construction; all per-run state (cost meter,
// call budget) lives in an internal run state threaded through the
// recursion, so a single Engine can serve sequential runs safely.
type Engine struct {
	gateway  gateway.Gateway
	catalog  tool.Catalog
	embedder embedding.Embedder
	logger   logging.Logger
	tracer   core.TraceSink
	opts     Options
}

// New constructs an Engine. The gateway and embedder are required; the
// catalog may be empty, in which case every question resolves through the
// reasoning path.
func New(
	gw gateway.Gateway,
	embedder embedding.Embedder,
	catalog tool.Catalog,
	optFns ...func(o *Options),
) (*Engine, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}

	opts := Options{
		Logger:              logging.NoOpLogger{},
		Tracer:              core.NopSink{},
		MaxDepth:            8,
		MaxGatewayCalls:     64,
		PriceThreshold:      0.2,
		SimilarityThreshold: 0.98,
		ShuffleSeed:         4,
		AnswerMaxTokens:     256,
		ArgsMaxTokens:       200,
		SplitMaxTokens:      128,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Tracer == nil {
		opts.Tracer = core.NopSink{}
	}

	return &Engine{
		gateway:  gw,
		catalog:  catalog,
		embedder: embedder,
		logger:   opts.Logger,
		tracer:   opts.Tracer,
		opts:     opts,
	}, nil
}

// RunResult carries the outcome of one top-level run.
type RunResult struct {
	RunID  string
	Answer string
	// Memory is the caller's memory with the new (question, answer) turn
	// appended; the input slice is never mutated.
	Memory core.Memory
	// Facts are the (sub-question, answer) pairs resolved while decomposing
	// the run's question, in resolution order. Empty when no split occurred.
	Facts core.Facts
	// Cost is the total estimated gateway spend for the run.
	Cost float64
	// Calls is the number of gateway calls the run consumed.
	Calls int
}

// Run resolves one top-level question against the given conversation
// memory. The fact set and cost meter are reset per run; memory is treated
// as a value and returned updated. Degraded-service conditions surface as
// answer text, never as an error: the only error Run returns is context
// cancellation.
func (e *Engine) Run(ctx context.Context, question string, memory core.Memory) (RunResult, error) {
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}

	rs := &runState{
		id:      core.NewID(),
		meter:   gateway.NewMeter(),
		limiter: core.NewCallLimiter(e.opts.MaxGatewayCalls),
	}

	e.trace(core.NewTraceEvent(rs.id, core.TraceRunStart, 0, question))

	answer, _ := e.decide(ctx, rs, question, memory, nil, true, 0)

	cost := rs.meter.Total()
	e.logger.Info("run.complete",
		"run_id", rs.id,
		"gateway_calls", rs.limiter.Count(),
		"estimated_cost_cents", cost*100,
	)

	end := core.NewTraceEvent(rs.id, core.TraceRunEnd, 0, question)
	end.Detail = answer
	end.Cost = cost
	e.trace(end)

	return RunResult{
		RunID:  rs.id,
		Answer: answer,
		Memory: memory.With(question, answer),
		Facts:  rs.facts,
		Cost:   cost,
		Calls:  rs.limiter.Count(),
	}, nil
}

// Catalog returns the engine's tool catalog.
func (e *Engine) Catalog() tool.Catalog { return e.catalog }

func (e *Engine) trace(ev core.TraceEvent) { e.tracer.Emit(ev) }

// runState is the explicit per-run context threaded through every recursive
// call: the cost accumulator and the gateway call budget. Keeping it
// explicit (instead of engine-wide mutation) preserves single-writer
// clarity if the orchestrator is ever parallelized.
type runState struct {
	id      string
	meter   *gateway.Meter
	limiter *core.CallLimiter

	// facts records every sub-question contribution in resolution order for
	// reporting; the authoritative fact visibility is the facts value
	// threaded through decide.
	facts core.Facts
}
