package engine

import (
	"context"
	"strings"

	"github.com/hupe1980/subquest/core"
	"github.com/hupe1980/subquest/embedding"
	"github.com/hupe1980/subquest/tool"
)

// decide resolves one (sub)question. It returns the answer together with
// this branch's fact contribution: always a single-element list pairing the
// input question with its resolved answer; callers concatenate these across
// siblings. Every path returns an answer -- degraded service and exhausted
// budgets produce best-effort text, never a refusal.
func (e *Engine) decide(
	ctx context.Context,
	rs *runState,
	question string,
	memory core.Memory,
	facts core.Facts,
	splitAllowed bool,
	depth int,
) (string, core.Facts) {
	if depth >= e.opts.MaxDepth || rs.limiter.Exhausted() {
		ev := core.NewTraceEvent(rs.id, core.TraceBudget, depth, question)
		ev.Detail = "depth or call budget reached, answering directly"
		e.trace(ev)

		answer := e.reasonAnswer(ctx, rs, core.Transcript(memory, facts), question)
		return answer, core.Facts{{Question: question, Answer: answer}}
	}

	if splitAllowed {
		subQuestions := e.split(ctx, rs, question, memory, facts)

		if len(subQuestions) == 1 {
			// No real split occurred; prevent infinite self-splitting.
			splitAllowed = false
		} else {
			accepted := e.gate(ctx, rs, question, subQuestions, depth, &splitAllowed)

			ev := core.NewTraceEvent(rs.id, core.TraceSplit, depth, question)
			ev.SubQuestions = accepted
			e.trace(ev)

			for _, sub := range accepted {
				_, contribution := e.decide(ctx, rs, sub, memory, facts, splitAllowed, depth+1)
				facts = facts.Merge(contribution)
				rs.facts = rs.facts.Merge(contribution)
			}
		}
	}

	transcript := core.Transcript(memory, facts)

	if e.sufficient(ctx, rs, transcript, question) {
		e.trace(core.NewTraceEvent(rs.id, core.TraceMemoryHit, depth, question))

		answer := e.memoryAnswer(ctx, rs, transcript, question)
		return answer, core.Facts{{Question: question, Answer: answer}}
	}

	toolID, raw, parsed := e.pick(ctx, rs, question)
	if !parsed || !e.catalog.Contains(toolID) {
		ev := core.NewTraceEvent(rs.id, core.TraceFallback, depth, question)
		ev.Detail = raw
		e.trace(ev)

		answer := e.reasonAnswer(ctx, rs, transcript, question)
		return answer, core.Facts{{Question: question, Answer: answer}}
	}

	desc := &e.catalog[toolID]

	ev := core.NewTraceEvent(rs.id, core.TraceToolPicked, depth, question)
	ev.ToolID = toolID
	ev.Detail = desc.Description
	e.trace(ev)

	args := e.synthesize(ctx, rs, memory, facts, question, toolID)
	answer := e.invoke(ctx, rs, desc, args, question, transcript)

	result := core.NewTraceEvent(rs.id, core.TraceToolResult, depth, question)
	result.ToolID = toolID
	result.Detail = answer
	e.trace(result)

	return answer, core.Facts{{Question: question, Answer: answer}}
}

// gate filters sub-questions through the similarity check: only those
// strictly below the threshold relative to the original survive. Filtering
// any sub-question marks the split as degenerate and disables further
// splitting for the remainder of this call. Embedding failures count as
// similarity 1.0 so a broken provider cannot cause unbounded re-splitting.
func (e *Engine) gate(
	ctx context.Context,
	rs *runState,
	question string,
	subQuestions []string,
	depth int,
	splitAllowed *bool,
) []string {
	originalVec, origErr := e.embedder.Embed(ctx, question)
	if origErr != nil {
		e.logger.Warn("embedder.failed", "run_id", rs.id, "error", origErr.Error())
	}

	accepted := make([]string, 0, len(subQuestions))
	for _, sub := range subQuestions {
		similarity := 1.0
		if origErr == nil {
			subVec, err := e.embedder.Embed(ctx, sub)
			if err != nil {
				e.logger.Warn("embedder.failed", "run_id", rs.id, "error", err.Error())
			} else {
				similarity = embedding.Cosine(originalVec, subVec)
			}
		}

		if similarity < e.opts.SimilarityThreshold {
			accepted = append(accepted, sub)
			continue
		}

		*splitAllowed = false

		ev := core.NewTraceEvent(rs.id, core.TraceSplitRejected, depth, question)
		ev.Detail = sub
		ev.Similarity = similarity
		e.trace(ev)
	}

	return accepted
}

// memoryAnswer produces a terminal answer constrained to the transcript.
func (e *Engine) memoryAnswer(ctx context.Context, rs *runState, transcript, question string) string {
	answer := e.complete(ctx, rs, answerRequest(
		e.reasonerSystem(),
		memoryAnswerPrompt(transcript, question),
		e.opts.AnswerMaxTokens,
	))
	return flatten(answer)
}

// reasonAnswer produces the no-tool fallback answer from the transcript.
func (e *Engine) reasonAnswer(ctx context.Context, rs *runState, transcript, question string) string {
	answer := e.complete(ctx, rs, answerRequest(
		e.reasonerSystem(),
		reasonAnswerPrompt(transcript, question),
		e.opts.AnswerMaxTokens,
	))
	return flatten(answer)
}

// invoke runs the selected tool, billing any folding calls it makes to this
// run's meter. Invocation failures degrade the branch instead of failing
// the run.
func (e *Engine) invoke(
	ctx context.Context,
	rs *runState,
	desc *tool.Descriptor,
	args, question, transcript string,
) string {
	answerPrompt := desc.AnswerPrompt
	if answerPrompt == "" {
		answerPrompt = question
	}

	answer, err := desc.Invoker.Invoke(ctx, tool.Call{
		Tool:         desc,
		Args:         args,
		Question:     question,
		Transcript:   transcript,
		AnswerPrompt: answerPrompt,
		Meter:        rs.meter,
		Tier:         e.pickTier(rs, transcript, e.opts.AnswerMaxTokens),
	})
	if err != nil {
		e.logger.Error("tool.invoke_failed",
			"run_id", rs.id,
			"tool_id", desc.ID,
			"error", err.Error(),
		)
		return DegradedToolAnswer
	}

	return answer
}

// flatten collapses multi-line reasoning answers into a single line, the
// shape expected when answers are re-serialized into later transcripts.
func flatten(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}
