package engine

import (
	"context"
	"strings"

	"github.com/hupe1980/subquest/core"
	"github.com/hupe1980/subquest/gateway"
)

// split asks the gateway to decompose the question into an ordered list of
// sub-questions. The result always contains at least one entry -- the
// original question when no real split is found -- so callers detect the
// degenerate case uniformly by length.
func (e *Engine) split(
	ctx context.Context,
	rs *runState,
	question string,
	memory core.Memory,
	facts core.Facts,
) []string {
	transcript := core.Transcript(memory, facts)

	text := e.complete(ctx, rs, gateway.Request{
		System:    systemAssistant,
		Prompt:    splitPrompt(e.catalog, transcript, question),
		Stop:      stopSubQuestions,
		MaxTokens: e.opts.SplitMaxTokens,
		Tier:      gateway.TierBest,
	})

	subQuestions := parseSubQuestions(text)
	if len(subQuestions) == 0 {
		return []string{question}
	}

	return subQuestions
}

// parseSubQuestions extracts one sub-question per line, tolerating the
// bullet and numbering prefixes models like to add.
func parseSubQuestions(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789.) ")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
