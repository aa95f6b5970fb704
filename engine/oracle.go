package engine

import (
	"context"
	"strings"

	"github.com/hupe1980/subquest/gateway"
)

// sufficient is the memory oracle: a single bounded gateway call asking
// whether the transcript already answers the question. Used as a cheap
// short-circuit before paying for tool routing. Anything but an
// affirmative leading token counts as "insufficient", so degraded gateway
// output safely falls through to routing.
func (e *Engine) sufficient(ctx context.Context, rs *runState, transcript, question string) bool {
	text := e.complete(ctx, rs, gateway.Request{
		System:    systemAssistant,
		Prompt:    oraclePrompt(transcript, question),
		Stop:      "\n",
		MaxTokens: 8,
		Tier:      gateway.TierBest,
	})

	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(text)), "YES")
}
