package engine

import (
	"context"
	"strconv"
	"strings"

	"github.com/hupe1980/subquest/gateway"
)

// pick runs the tool router: one bounded, low-temperature gateway call
// producing a raw token the caller parses as a tool index. The raw text is
// returned alongside the parse result for tracing. Parse failure is an
// expected outcome (the output is generated text), reported through the
// boolean rather than an error so the sentinel fallback stays an explicit
// branch at the call site.
func (e *Engine) pick(ctx context.Context, rs *runState, question string) (int, string, bool) {
	raw := e.complete(ctx, rs, gateway.Request{
		System:      systemAssistant,
		Prompt:      routerPrompt(e.catalog, question),
		Stop:        "\n",
		MaxTokens:   8,
		Temperature: e.opts.RouterTemperature,
		Tier:        gateway.TierBest,
	})

	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return e.catalog.Sentinel(), raw, false
	}

	return id, raw, true
}
