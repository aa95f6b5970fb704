package engine

import (
	"context"
	"strings"

	"github.com/hupe1980/subquest/core"
	"github.com/hupe1980/subquest/gateway"
)

// DegradedAnswer is the fixed text substituted for a completion when the
// gateway is unavailable. It flows through the recursion as ordinary answer
// text so a single provider outage degrades one branch instead of aborting
// the run.
const DegradedAnswer = "the language model service is unavailable"

// DegradedToolAnswer is the fixed text substituted when a tool invocation
// fails.
const DegradedToolAnswer = "the requested information service is unavailable"

// economyTokenLimit is the context size above which the economy tier cannot
// be used and calls are forced back onto the best tier.
const economyTokenLimit = 2049

// complete performs one metered gateway call. The prompt is charged before
// the call (a failed call still consumed prompt processing budget) and the
// response after. Gateway failures are logged and converted into
// DegradedAnswer per the no-retry policy.
func (e *Engine) complete(ctx context.Context, rs *runState, req gateway.Request) string {
	if err := rs.limiter.Increment(); err != nil {
		e.logger.Warn("gateway.over_budget", "run_id", rs.id, "calls", rs.limiter.Count())
	}

	rs.meter.Charge(req.Prompt, req.Tier)

	resp, err := e.gateway.Complete(ctx, req)
	if err != nil {
		e.logger.Error("gateway.unavailable", "run_id", rs.id, "error", err.Error())
		return DegradedAnswer
	}

	rs.meter.Charge(resp.Text, req.Tier)

	return strings.TrimSpace(resp.Text)
}

// answerRequest shapes a transcript-constrained answering call: best tier,
// stopped at the closing answer tag.
func answerRequest(system, prompt string, maxTokens int64) gateway.Request {
	return gateway.Request{
		System:    system,
		Prompt:    prompt,
		Stop:      core.StopAnswer,
		MaxTokens: maxTokens,
		Tier:      gateway.TierBest,
	}
}

// pickTier trades fidelity for budget: once the run's cumulative cost
// crosses the threshold, calls drop to the economy tier -- unless the
// prompt is too large for the economy model's context window.
func (e *Engine) pickTier(rs *runState, prompt string, maxTokens int64) gateway.Tier {
	tier := gateway.TierBest
	if rs.meter.Total() >= e.opts.PriceThreshold {
		tier = gateway.TierEconomy
	}

	askTokens := float64(maxTokens) + float64(len(prompt))/gateway.CharsPerToken
	if askTokens > economyTokenLimit {
		tier = gateway.TierBest
	}

	return tier
}
