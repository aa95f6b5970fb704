package engine

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/hupe1980/subquest/core"
	"github.com/hupe1980/subquest/gateway"
)

// synthesize produces the argument JSON for the selected tool via a
// few-shot prompt over the whole catalog's worked examples.
func (e *Engine) synthesize(
	ctx context.Context,
	rs *runState,
	memory core.Memory,
	facts core.Facts,
	question string,
	toolID int,
) string {
	return e.fewShot(ctx, rs, memory, facts, question, toolID, "JSON", func(id int) string {
		return fmt.Sprintf("What should the input for tool %d be to answer Q?", id)
	}, e.opts.ArgsMaxTokens)
}

// fewShot builds and runs a few-shot completion: every tool's description
// and parameter schema, every worked example from every tool (flattened
// across the whole catalog for broader pattern coverage), the live
// transcript, and the current question annotated with the selected tool.
// The example list is shuffled with a source seeded from the configured
// shuffle seed, removing position bias while keeping the ordering identical
// across invocations and runs. Completion is truncated at the response
// stop marker; the quality tier degrades once the run's spend crosses the
// price threshold.
func (e *Engine) fewShot(
	ctx context.Context,
	rs *runState,
	memory core.Memory,
	facts core.Facts,
	question string,
	toolID int,
	answerLabel string,
	subPrompt func(toolID int) string,
	maxTokens int64,
) string {
	examples := make([]string, 0)
	for _, desc := range e.catalog {
		for _, ex := range desc.Examples {
			examples = append(examples, exampleBlock(desc.ID, ex, answerLabel, subPrompt))
		}
	}

	shuffle := rand.New(rand.NewSource(e.opts.ShuffleSeed))
	shuffle.Shuffle(len(examples), func(i, j int) {
		examples[i], examples[j] = examples[j], examples[i]
	})

	var b strings.Builder
	b.WriteString(core.Tagged(tagTools, e.catalog.PromptBlocks()))
	b.WriteString(strings.Join(examples, ""))
	b.WriteString(core.Tagged(core.TagConversation, core.Transcript(memory, facts)))
	b.WriteString(liveBlock(question, toolID, answerLabel, subPrompt))
	prompt := b.String()

	return e.complete(ctx, rs, gateway.Request{
		System:    systemAssistant,
		Prompt:    prompt,
		Stop:      core.StopResponse,
		MaxTokens: maxTokens,
		Tier:      e.pickTier(rs, prompt, maxTokens),
	})
}
