// Package openai provides an implementation of gateway.Gateway using the
// OpenAI Chat Completions API. It adapts SubQuest's normalized
// Request/Response structures into the SDK's message format and back, and
// maps quality tiers onto concrete model identifiers.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/hupe1980/subquest/gateway"
)

// Options configure the OpenAI gateway adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	BestModel    string
	EconomyModel string
}

// Gateway wraps the OpenAI Chat Completions API behind the generic
// gateway.Gateway interface.
type Gateway struct {
	client *openai.Client
	opts   Options
}

// NewGateway creates a new OpenAI gateway using the official client
func NewGateway(optFns ...func(o *Options)) *Gateway {
	client := openai.NewClient()
	return NewGatewayFromClient(&client, optFns...)
}

// NewGatewayFromClient creates a new OpenAI gateway from an existing client
func NewGatewayFromClient(client *openai.Client, optFns ...func(o *Options)) *Gateway {
	opts := Options{
		BestModel:    openai.ChatModelGPT4o,
		EconomyModel: openai.ChatModelGPT4oMini,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Gateway{client: client, opts: opts}
}

func (g *Gateway) model(tier gateway.Tier) string {
	if tier == gateway.TierEconomy {
		return g.opts.EconomyModel
	}
	return g.opts.BestModel
}

// Complete implements gateway.Gateway. The request's tier selects the
// concrete model; the stop marker and token cap bound the completion.
func (g *Gateway) Complete(ctx context.Context, req gateway.Request) (gateway.Response, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       g.model(req.Tier),
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(req.MaxTokens)
	}
	if req.Stop != "" {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{OfString: openai.String(req.Stop)}
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return gateway.Response{}, fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return gateway.Response{}, fmt.Errorf("openai api returned no choices")
	}

	return gateway.Response{Text: resp.Choices[0].Message.Content}, nil
}

// Info implements gateway.Gateway.
func (g *Gateway) Info() gateway.Info {
	return gateway.Info{
		Provider:     "openai",
		BestModel:    g.opts.BestModel,
		EconomyModel: g.opts.EconomyModel,
	}
}
