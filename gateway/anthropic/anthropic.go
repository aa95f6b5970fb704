// Package anthropic provides a gateway wrapper for the Anthropic Claude API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hupe1980/subquest/gateway"
)

// Options configures the Anthropic gateway adapter (tier model ids, max
// token fallback, API key). Extend via functional options to preserve
// stability.
type Options struct {
	BestModel    anthropic.Model
	EconomyModel anthropic.Model
	MaxTokens    int64
	APIKey       string
}

// Gateway wraps the Anthropic Messages API behind the generic
// gateway.Gateway interface.
type Gateway struct {
	client *anthropic.Client
	opts   Options
}

// NewGateway creates a new Anthropic gateway using the official client
func NewGateway(optFns ...func(o *Options)) *Gateway {
	opts := defaultOptions()

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Gateway{
		client: &client,
		opts:   opts,
	}
}

// NewGatewayFromClient creates a new Anthropic gateway from an existing client
func NewGatewayFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Gateway {
	opts := defaultOptions()

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Gateway{
		client: client,
		opts:   opts,
	}
}

func defaultOptions() Options {
	return Options{
		BestModel:    anthropic.ModelClaude3_5Sonnet20241022,
		EconomyModel: anthropic.ModelClaude3_5Haiku20241022,
		MaxTokens:    1024,
	}
}

func (g *Gateway) model(tier gateway.Tier) anthropic.Model {
	if tier == gateway.TierEconomy {
		return g.opts.EconomyModel
	}
	return g.opts.BestModel
}

// Complete implements gateway.Gateway using the non-streaming Messages API.
func (g *Gateway) Complete(ctx context.Context, req gateway.Request) (gateway.Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = g.opts.MaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       g.model(req.Tier),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}

	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	if req.Stop != "" {
		params.StopSequences = []string{req.Stop}
	}

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return gateway.Response{}, fmt.Errorf("anthropic api error: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			textBlock := block.AsText()
			text.WriteString(textBlock.Text)
		}
	}

	return gateway.Response{Text: text.String()}, nil
}

// Info implements gateway.Gateway.
func (g *Gateway) Info() gateway.Info {
	return gateway.Info{
		Provider:     "anthropic",
		BestModel:    string(g.opts.BestModel),
		EconomyModel: string(g.opts.EconomyModel),
	}
}
