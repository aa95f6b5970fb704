// Package openai implements embedding.Embedder using the OpenAI Embeddings API.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
)

// Options configure the embeddings adapter.
type Options struct {
	Model string
}

// Embedder maps text to vectors using OpenAI's embeddings endpoint.
type Embedder struct {
	client *openai.Client
	opts   Options
}

// NewEmbedder creates a new embedder using the official client
func NewEmbedder(optFns ...func(o *Options)) *Embedder {
	client := openai.NewClient()
	return NewEmbedderFromClient(&client, optFns...)
}

// NewEmbedderFromClient creates a new embedder from an existing client
func NewEmbedderFromClient(client *openai.Client, optFns ...func(o *Options)) *Embedder {
	opts := Options{
		Model: openai.EmbeddingModelTextEmbedding3Small,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Embedder{client: client, opts: opts}
}

// Embed implements embedding.Embedder.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: e.opts.Model,
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings api error: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embeddings api returned no data")
	}

	return resp.Data[0].Embedding, nil
}
