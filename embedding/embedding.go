// Package embedding defines the semantic similarity contract used by the
// question splitter's degenerate-split gate: an Embedder maps text to a
// fixed-length vector and Cosine compares two such vectors. A provider
// adapter lives in embedding/openai; MockEmbedder supports tests.
package embedding

import (
	"context"
	"math"
)

// Embedder maps text to a fixed-length numeric vector. Implementations may
// call external services and should honor ctx cancellation.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Cosine returns the cosine similarity between two vectors, rounded to 3
// decimals so logged and tested values are stable across platforms. Vectors
// of different lengths or zero magnitude yield 0.
func Cosine(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}

	var dot, nx, ny float64
	for i := range x {
		dot += x[i] * y[i]
		nx += x[i] * x[i]
		ny += y[i] * y[i]
	}

	if nx == 0 || ny == 0 {
		return 0
	}

	return round3(dot / (math.Sqrt(nx) * math.Sqrt(ny)))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// MockEmbedder returns canned vectors per input text, falling back to a
// deterministic default for unregistered inputs. Useful for tests and
// examples where no embedding service is available.
type MockEmbedder struct {
	vectors map[string][]float64
	fallbck []float64
}

// NewMockEmbedder constructs a MockEmbedder with a 3-dimensional default vector.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{
		vectors: make(map[string][]float64),
		fallbck: []float64{1, 0, 0},
	}
}

// AddVector registers the vector returned for text.
func (m *MockEmbedder) AddVector(text string, vec []float64) { m.vectors[text] = vec }

// SetFallback overrides the vector returned for unregistered inputs.
func (m *MockEmbedder) SetFallback(vec []float64) { m.fallbck = vec }

// Embed implements Embedder.
func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if vec, ok := m.vectors[text]; ok {
		return vec, nil
	}

	return m.fallbck, nil
}
