package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine_IdenticalVectors(t *testing.T) {
	vec := []float64{0.3, 0.5, 0.2}

	assert.Equal(t, 1.0, Cosine(vec, vec))
}

func TestCosine_OrthogonalVectors(t *testing.T) {
	assert.Equal(t, 0.0, Cosine([]float64{1, 0}, []float64{0, 1}))
}

func TestCosine_OppositeVectors(t *testing.T) {
	assert.Equal(t, -1.0, Cosine([]float64{1, 0}, []float64{-1, 0}))
}

func TestCosine_ScaleInvariant(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{10, 20, 30}

	assert.Equal(t, 1.0, Cosine(x, y))
}

func TestCosine_RoundsToThreeDecimals(t *testing.T) {
	// Angle chosen so the raw similarity has a long fraction.
	got := Cosine([]float64{1, 0}, []float64{1, 1})

	assert.Equal(t, 0.707, got)
}

func TestCosine_MismatchedLengths(t *testing.T) {
	assert.Equal(t, 0.0, Cosine([]float64{1, 2}, []float64{1, 2, 3}))
}

func TestCosine_ZeroVectors(t *testing.T) {
	assert.Equal(t, 0.0, Cosine([]float64{0, 0}, []float64{1, 2}))
	assert.Equal(t, 0.0, Cosine(nil, nil))
}

func TestMockEmbedder_RegisteredVector(t *testing.T) {
	m := NewMockEmbedder()
	m.AddVector("hello", []float64{0, 1, 0})

	vec, err := m.Embed(context.Background(), "hello")
	assert.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, vec)
}

func TestMockEmbedder_FallbackIsDeterministic(t *testing.T) {
	m := NewMockEmbedder()

	first, err := m.Embed(context.Background(), "unregistered a")
	assert.NoError(t, err)
	second, err := m.Embed(context.Background(), "unregistered b")
	assert.NoError(t, err)

	// Unregistered inputs share the fallback vector, so they gate as identical.
	assert.Equal(t, 1.0, Cosine(first, second))
}

func TestMockEmbedder_SetFallback(t *testing.T) {
	m := NewMockEmbedder()
	m.SetFallback([]float64{0, 0, 1})

	vec, err := m.Embed(context.Background(), "anything")
	assert.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1}, vec)
}

func TestMockEmbedder_ContextCancellation(t *testing.T) {
	m := NewMockEmbedder()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Embed(ctx, "hello")
	assert.ErrorIs(t, err, context.Canceled)
}
