package gateway

import (
	"context"
	"fmt"
	"sync"
)

// Request captures the normalized model input produced by the engine.
// Prompt carries the fully serialized context blob; Stop bounds the
// completion so structured sections terminate predictably.
type Request struct {
	System      string  `json:"system,omitempty"`
	Prompt      string  `json:"prompt"`
	Stop        string  `json:"stop,omitempty"`
	MaxTokens   int64   `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Tier        Tier    `json:"tier"`
}

// Response is the completed text returned by a provider.
type Response struct {
	Text string `json:"text"`
}

// Info contains metadata about a gateway implementation.
type Info struct {
	Provider     string `json:"provider"` // "openai", "anthropic", "mock", etc.
	BestModel    string `json:"best_model"`
	EconomyModel string `json:"economy_model"`
}

// Gateway is the minimal interface required by the engine to drive
// generation. Implementations must be safe for recursive invocation: the
// engine calls Complete from arbitrarily deep points in its call tree with
// no shared mutable state beyond the run's Meter.
type Gateway interface {
	Complete(ctx context.Context, req Request) (Response, error)

	// Info returns information about the gateway implementation.
	Info() Info
}

// MockGateway is a lightweight in-memory Gateway useful for tests & examples.
// Responses can be registered per exact prompt, or a handler can be set to
// script arbitrary behavior. All received requests are recorded.
type MockGateway struct {
	info      Info
	responses map[string]string
	handler   func(req Request) (string, error)

	mu       sync.Mutex
	requests []Request
}

// NewMockGateway constructs a MockGateway.
func NewMockGateway(provider string) *MockGateway {
	return &MockGateway{
		info: Info{
			Provider:     provider,
			BestModel:    "mock-best",
			EconomyModel: "mock-economy",
		},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockGateway) AddResponse(prompt, response string) { m.responses[prompt] = response }

// SetHandler installs a function consulted for every request before the
// canned responses. Returning an error simulates provider unavailability.
func (m *MockGateway) SetHandler(fn func(req Request) (string, error)) { m.handler = fn }

// Requests returns a copy of all requests received so far.
func (m *MockGateway) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Complete implements Gateway.
func (m *MockGateway) Complete(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.handler != nil {
		text, err := m.handler(req)
		if err != nil {
			return Response{}, err
		}
		return Response{Text: text}, nil
	}

	if full, ok := m.responses[req.Prompt]; ok {
		return Response{Text: full}, nil
	}

	return Response{Text: fmt.Sprintf("Mock response to: %s", req.Prompt)}, nil
}

// Info implements Gateway.
func (m *MockGateway) Info() Info { return m.info }
