package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// -------------------- Pricing --------------------

func TestTierPricePerChar(t *testing.T) {
	assert.Equal(t, 0.02/2700.0, TierBest.PricePerChar())
	assert.Equal(t, 0.002/2700.0, TierEconomy.PricePerChar())
	// Unknown tiers price as best so estimates err high.
	assert.Equal(t, 0.02/2700.0, Tier("mystery").PricePerChar())
}

func TestMeter_ChargeAccumulates(t *testing.T) {
	meter := NewMeter()

	first := meter.Charge("hello", TierBest)
	assert.Equal(t, 5*TierBest.PricePerChar(), first)

	second := meter.Charge("hi", TierEconomy)
	assert.Equal(t, 2*TierEconomy.PricePerChar(), second)

	assert.Equal(t, first+second, meter.Total())
}

func TestMeter_Monotonic(t *testing.T) {
	meter := NewMeter()

	prev := meter.Total()
	for i := 0; i < 10; i++ {
		meter.Charge("some prompt text", TierEconomy)
		assert.Greater(t, meter.Total(), prev)
		prev = meter.Total()
	}
}

func TestMeter_Reset(t *testing.T) {
	meter := NewMeter()
	meter.Charge("text", TierBest)

	meter.Reset()

	assert.Equal(t, 0.0, meter.Total())
}

func TestMeter_EconomyTenTimesCheaper(t *testing.T) {
	meter := NewMeter()

	best := meter.Charge("same text", TierBest)
	economy := meter.Charge("same text", TierEconomy)

	assert.InDelta(t, 10.0, best/economy, 1e-9)
}

// -------------------- MockGateway --------------------

func TestMockGateway_CannedResponse(t *testing.T) {
	gw := NewMockGateway("mock")
	gw.AddResponse("known prompt", "canned answer")

	resp, err := gw.Complete(context.Background(), Request{Prompt: "known prompt"})
	assert.NoError(t, err)
	assert.Equal(t, "canned answer", resp.Text)
}

func TestMockGateway_DefaultResponse(t *testing.T) {
	gw := NewMockGateway("mock")

	resp, err := gw.Complete(context.Background(), Request{Prompt: "anything"})
	assert.NoError(t, err)
	assert.Equal(t, "Mock response to: anything", resp.Text)
}

func TestMockGateway_HandlerTakesPrecedence(t *testing.T) {
	gw := NewMockGateway("mock")
	gw.AddResponse("p", "canned")
	gw.SetHandler(func(req Request) (string, error) {
		return "handled", nil
	})

	resp, err := gw.Complete(context.Background(), Request{Prompt: "p"})
	assert.NoError(t, err)
	assert.Equal(t, "handled", resp.Text)
}

func TestMockGateway_HandlerError(t *testing.T) {
	gw := NewMockGateway("mock")
	gw.SetHandler(func(Request) (string, error) {
		return "", errors.New("provider down")
	})

	_, err := gw.Complete(context.Background(), Request{Prompt: "p"})
	assert.Error(t, err)
}

func TestMockGateway_RecordsRequests(t *testing.T) {
	gw := NewMockGateway("mock")

	_, _ = gw.Complete(context.Background(), Request{Prompt: "one", Tier: TierBest})
	_, _ = gw.Complete(context.Background(), Request{Prompt: "two", Tier: TierEconomy})

	reqs := gw.Requests()
	assert.Len(t, reqs, 2)
	assert.Equal(t, "one", reqs[0].Prompt)
	assert.Equal(t, TierEconomy, reqs[1].Tier)
}

func TestMockGateway_ContextCancellation(t *testing.T) {
	gw := NewMockGateway("mock")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gw.Complete(ctx, Request{Prompt: "p"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, gw.Requests())
}

func TestMockGateway_Info(t *testing.T) {
	gw := NewMockGateway("mock")

	info := gw.Info()
	assert.Equal(t, "mock", info.Provider)
	assert.Equal(t, "mock-best", info.BestModel)
	assert.Equal(t, "mock-economy", info.EconomyModel)
}
