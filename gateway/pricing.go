package gateway

import "sync"

// Tier selects the quality/price trade-off of the underlying model.
type Tier string

const (
	// TierBest is the higher-fidelity, more expensive model tier.
	TierBest Tier = "best"
	// TierEconomy is the cheaper, lower-fidelity model tier the engine
	// drops to once a run's cumulative cost crosses its price threshold.
	TierEconomy Tier = "economy"
)

// Per-character billing rates. Providers bill per token; the original
// per-character approximation (price per 1k tokens divided by ~2.7 chars per
// token) is kept so cost estimates stay comparable across providers.
const (
	bestPricePerChar    = 0.02 / 2700.0
	economyPricePerChar = 0.002 / 2700.0

	// CharsPerToken approximates how many prompt characters make up a token.
	CharsPerToken = 2.7
)

// PricePerChar returns the estimated billing rate for one character at this
// tier. Unknown tiers price as TierBest so estimates err on the high side.
func (t Tier) PricePerChar() float64 {
	if t == TierEconomy {
		return economyPricePerChar
	}
	return bestPricePerChar
}

// Meter accumulates the estimated monetary cost of gateway calls for one
// run. It only ever increases; Reset is called by the engine at the start
// of each top-level run. Access is synchronized so a future concurrent
// orchestrator does not lose charges.
type Meter struct {
	mu    sync.Mutex
	total float64
}

// NewMeter returns a zeroed meter.
func NewMeter() *Meter { return &Meter{} }

// Charge bills the given text at the tier's per-character rate, adds it to
// the running total and returns the individual charge.
func (m *Meter) Charge(text string, tier Tier) float64 {
	cost := float64(len(text)) * tier.PricePerChar()

	m.mu.Lock()
	m.total += cost
	m.mu.Unlock()

	return cost
}

// Total returns the accumulated cost so far.
func (m *Meter) Total() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.total
}

// Reset zeroes the meter at the start of a new run.
func (m *Meter) Reset() {
	m.mu.Lock()
	m.total = 0
	m.mu.Unlock()
}
