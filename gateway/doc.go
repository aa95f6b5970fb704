// Package gateway defines the completion gateway abstraction: the single
// choke point through which every model call of the engine flows. It
// provides:
//
//   - Gateway (the minimal completion interface implemented by providers)
//   - Request/Response (normalized prompt + stop marker + generation knobs)
//   - Tier (quality/price trade-off selecting the underlying model strength)
//   - Meter (the per-run cost accumulator charged per character)
//   - MockGateway (deterministic in-memory gateway for tests & examples)
//
// Provider adapters live in subpackages (gateway/openai, gateway/anthropic)
// so the core engine never imports a vendor SDK directly.
package gateway
