// Package core provides the foundational domain types used by SubQuest. It
// defines the core abstractions for:
//
//   - Exchanges (question/answer pairs forming memory and facts)
//   - Transcript serialization (the prompt markup consumed by models)
//   - CallLimiter (per-run model call budget enforcement)
//   - Trace events (structured progress records emitted by the engine)
//
// The package intentionally keeps implementation concerns (model providers,
// tool invocation, engine orchestration) out of scope so higher layers can
// depend on it without cycles. All exported identifiers include concise
// documentation to aid discoverability and external consumption.
package core
