// Package engine implements the recursive decomposition-and-routing loop at
// the heart of SubQuest. For every (sub)question it:
//
//  1. Optionally asks the gateway to split the question into independent
//     sub-questions, gating the result through an embedding-based
//     similarity check so near-restatements of the original never recurse
//  2. Resolves accepted sub-questions sequentially, each later sibling
//     observing the facts earlier siblings produced
//  3. Short-circuits through a memory sufficiency check before paying for
//     tool routing
//  4. Routes to a catalog tool (or the no-tool sentinel), synthesizes its
//     arguments few-shot, and folds the tool result into an answer
//
// Every gateway call is billed against the run's cost meter, and an
// explicit depth cap plus call budget bound the otherwise open-ended
// decomposition search. The engine emits structured trace events instead of
// printing; presentation is a TraceSink concern.
package engine
