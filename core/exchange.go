package core

// Exchange is a single question/answer pair. It is the unit of both the
// caller-owned conversation memory (turns the human actually asked) and the
// per-run fact set (sub-questions resolved during decomposition).
type Exchange struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Memory is the ordered conversation history across runs. It is owned by
// the caller, passed by value into Agent.Run and never mutated in place;
// Run returns an updated copy with the new turn appended.
type Memory []Exchange

// With returns a new Memory with the given turn appended. The receiver is
// left untouched so callers can hold on to earlier snapshots.
func (m Memory) With(question, answer string) Memory {
	out := make(Memory, len(m), len(m)+1)
	copy(out, m)
	return append(out, Exchange{Question: question, Answer: answer})
}

// Facts is the ordered set of (sub-question, answer) pairs accumulated while
// resolving one top-level question. It is reset at the start of each run,
// grows monotonically during recursion and is threaded by value/return --
// sibling branches only ever see each other's facts via explicit
// return-and-merge in the orchestrator.
type Facts []Exchange

// Merge returns a new Facts slice with the contributions appended. Like
// Memory.With it copies instead of mutating, preserving monotonicity: an
// element is never removed or rewritten once appended.
func (f Facts) Merge(more Facts) Facts {
	out := make(Facts, len(f), len(f)+len(more))
	copy(out, f)
	return append(out, more...)
}
