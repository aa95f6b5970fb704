package core

import "strings"

// Markup tags used to serialize conversation state and tool metadata into
// model prompts. The engine relies on the closing tags as stop markers so
// completions terminate at predictable boundaries.
const (
	TagTool        = "TOOL"
	TagToolID      = "ID"
	TagDescription = "DESCRIPTION"
	TagParams      = "PARAMS"

	TagConversation = "CONVERSATION"
	TagExample      = "EXAMPLE"
	TagQuestion     = "QUESTION"
	TagThought      = "THOUGHT"
	TagPrompt       = "PROMPT"
	TagResponse     = "RESPONSE"

	// StopResponse terminates few-shot argument completions.
	StopResponse = "</" + TagResponse + ">"
	// StopAnswer terminates free-form answer completions.
	StopAnswer = "</AI>"
)

// Interaction kinds distinguishing real human turns from facts the agent
// derived itself during decomposition.
const (
	InteractionHuman = "Human-AI"
	InteractionAgent = "AI-AI"
)

// Interaction serializes a single exchange as prompt markup. The asker is
// always tagged <P> and the answer <AI>; kind labels whether the exchange
// came from the human conversation or from agent-derived facts.
func Interaction(kind string, ex Exchange) string {
	var b strings.Builder
	b.WriteString("<>")
	b.WriteString(kind)
	b.WriteString(":<P>")
	b.WriteString(ex.Question)
	b.WriteString("</P>\n<AI>")
	b.WriteString(ex.Answer)
	b.WriteString("</AI>\n</>")
	return b.String()
}

// OpenInteraction serializes a question that has no answer yet, leaving the
// <AI> tag open so the model completes it. Used for live prompts where the
// completion is the answer.
func OpenInteraction(kind, question string) string {
	var b strings.Builder
	b.WriteString("<>")
	b.WriteString(kind)
	b.WriteString(":<P>")
	b.WriteString(question)
	b.WriteString("</P>\n<AI>")
	return b.String()
}

// Transcript serializes memory followed by facts into a single text blob.
// It is a pure function of its inputs: the orchestrator recomputes it
// whenever facts grow instead of caching, so later siblings always observe
// earlier siblings' contributions.
func Transcript(memory Memory, facts Facts) string {
	var b strings.Builder
	for _, ex := range memory {
		b.WriteString(Interaction(InteractionHuman, ex))
	}
	for _, ex := range facts {
		b.WriteString(Interaction(InteractionAgent, ex))
	}
	return b.String()
}

// Tagged wraps text in an XML-like tag pair.
func Tagged(tag, text string) string {
	return "<" + tag + ">" + text + "</" + tag + ">"
}
