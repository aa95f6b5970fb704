package engine

import (
	"fmt"
	"strings"

	"github.com/hupe1980/subquest/core"
	"github.com/hupe1980/subquest/tool"
)

const (
	systemAssistant = "You are a good and helpful assistant."
	systemReasoner  = "You are a good and helpful bot"
)

// Tags private to the engine's own prompt sections.
const (
	tagTools        = "TOOLS"
	tagSubQuestions = "SUBQUESTIONS"

	stopSubQuestions = "</" + tagSubQuestions + ">"
)

// reasonerSystem builds the system prompt for transcript-constrained
// answering, appending the configured persona when present.
func (e *Engine) reasonerSystem() string {
	if e.opts.Persona == "" {
		return systemReasoner
	}
	return systemReasoner + " <GLOBAL>" + e.opts.Persona + "</GLOBAL>"
}

// splitPrompt asks for an ordered sub-question list. The catalog is
// included for grounding only -- the splitter must know what information is
// reachable, not route to it.
func splitPrompt(catalog tool.Catalog, transcript, question string) string {
	var b strings.Builder
	b.WriteString(core.Tagged(tagTools, catalog.PromptBlocks()))
	b.WriteString("\n")
	b.WriteString(core.Tagged(core.TagConversation, transcript))
	b.WriteString("\nSplit the question below into the smallest list of independent ")
	b.WriteString("sub-questions that must each be answered first. ")
	b.WriteString("Write one sub-question per line. ")
	b.WriteString("If the question cannot be split, repeat it unchanged.\n")
	b.WriteString(core.Tagged(core.TagQuestion, question))
	b.WriteString("\n<" + tagSubQuestions + ">\n")
	return b.String()
}

// oraclePrompt asks whether the transcript already answers the question.
func oraclePrompt(transcript, question string) string {
	var b strings.Builder
	b.WriteString(transcript)
	b.WriteString("\nQ: ")
	b.WriteString(question)
	b.WriteString("\nCan Q be answered truthfully using only the information above? Answer YES or NO.\nA:")
	return b.String()
}

// routerPrompt asks for a bare tool index; the sentinel index is offered
// explicitly so "no tool" is a first-class choice rather than a parse
// accident.
func routerPrompt(catalog tool.Catalog, question string) string {
	var b strings.Builder
	b.WriteString(core.Tagged(tagTools, catalog.PromptBlocks()))
	b.WriteString("\nQ: ")
	b.WriteString(question)
	b.WriteString(fmt.Sprintf(
		"\nWhich tool ID should be used to answer Q? Answer with a single number, or %d if Q can be answered by reasoning alone.\nID:",
		catalog.Sentinel(),
	))
	return b.String()
}

// memoryAnswerPrompt constrains the answer to the transcript.
func memoryAnswerPrompt(transcript, question string) string {
	return transcript + "\nQ:" + question + "\nANSWER Q, DO NOT MAKE UP INFORMATION."
}

// reasonAnswerPrompt phrases the no-tool fallback: answer from whatever the
// transcript holds.
func reasonAnswerPrompt(transcript, question string) string {
	return transcript + "\nQ:" + question + "\nUsing this information, what is the answer to Q?"
}

// exampleBlock serializes one worked example: its context conversation, the
// question, the argument-synthesis sub-prompt and the expected response.
func exampleBlock(toolID int, ex tool.Example, answerLabel string, subPrompt func(toolID int) string) string {
	var conv strings.Builder
	for _, exchange := range ex.Context {
		conv.WriteString(core.Interaction(core.InteractionHuman, exchange))
	}

	var b strings.Builder
	b.WriteString("\n\n<" + core.TagExample + ">\n")
	if conv.Len() > 0 {
		b.WriteString(core.Tagged(core.TagConversation, conv.String()))
		b.WriteString("\n")
	}
	b.WriteString(core.Tagged(core.TagQuestion, ex.Question))
	b.WriteString("\n<" + core.TagThought + ">")
	b.WriteString(core.Tagged(core.TagPrompt, subPrompt(toolID)))
	b.WriteString("\n<" + core.TagResponse + " ty=" + answerLabel + ">\n")
	b.WriteString(ex.Args)
	b.WriteString("</" + core.TagResponse + "></" + core.TagThought + "></" + core.TagExample + ">")
	return b.String()
}

// liveBlock serializes the current question in the same shape as the worked
// examples but with the response left open for the model to complete.
func liveBlock(question string, toolID int, answerLabel string, subPrompt func(toolID int) string) string {
	var b strings.Builder
	b.WriteString("\n\n<" + core.TagExample + ">\n")
	b.WriteString(core.Tagged(core.TagQuestion, question))
	b.WriteString("\n<" + core.TagThought + ">")
	b.WriteString(core.Tagged(core.TagPrompt, subPrompt(toolID)))
	b.WriteString("\n<" + core.TagResponse + " ty=" + answerLabel + ">\n")
	return b.String()
}
