// Package tool implements the tool catalog subsystem: validated descriptors
// of external information sources, their few-shot worked examples, and the
// invokers that perform the actual calls. Descriptors carry everything the
// engine needs to route a question to a tool and synthesize its arguments;
// invocation mechanics (HTTP, auth, response folding) stay behind the
// Invoker interface.
package tool

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/hupe1980/subquest/core"
)

// Example is a worked (context, question, arguments) triple used to teach
// the model how to fill a tool's parameters. Args must be a JSON document
// matching the tool's parameter names.
type Example struct {
	Context  []core.Exchange `json:"context"`
	Question string          `json:"question"`
	Args     string          `json:"args"`
}

// Descriptor declaratively exposes a tool to the engine.
//
// The ID always equals the descriptor's position in its catalog; the value
// len(catalog) is reserved as the sentinel meaning "no tool -- answer from
// reasoning." Params maps parameter names to natural-language descriptions
// of their meaning; the engine serializes them into routing and synthesis
// prompts, it never interprets them.
type Descriptor struct {
	ID          int               `json:"id"`
	Description string            `json:"description"`
	Params      map[string]string `json:"params,omitempty"`
	Examples    []Example         `json:"examples,omitempty"`
	Invoker     Invoker           `json:"-"`

	// AnswerPrompt optionally overrides the question used when folding the
	// tool's raw result into a natural-language answer.
	AnswerPrompt string `json:"answer_prompt,omitempty"`
}

// PromptBlock serializes the descriptor as prompt markup. Parameter names
// are emitted in sorted order so identical catalogs always produce
// identical prompts.
func (d Descriptor) PromptBlock() string {
	params := "{}"
	if len(d.Params) > 0 {
		names := make([]string, 0, len(d.Params))
		for name := range d.Params {
			names = append(names, name)
		}
		sort.Strings(names)

		pairs := make([]string, len(names))
		for i, name := range names {
			pairs[i] = fmt.Sprintf("%q: %s", name, d.Params[name])
		}
		params = "{" + strings.Join(pairs, ", ") + "}"
	}

	var b strings.Builder
	b.WriteString("<" + core.TagTool + ">\n")
	b.WriteString(core.Tagged(core.TagToolID, fmt.Sprintf("%d", d.ID)) + "\n")
	b.WriteString(core.Tagged(core.TagDescription, d.Description) + "\n")
	b.WriteString(core.Tagged(core.TagParams, params) + "\n")
	b.WriteString("</" + core.TagTool + ">")
	return b.String()
}

// Catalog is the ordered, validated list of tools available to one agent
// instance. It is fixed for the agent's lifetime.
type Catalog []Descriptor

// NewCatalog validates the descriptors and assigns each its positional ID.
// It fails fast on structural problems (missing description or invoker,
// malformed example JSON) so call sites never need presence checks.
func NewCatalog(descs ...Descriptor) (Catalog, error) {
	catalog := make(Catalog, len(descs))

	for i, d := range descs {
		if strings.TrimSpace(d.Description) == "" {
			return nil, fmt.Errorf("tool %d: description is required", i)
		}
		if d.Invoker == nil {
			return nil, fmt.Errorf("tool %d: invoker is required", i)
		}
		for j, ex := range d.Examples {
			if !gjson.Valid(ex.Args) {
				return nil, fmt.Errorf("tool %d: example %d: args is not valid JSON", i, j)
			}
		}

		d.ID = i
		catalog[i] = d
	}

	return catalog, nil
}

// Sentinel returns the reserved index meaning "no tool; answer from
// reasoning over the transcript."
func (c Catalog) Sentinel() int { return len(c) }

// Contains reports whether id addresses a real tool in the catalog.
func (c Catalog) Contains(id int) bool { return id >= 0 && id < len(c) }

// PromptBlocks serializes every descriptor in catalog order.
func (c Catalog) PromptBlocks() string {
	var b strings.Builder
	for _, d := range c {
		b.WriteString(d.PromptBlock())
	}
	return b.String()
}

// ToolError represents errors that occur during tool invocation.
type ToolError struct {
	ToolID  int    `json:"tool_id"`           // ID of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in tool %d: %s", e.Code, e.ToolID, e.Message)
	}
	return fmt.Sprintf("tool error in tool %d: %s", e.ToolID, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(toolID int, message, code string) *ToolError {
	return &ToolError{
		ToolID:  toolID,
		Message: message,
		Code:    code,
	}
}
