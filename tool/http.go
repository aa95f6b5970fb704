package tool

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/hupe1980/subquest/core"
	"github.com/hupe1980/subquest/gateway"
)

// placeholderRe matches {name} references to synthesized argument fields in
// URL and query templates.
var placeholderRe = regexp.MustCompile(`\{([a-zA-Z0-9_.]+)\}`)

// HTTPOptions configure an HTTPInvoker.
type HTTPOptions struct {
	// Method defaults to GET.
	Method string
	// Headers are sent verbatim on every request (auth tokens, accept).
	Headers map[string]string
	// Query holds static query parameters; values may reference synthesized
	// arguments as {name} placeholders.
	Query map[string]string
	// HTTPClient defaults to a client with a 30 second timeout.
	HTTPClient *http.Client
	// Gateway folds the raw API response into a natural-language answer.
	// When nil the raw body is returned as the result.
	Gateway gateway.Gateway
	// AnswerSystem is the system prompt used for the folding call.
	AnswerSystem string
	// AnswerMaxTokens bounds the folded answer.
	AnswerMaxTokens int64
	// MaxBodyBytes bounds how much of the API response is read.
	MaxBodyBytes int64
}

// HTTPInvoker executes a templated HTTP request and folds the response body
// into an answer through the completion gateway. The URL and query values
// may contain {name} placeholders resolved against the synthesized argument
// JSON, so a single invoker definition serves arbitrary argument
// combinations the model produces.
type HTTPInvoker struct {
	url  string
	opts HTTPOptions
}

// NewHTTPInvoker constructs an HTTPInvoker for the given base URL.
func NewHTTPInvoker(rawURL string, optFns ...func(o *HTTPOptions)) *HTTPInvoker {
	opts := HTTPOptions{
		Method:          http.MethodGet,
		HTTPClient:      &http.Client{Timeout: 30 * time.Second},
		AnswerSystem:    "You are a good and helpful assistant.",
		AnswerMaxTokens: 256,
		MaxBodyBytes:    1 << 20,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &HTTPInvoker{url: rawURL, opts: opts}
}

// Invoke implements Invoker. Failures are categorized as *ToolError with
// codes HTTP_ERROR (transport), HTTP_STATUS (non-2xx) or FOLD_ERROR
// (gateway failure while folding the response).
func (inv *HTTPInvoker) Invoke(ctx context.Context, call Call) (string, error) {
	toolID := 0
	if call.Tool != nil {
		toolID = call.Tool.ID
	}

	target := expand(inv.url, call.Args)

	req, err := http.NewRequestWithContext(ctx, inv.opts.Method, target, nil)
	if err != nil {
		return "", &ToolError{ToolID: toolID, Message: err.Error(), Code: "HTTP_ERROR"}
	}

	values := url.Values{}
	for key, tpl := range inv.opts.Query {
		values.Set(key, expand(tpl, call.Args))
	}
	if encoded := values.Encode(); encoded != "" {
		req.URL.RawQuery = encoded
	}

	for key, value := range inv.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := inv.opts.HTTPClient.Do(req)
	if err != nil {
		return "", &ToolError{ToolID: toolID, Message: err.Error(), Code: "HTTP_ERROR"}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, inv.opts.MaxBodyBytes))
	if err != nil {
		return "", &ToolError{ToolID: toolID, Message: err.Error(), Code: "HTTP_ERROR"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ToolError{
			ToolID:  toolID,
			Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
			Code:    "HTTP_STATUS",
			Details: strings.TrimSpace(string(body)),
		}
	}

	if inv.opts.Gateway == nil {
		return strings.TrimSpace(string(body)), nil
	}

	return inv.fold(ctx, call, string(body), toolID)
}

// fold asks the gateway to turn the raw API response into a natural-language
// answer to the call's (possibly overridden) question. The call is billed
// against the run's meter when one is present.
func (inv *HTTPInvoker) fold(ctx context.Context, call Call, body string, toolID int) (string, error) {
	question := call.AnswerPrompt
	if question == "" {
		question = call.Question
	}

	var b strings.Builder
	b.WriteString(call.Transcript)
	b.WriteString("\n<DATA>")
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("</DATA>\nQ: ")
	b.WriteString(question)
	b.WriteString("\nUsing the data above, answer Q.")
	prompt := b.String()

	req := gateway.Request{
		System:    inv.opts.AnswerSystem,
		Prompt:    prompt,
		Stop:      core.StopAnswer,
		MaxTokens: inv.opts.AnswerMaxTokens,
		Tier:      call.Tier,
	}

	if call.Meter != nil {
		call.Meter.Charge(prompt, req.Tier)
	}

	resp, err := inv.opts.Gateway.Complete(ctx, req)
	if err != nil {
		return "", &ToolError{ToolID: toolID, Message: err.Error(), Code: "FOLD_ERROR"}
	}

	if call.Meter != nil {
		call.Meter.Charge(resp.Text, req.Tier)
	}

	return strings.TrimSpace(resp.Text), nil
}

// expand resolves {name} placeholders against the synthesized argument
// JSON. Unresolvable placeholders are left untouched so failures surface in
// the outgoing request rather than silently dropping parameters.
func expand(tpl, argsJSON string) string {
	if !strings.Contains(tpl, "{") {
		return tpl
	}

	return placeholderRe.ReplaceAllStringFunc(tpl, func(match string) string {
		name := match[1 : len(match)-1]
		if value := gjson.Get(argsJSON, name); value.Exists() {
			return value.String()
		}
		return match
	})
}
