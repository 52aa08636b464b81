package llm

import (
	"encoding/json"
	"strings"

	"github.com/forgelab/promptforge/pkg/domain/model"
)

// CompletionKind names the shape the provider payload turned out to
// have. The provider response is genuinely ambiguous across
// deployments (plain text, chat JSON, or a JSON document embedded in
// the content string), so the resolution is an explicit sum type with
// one deterministic extraction rule per variant, not nested error
// handling.
type CompletionKind string

const (
	// KindRawText: the body was not valid JSON; the whole body is the prompt.
	KindRawText CompletionKind = "raw_text"
	// KindProviderJSON: valid completion JSON whose content is plain text.
	KindProviderJSON CompletionKind = "provider_json"
	// KindProviderJSONInner: valid completion JSON whose content is
	// itself a {thinking, prompt} JSON document.
	KindProviderJSONInner CompletionKind = "provider_json_inner"
)

// Placeholder thinking values for the degraded variants
const (
	ThinkingNotJSON = "Analysis not provided as JSON"
	ThinkingRaw     = "Analysis provided as raw text"
)

// Completion is the resolved provider payload
type Completion struct {
	Kind   CompletionKind
	Result model.GenerationResult
}

// chatResponse covers both chat-style and legacy completion shapes
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text"`
	} `json:"choices"`
}

// ParseCompletion resolves a 2xx provider body into a generation
// result. It never fails: each malformed tier degrades to a more
// literal reading of the payload.
func ParseCompletion(raw []byte) *Completion {
	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return &Completion{
			Kind: KindRawText,
			Result: model.GenerationResult{
				Thinking: ThinkingNotJSON,
				Prompt:   string(raw),
			},
		}
	}

	content := extractContent(&resp)

	var inner model.GenerationResult
	if err := json.Unmarshal([]byte(content), &inner); err == nil && strings.TrimSpace(inner.Prompt) != "" {
		return &Completion{Kind: KindProviderJSONInner, Result: inner}
	}

	return &Completion{
		Kind: KindProviderJSON,
		Result: model.GenerationResult{
			Thinking: ThinkingRaw,
			Prompt:   content,
		},
	}
}

// extractContent picks the message content out of the completion:
// chat-style choices[0].message.content first, then legacy
// choices[0].text, then empty string.
func extractContent(resp *chatResponse) string {
	if len(resp.Choices) == 0 {
		return ""
	}
	if resp.Choices[0].Message.Content != "" {
		return resp.Choices[0].Message.Content
	}
	return resp.Choices[0].Text
}
