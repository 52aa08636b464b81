package llm_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/forgelab/promptforge/pkg/service/llm"
)

func chatBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	gt.NoError(t, err).Required()
	return body
}

func TestParseCompletion(t *testing.T) {
	t.Run("malformed top-level JSON becomes raw text", func(t *testing.T) {
		c := llm.ParseCompletion([]byte("Sure! Here is your prompt."))

		gt.Value(t, c.Kind).Equal(llm.KindRawText)
		gt.Value(t, c.Result.Prompt).Equal("Sure! Here is your prompt.")
		gt.Value(t, c.Result.Thinking).Equal(llm.ThinkingNotJSON)
	})

	t.Run("valid JSON with plain text content", func(t *testing.T) {
		c := llm.ParseCompletion(chatBody(t, "Act as a SQL tutor."))

		gt.Value(t, c.Kind).Equal(llm.KindProviderJSON)
		gt.Value(t, c.Result.Prompt).Equal("Act as a SQL tutor.")
		gt.Value(t, c.Result.Thinking).Equal(llm.ThinkingRaw)
	})

	t.Run("valid JSON with inner thinking/prompt JSON", func(t *testing.T) {
		inner := `{"thinking": "step by step", "prompt": "Act as a SQL tutor."}`
		c := llm.ParseCompletion(chatBody(t, inner))

		gt.Value(t, c.Kind).Equal(llm.KindProviderJSONInner)
		gt.Value(t, c.Result.Thinking).Equal("step by step")
		gt.Value(t, c.Result.Prompt).Equal("Act as a SQL tutor.")
	})

	t.Run("legacy text field is used when message content is absent", func(t *testing.T) {
		body := []byte(`{"choices":[{"text":"legacy completion"}]}`)
		c := llm.ParseCompletion(body)

		gt.Value(t, c.Kind).Equal(llm.KindProviderJSON)
		gt.Value(t, c.Result.Prompt).Equal("legacy completion")
	})

	t.Run("no choices degrades to empty prompt", func(t *testing.T) {
		c := llm.ParseCompletion([]byte(`{"choices":[]}`))

		gt.Value(t, c.Kind).Equal(llm.KindProviderJSON)
		gt.Value(t, c.Result.Prompt).Equal("")
	})

	t.Run("inner JSON without prompt falls back to verbatim content", func(t *testing.T) {
		c := llm.ParseCompletion(chatBody(t, `{"unrelated": true}`))

		gt.Value(t, c.Kind).Equal(llm.KindProviderJSON)
		gt.Value(t, c.Result.Prompt).Equal(`{"unrelated": true}`)
		gt.Value(t, c.Result.Thinking).Equal(llm.ThinkingRaw)
	})
}
