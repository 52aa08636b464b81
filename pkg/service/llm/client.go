// Package llm is the wire client for the OpenAI-compatible
// chat-completions API the relay forwards to.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/forgelab/promptforge/pkg/domain/model"
	"github.com/forgelab/promptforge/pkg/utils/safe"
)

const (
	// DefaultEndpoint is the chat-completions URL used when no
	// override is configured.
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"

	// DefaultModel is the model name used when no override is configured.
	DefaultModel = "gpt-4o-mini"

	temperature = 0.7
	maxTokens   = 1500
)

// UpstreamError carries a non-2xx provider response. The caller
// decides whether to surface it as 502 or fall back; it is never
// retried here.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return "upstream provider error"
}

type Client struct {
	apiKey     string
	endpoint   string
	model      string
	httpClient *http.Client
}

type Option func(*Client)

// WithEndpoint overrides the completion endpoint URL
func WithEndpoint(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.endpoint = url
		}
	}
}

// WithModel overrides the model name
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a completion client. An empty apiKey is allowed here so
// the server can start without provider credentials; callers must
// check Configured before use.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		endpoint:   DefaultEndpoint,
		model:      DefaultModel,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether a provider credential is available
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// Model returns the configured model name
func (c *Client) Model() string {
	return c.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// Complete sends a single chat-completion request and resolves the
// response. One request, one response: no retry, no streaming, no
// timeout beyond the HTTP client's default.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (*model.GenerationResult, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create completion request", goerr.V("endpoint", c.endpoint))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call completion endpoint", goerr.V("endpoint", c.endpoint))
	}
	defer safe.Close(ctx, resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read completion response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	completion := ParseCompletion(raw)
	return &completion.Result, nil
}
