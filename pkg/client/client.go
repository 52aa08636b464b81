// Package client is the programmatic counterpart of the PromptForge
// UI. It talks to the relay server, keeps form and display state, and
// degrades to local template generation when the relay is unreachable.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/forgelab/promptforge/pkg/domain/model"
	"github.com/forgelab/promptforge/pkg/utils/safe"
)

// RelayError is a non-2xx answer from the relay server
type RelayError struct {
	StatusCode int
	Body       string
}

func (e *RelayError) Error() string {
	return "relay request failed"
}

// API is the HTTP client for the relay server. Session cookies are
// kept in an in-process jar, matching how a browser would hold them.
type API struct {
	baseURL string
	hc      *http.Client
}

type APIOption func(*API)

// WithHTTPClient replaces the underlying HTTP client. The cookie jar
// is still installed when the client has none.
func WithHTTPClient(hc *http.Client) APIOption {
	return func(a *API) {
		a.hc = hc
	}
}

func NewAPI(baseURL string, opts ...APIOption) (*API, error) {
	if baseURL == "" {
		return nil, goerr.New("relay base URL is required")
	}

	a := &API{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.hc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create cookie jar")
		}
		a.hc.Jar = jar
	}

	return a, nil
}

type generatePayload struct {
	Profile     string `json:"profile"`
	Goal        string `json:"goal"`
	Level       string `json:"level"`
	Context     string `json:"context,omitempty"`
	Constraints string `json:"constraints,omitempty"`
}

// Generate relays the form to the server. Any transport failure or
// non-2xx status is an error; the caller decides whether to fall back
// to local generation.
func (a *API) Generate(ctx context.Context, in *model.FormInput) (*model.GenerationResult, error) {
	payload := generatePayload{
		Profile:     in.Profile,
		Goal:        in.Goal,
		Level:       in.Level,
		Context:     in.Context.String(),
		Constraints: in.Constraints.String(),
	}

	body, err := a.post(ctx, "/api/generate", payload)
	if err != nil {
		return nil, err
	}

	// The relay answers {thinking, prompt}; tolerate a non-JSON body
	// by treating it as raw prompt text.
	var result model.GenerationResult
	if err := json.Unmarshal(body, &result); err != nil || result.Prompt == "" {
		return &model.GenerationResult{
			Thinking: "Analysis not provided as JSON",
			Prompt:   string(body),
		}, nil
	}

	return &result, nil
}

// UserInfo is the signed-in account as the server reports it
type UserInfo struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
}

// SignUpResult is the server's answer to a sign-up request
type SignUpResult struct {
	Message           string `json:"message"`
	AlreadyRegistered bool   `json:"already_registered"`
}

func (a *API) SignUp(ctx context.Context, email, password string) (*SignUpResult, error) {
	body, err := a.post(ctx, "/api/auth/signup", map[string]string{
		"email": email, "password": password,
	})
	if err != nil {
		return nil, err
	}

	var result SignUpResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, goerr.Wrap(err, "failed to parse sign-up response")
	}
	return &result, nil
}

func (a *API) SignIn(ctx context.Context, email, password string) (*UserInfo, error) {
	body, err := a.post(ctx, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	})
	if err != nil {
		return nil, err
	}

	var user UserInfo
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, goerr.Wrap(err, "failed to parse login response")
	}
	return &user, nil
}

func (a *API) SignOut(ctx context.Context) error {
	_, err := a.post(ctx, "/api/auth/logout", struct{}{})
	return err
}

// HistoryItem mirrors the relay's history entry representation
type HistoryItem struct {
	ID        string    `json:"id"`
	Profile   string    `json:"profile"`
	Goal      string    `json:"goal"`
	Level     string    `json:"level"`
	Prompt    string    `json:"prompt"`
	Thinking  string    `json:"thinking"`
	Timestamp time.Time `json:"timestamp"`
}

type historyListPayload struct {
	Entries []HistoryItem `json:"entries"`
}

func (a *API) History(ctx context.Context) ([]HistoryItem, error) {
	body, err := a.get(ctx, "/api/history")
	if err != nil {
		return nil, err
	}

	var resp historyListPayload
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to parse history response")
	}
	return resp.Entries, nil
}

// SaveHistory stores one generation and returns the refreshed list
func (a *API) SaveHistory(ctx context.Context, item HistoryItem) ([]HistoryItem, error) {
	body, err := a.post(ctx, "/api/history", item)
	if err != nil {
		return nil, err
	}

	var resp historyListPayload
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to parse history response")
	}
	return resp.Entries, nil
}

func (a *API) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal request", goerr.V("path", path))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("path", path))
	}
	req.Header.Set("Content-Type", "application/json")

	return a.do(req)
}

func (a *API) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("path", path))
	}
	return a.do(req)
}

func (a *API) do(req *http.Request) ([]byte, error) {
	resp, err := a.hc.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "relay request failed", goerr.V("path", req.URL.Path))
	}
	defer safe.Close(req.Context(), resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read relay response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.Wrap(&RelayError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}, "relay returned an error", goerr.V("status", resp.StatusCode))
	}

	return body, nil
}
