// Package authsvc is a thin client for the external auth service
// (a GoTrue-compatible backend-as-a-service). Account management is
// entirely delegated; this client only passes credentials through and
// relays the provider's answers, including its error messages verbatim.
package authsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/forgelab/promptforge/pkg/utils/safe"
)

type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates an auth service client. baseURL is the service root
// (e.g. https://xyzcompany.supabase.co) and anonKey its public
// anonymous key.
func New(baseURL, anonKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.New("auth service URL is required")
	}
	if anonKey == "" {
		return nil, goerr.New("auth service anonymous key is required")
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// JWKSURL returns the service's public key set endpoint
func (c *Client) JWKSURL() string {
	return c.baseURL + "/auth/v1/.well-known/jwks.json"
}

// SignUp registers a new account. The returned result carries the
// provider's duplicate-account signal (an empty identities list).
func (c *Client) SignUp(ctx context.Context, email, password string) (*SignUpResult, error) {
	var resp signUpResponse
	if err := c.post(ctx, "/auth/v1/signup", credentials{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	user := resp.user()
	return &SignUpResult{
		User:          user,
		hasIdentities: user != nil && user.Identities != nil,
	}, nil
}

// SignInWithPassword exchanges credentials for a provider session
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var resp Session
	if err := c.post(ctx, "/auth/v1/token?grant_type=password", credentials{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	if resp.User.ID == "" {
		return nil, goerr.New("auth service returned no user")
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal auth request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to create auth request", goerr.V("path", path))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to call auth service", goerr.V("path", path))
	}
	defer safe.Close(ctx, resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to read auth service response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ProviderError{
			StatusCode: resp.StatusCode,
			Message:    providerMessage(raw),
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return goerr.Wrap(err, "failed to parse auth service response")
	}
	return nil
}

// providerMessage extracts the human-readable message from a provider
// error body, trying its known field names and falling back to the
// raw body so the message always survives verbatim.
func providerMessage(raw []byte) string {
	var body struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, m := range []string{body.Msg, body.Message, body.ErrorDescription, body.Error} {
			if m != "" {
				return m
			}
		}
	}
	return string(raw)
}
