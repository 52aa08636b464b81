package authsvc

import "encoding/json"

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identity is one linked identity of a provider account
type Identity struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
}

// User is the provider's account record
type User struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Identities []Identity `json:"identities"`
}

// Session is the provider's password-grant response
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// signUpResponse tolerates both response shapes the service uses:
// the user object at the top level (confirmation-required mode) or
// nested under "user" (auto-confirm mode).
type signUpResponse struct {
	ID         string          `json:"id"`
	Email      string          `json:"email"`
	Identities []Identity      `json:"identities"`
	UserField  json.RawMessage `json:"user"`
}

func (r *signUpResponse) user() *User {
	if len(r.UserField) > 0 && string(r.UserField) != "null" {
		var u User
		if err := json.Unmarshal(r.UserField, &u); err == nil && u.ID != "" {
			return &u
		}
	}
	if r.ID == "" {
		return nil
	}
	return &User{ID: r.ID, Email: r.Email, Identities: r.Identities}
}

// SignUpResult is the outcome of a sign-up call
type SignUpResult struct {
	User          *User
	hasIdentities bool
}

// AlreadyRegistered reports the provider's duplicate-account signal:
// a user object whose identities list is present but empty.
func (r *SignUpResult) AlreadyRegistered() bool {
	return r.User != nil && r.hasIdentities && len(r.User.Identities) == 0
}

// ProviderError is a non-2xx answer from the auth service. Message is
// the provider's own text, surfaced to the end user unchanged.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return e.Message
}
