package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/forgelab/promptforge/pkg/domain/types"
)

// TokenID identifies a server-side session token
type TokenID string

// TokenSecret is the secret half of a session token pair
type TokenSecret string

const (
	// AnonymousUserID is used when no authentication is configured
	AnonymousUserID = "anonymous"

	tokenTTL = 7 * 24 * time.Hour
)

// NewTokenID generates a new UUID v4 TokenID
func NewTokenID() TokenID {
	return TokenID(uuid.New().String())
}

// NewTokenSecret generates a new UUID v4 TokenSecret
func NewTokenSecret() TokenSecret {
	return TokenSecret(uuid.New().String())
}

// Validate checks if the TokenID is well-formed
func (t TokenID) Validate() error {
	if t == "" {
		return goerr.New("token ID cannot be empty")
	}
	return nil
}

// String returns the string representation of TokenID
func (t TokenID) String() string {
	return string(t)
}

// String returns the string representation of TokenSecret
func (t TokenSecret) String() string {
	return string(t)
}

// Token is a server-minted session. The account itself lives in the
// external auth service; only the session mapping is stored here.
type Token struct {
	ID        TokenID     `firestore:"id" json:"id"`
	Secret    TokenSecret `firestore:"secret" json:"secret"`
	Sub       string      `firestore:"sub" json:"sub"`
	Email     string      `firestore:"email" json:"email"`
	CreatedAt time.Time   `firestore:"created_at" json:"created_at"`
	ExpiresAt time.Time   `firestore:"expires_at" json:"expires_at"`
}

// NewToken creates a session token for the given subject
func NewToken(sub, email string) *Token {
	now := time.Now().UTC()
	return &Token{
		ID:        NewTokenID(),
		Secret:    NewTokenSecret(),
		Sub:       sub,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(tokenTTL),
	}
}

// NewAnonymousUser returns a token representing unauthenticated use
func NewAnonymousUser() *Token {
	return &Token{
		ID:     NewTokenID(),
		Secret: NewTokenSecret(),
		Sub:    AnonymousUserID,
	}
}

// Validate checks the token's structural integrity
func (t *Token) Validate() error {
	if err := t.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token")
	}
	if t.Secret == "" {
		return goerr.New("token secret cannot be empty")
	}
	if t.Sub == "" {
		return goerr.New("token subject cannot be empty")
	}
	return nil
}

// IsExpired reports whether the token has passed its expiry
func (t *Token) IsExpired() bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(t.ExpiresAt)
}

// IsAnonymous reports whether the token represents unauthenticated use
func (t *Token) IsAnonymous() bool {
	return t.Sub == AnonymousUserID
}

// UserID returns the external account ID this session belongs to,
// or an empty (anonymous) UserID for unauthenticated sessions.
func (t *Token) UserID() types.UserID {
	if t.IsAnonymous() {
		return types.UserID("")
	}
	return types.UserID(t.Sub)
}

type ctxTokenKey struct{}

// ContextWithToken embeds the session token into the context
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxTokenKey{}, token)
}

// TokenFromContext retrieves the session token from the context
func TokenFromContext(ctx context.Context) (*Token, bool) {
	token, ok := ctx.Value(ctxTokenKey{}).(*Token)
	return token, ok
}
