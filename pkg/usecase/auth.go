package usecase

import (
	"context"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/forgelab/promptforge/pkg/domain/interfaces"
	"github.com/forgelab/promptforge/pkg/domain/model/auth"
	"github.com/forgelab/promptforge/pkg/service/authsvc"
	"github.com/forgelab/promptforge/pkg/utils/logging"
)

// SignUpOutcome reports whether a sign-up created a new account or
// hit an existing one. The provider signals a duplicate by returning
// a user object with an empty identities list instead of an error.
type SignUpOutcome struct {
	Email             string
	AlreadyRegistered bool
}

// AuthUseCase delegates account management to the external auth
// service and mints server-side session tokens for signed-in users.
type AuthUseCase struct {
	repo         interfaces.Repository
	client       *authsvc.Client
	verifyTokens bool
	cache        *authCache
}

// AuthOption is a functional option for AuthUseCase
type AuthOption func(*AuthUseCase)

// WithTokenVerification enables JWT verification of the provider's
// access token against its published JWKS before a session is minted.
func WithTokenVerification() AuthOption {
	return func(uc *AuthUseCase) {
		uc.verifyTokens = true
	}
}

func NewAuthUseCase(repo interfaces.Repository, client *authsvc.Client, options ...AuthOption) *AuthUseCase {
	uc := &AuthUseCase{
		repo:   repo,
		client: client,
		cache:  newAuthCache(),
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

// IsNoAuthn returns false for regular AuthUseCase
func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

// SignUp registers a new account with the auth service. Credentials
// are checked locally before any network call.
func (uc *AuthUseCase) SignUp(ctx context.Context, email, password string) (*SignUpOutcome, error) {
	if email == "" || password == "" {
		return nil, goerr.Wrap(ErrCredentialsRequired, "sign-up rejected")
	}

	result, err := uc.client.SignUp(ctx, email, password)
	if err != nil {
		return nil, goerr.Wrap(err, "sign-up failed", goerr.V(EmailKey, email))
	}

	outcome := &SignUpOutcome{
		Email:             email,
		AlreadyRegistered: result.AlreadyRegistered(),
	}
	if outcome.AlreadyRegistered {
		logging.From(ctx).Info("sign-up against existing account", EmailKey, email)
	}

	return outcome, nil
}

// SignIn exchanges credentials for a provider session, then mints and
// stores a local session token. The provider's access token is not
// kept; it is only verified when token verification is enabled.
func (uc *AuthUseCase) SignIn(ctx context.Context, email, password string) (*auth.Token, error) {
	if email == "" || password == "" {
		return nil, goerr.Wrap(ErrCredentialsRequired, "sign-in rejected")
	}

	session, err := uc.client.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, goerr.Wrap(err, "sign-in failed", goerr.V(EmailKey, email))
	}

	sub := session.User.ID
	if uc.verifyTokens {
		verified, err := uc.verifyAccessToken(ctx, session.AccessToken)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid access token from auth service")
		}
		sub = verified
	}
	if sub == "" {
		return nil, goerr.New("auth service returned no user ID", goerr.V(EmailKey, email))
	}

	token := auth.NewToken(sub, session.User.Email)
	if err := uc.repo.PutToken(ctx, token); err != nil {
		return nil, goerr.Wrap(err, "failed to store session token", goerr.V("token_id", token.ID))
	}

	return token, nil
}

// verifyAccessToken checks the JWT signature against the provider's
// key set and returns the subject claim.
func (uc *AuthUseCase) verifyAccessToken(ctx context.Context, accessToken string) (string, error) {
	keySet, err := jwk.Fetch(ctx, uc.client.JWKSURL())
	if err != nil {
		return "", goerr.Wrap(err, "failed to fetch auth service key set", goerr.V("jwks_url", uc.client.JWKSURL()))
	}

	// Allow 10 seconds of clock skew to handle time synchronization differences
	token, err := jwt.Parse([]byte(accessToken), jwt.WithKeySet(keySet), jwt.WithValidate(true), jwt.WithAcceptableSkew(10*time.Second))
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse or verify JWT token")
	}

	sub := token.Subject()
	if sub == "" {
		return "", goerr.New("sub claim not found in token")
	}

	return sub, nil
}

// ValidateToken validates the session token and returns its record
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	return uc.validateTokenWithCache(ctx, tokenID, tokenSecret)
}

// Logout deletes the session token
func (uc *AuthUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	// Remove from cache first
	uc.cache.remove(tokenID)

	// Then remove from repository
	return uc.repo.DeleteToken(ctx, tokenID)
}
