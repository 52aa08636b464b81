package usecase

import (
	"context"

	"github.com/forgelab/promptforge/pkg/domain/interfaces"
	"github.com/forgelab/promptforge/pkg/domain/model/auth"
)

// NoAuthnUseCase provides authentication using a fixed user (for development/testing)
type NoAuthnUseCase struct {
	repo  interfaces.Repository
	sub   string
	email string
}

// NewNoAuthnUseCase creates a new NoAuthnUseCase instance with specified user info
func NewNoAuthnUseCase(repo interfaces.Repository, sub, email string) *NoAuthnUseCase {
	return &NoAuthnUseCase{
		repo:  repo,
		sub:   sub,
		email: email,
	}
}

// SignUp always reports success for the fixed user
func (uc *NoAuthnUseCase) SignUp(ctx context.Context, email, password string) (*SignUpOutcome, error) {
	return &SignUpOutcome{Email: uc.email}, nil
}

// SignIn returns a token for the fixed user without contacting any service
func (uc *NoAuthnUseCase) SignIn(ctx context.Context, email, password string) (*auth.Token, error) {
	return auth.NewToken(uc.sub, uc.email), nil
}

// ValidateToken always returns a token for the fixed user
func (uc *NoAuthnUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	return auth.NewToken(uc.sub, uc.email), nil
}

// Logout does nothing in no-auth mode
func (uc *NoAuthnUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	// No-op in no-auth mode
	return nil
}

// IsNoAuthn returns true for NoAuthnUseCase
func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}
