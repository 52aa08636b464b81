package usecase

import (
	"context"

	"github.com/forgelab/promptforge/pkg/domain/model/auth"
)

// AuthUseCaseInterface abstracts the authentication flow so the HTTP
// controller works the same with the real provider-backed use case
// and the no-auth development mode.
type AuthUseCaseInterface interface {
	SignUp(ctx context.Context, email, password string) (*SignUpOutcome, error)
	SignIn(ctx context.Context, email, password string) (*auth.Token, error)
	ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error)
	Logout(ctx context.Context, tokenID auth.TokenID) error
	IsNoAuthn() bool
}
