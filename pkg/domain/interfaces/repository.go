package interfaces

import (
	"context"

	"github.com/forgelab/promptforge/pkg/domain/model/auth"
)

// Repository is the persistence facade. Two backends implement it:
// Firestore for production and an in-memory store for development
// and tests.
type Repository interface {
	History() HistoryRepository

	// Session token storage
	PutToken(ctx context.Context, token *auth.Token) error
	GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error)
	DeleteToken(ctx context.Context, tokenID auth.TokenID) error

	Close() error
}
