package usecase

import (
	"github.com/forgelab/promptforge/pkg/domain/interfaces"
)

type UseCases struct {
	repo interfaces.Repository

	Generate *GenerateUseCase
	History  *HistoryUseCase
	Auth     AuthUseCaseInterface
}

type Option func(*UseCases)

// WithAuth sets the authentication use case
func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

// WithCompletionClient sets the LLM provider client used by Generate
func WithCompletionClient(client interfaces.CompletionClient) Option {
	return func(uc *UseCases) {
		uc.Generate.client = client
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		Generate: NewGenerateUseCase(nil),
		History:  NewHistoryUseCase(repo),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
