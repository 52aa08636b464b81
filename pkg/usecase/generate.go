package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/forgelab/promptforge/pkg/domain/interfaces"
	"github.com/forgelab/promptforge/pkg/domain/model"
	"github.com/forgelab/promptforge/pkg/service/prompt"
)

// configuredClient lets Generate distinguish "no client at all" from
// "client without a credential" without importing the wire package.
type configuredClient interface {
	Configured() bool
}

// GenerateUseCase relays one form input to the LLM provider. It is
// stateless per request; persisting the result is the caller's
// decision (see HistoryUseCase).
type GenerateUseCase struct {
	client interfaces.CompletionClient
}

func NewGenerateUseCase(client interfaces.CompletionClient) *GenerateUseCase {
	return &GenerateUseCase{client: client}
}

// Generate validates the input, builds the instruction pair and sends
// a single completion request. Parse degradation is handled inside
// the client; errors returned here are validation, configuration or
// upstream failures only.
func (uc *GenerateUseCase) Generate(ctx context.Context, in *model.FormInput) (*model.GenerationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if uc.client == nil {
		return nil, goerr.Wrap(ErrMissingCredential, "completion client is not configured")
	}
	if c, ok := uc.client.(configuredClient); ok && !c.Configured() {
		return nil, goerr.Wrap(ErrMissingCredential, "no API key found in the environment")
	}

	result, err := uc.client.Complete(ctx, prompt.SystemInstruction, prompt.UserInstruction(in))
	if err != nil {
		return nil, err
	}

	return result, nil
}
