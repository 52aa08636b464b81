package interfaces

import (
	"context"

	"github.com/forgelab/promptforge/pkg/domain/model"
)

// CompletionClient sends one chat-completion request to the external
// LLM provider and resolves its response into a generation result.
// Implementations never fail on malformed payloads; only transport
// level problems and non-2xx upstream statuses produce errors.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (*model.GenerationResult, error)
}
