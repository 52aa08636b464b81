package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/forgelab/promptforge/pkg/domain/model"
	"github.com/forgelab/promptforge/pkg/usecase"
	"github.com/forgelab/promptforge/pkg/service/llm"
	"github.com/forgelab/promptforge/pkg/utils/errutil"
)

type generateRequest struct {
	Profile     string `json:"profile"`
	Goal        string `json:"goal"`
	Level       string `json:"level"`
	Context     string `json:"context"`
	Constraints string `json:"constraints"`
}

func (req *generateRequest) input() *model.FormInput {
	return &model.FormInput{
		Profile:     req.Profile,
		Goal:        req.Goal,
		Level:       req.Level,
		Context:     model.OptionalField(req.Context),
		Constraints: model.OptionalField(req.Constraints),
	}
}

type generateResponse struct {
	Thinking string `json:"thinking"`
	Prompt   string `json:"prompt"`
}

// generateHandler relays one form submission to the LLM provider.
// Upstream failures become 502 with the provider's status and raw
// body in the envelope, so callers can decide to fall back locally.
func generateHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode generate request"), http.StatusBadRequest)
			return
		}

		result, err := uc.Generate.Generate(r.Context(), req.input())
		if err != nil {
			writeGenerateError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, generateResponse{
			Thinking: result.Thinking,
			Prompt:   result.Prompt,
		})
	}
}

func writeGenerateError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	if errors.Is(err, model.ErrMissingRequiredField) {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	if errors.Is(err, usecase.ErrMissingCredential) {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	var ue *llm.UpstreamError
	if errors.As(err, &ue) {
		errutil.WriteHTTP(ctx, w, ue, http.StatusBadGateway, ue.StatusCode, ue.Body)
		return
	}

	errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
}
