package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/forgelab/promptforge/pkg/domain/model"
	"github.com/forgelab/promptforge/pkg/domain/model/auth"
	"github.com/forgelab/promptforge/pkg/usecase"
	"github.com/forgelab/promptforge/pkg/utils/errutil"
)

type historyEntryResponse struct {
	ID        string    `json:"id"`
	Profile   string    `json:"profile"`
	Goal      string    `json:"goal"`
	Level     string    `json:"level"`
	Prompt    string    `json:"prompt"`
	Thinking  string    `json:"thinking"`
	Timestamp time.Time `json:"timestamp"`
}

type historyListResponse struct {
	Entries []historyEntryResponse `json:"entries"`
}

type historySaveRequest struct {
	Profile  string `json:"profile"`
	Goal     string `json:"goal"`
	Level    string `json:"level"`
	Prompt   string `json:"prompt"`
	Thinking string `json:"thinking"`
}

func toHistoryListResponse(entries []*model.HistoryEntry) historyListResponse {
	resp := historyListResponse{
		Entries: make([]historyEntryResponse, len(entries)),
	}
	for i, e := range entries {
		resp.Entries[i] = historyEntryResponse{
			ID:        e.ID.String(),
			Profile:   e.Profile,
			Goal:      e.Goal,
			Level:     e.Level,
			Prompt:    e.Prompt,
			Thinking:  e.Thinking,
			Timestamp: e.Timestamp,
		}
	}
	return resp
}

// historyListHandler returns the signed-in user's most recent entries
func historyListHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := auth.TokenFromContext(r.Context())
		if !ok || token.IsAnonymous() {
			errutil.HandleHTTP(r.Context(), w, goerr.New("authentication required"), http.StatusUnauthorized)
			return
		}

		entries, err := uc.History.Recent(r.Context(), token.UserID())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, toHistoryListResponse(entries))
	}
}

// historySaveHandler stores one generation and answers with the
// refreshed most-recent list.
func historySaveHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := auth.TokenFromContext(r.Context())
		if !ok || token.IsAnonymous() {
			errutil.HandleHTTP(r.Context(), w, goerr.New("authentication required"), http.StatusUnauthorized)
			return
		}

		var req historySaveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode history entry"), http.StatusBadRequest)
			return
		}
		if req.Prompt == "" {
			errutil.HandleHTTP(r.Context(), w, goerr.New("history entry needs a prompt"), http.StatusBadRequest)
			return
		}

		entry := &model.HistoryEntry{
			Profile:  req.Profile,
			Goal:     req.Goal,
			Level:    req.Level,
			Prompt:   req.Prompt,
			Thinking: req.Thinking,
			UserID:   token.UserID(),
		}

		entries, err := uc.History.Save(r.Context(), entry)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, toHistoryListResponse(entries))
	}
}
