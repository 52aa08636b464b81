package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/forgelab/promptforge/pkg/domain/interfaces"
	"github.com/forgelab/promptforge/pkg/domain/model"
	"github.com/forgelab/promptforge/pkg/domain/types"
)

// HistoryLimit caps the visible history list for every user
const HistoryLimit = 10

// HistoryUseCase stores generations for signed-in users. The external
// store is the source of truth: after an insert the visible list is
// re-read rather than appended in memory.
type HistoryUseCase struct {
	repo interfaces.Repository
}

func NewHistoryUseCase(repo interfaces.Repository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

// Save inserts the entry for its owner and returns the refreshed
// most-recent list (read-after-write).
func (uc *HistoryUseCase) Save(ctx context.Context, entry *model.HistoryEntry) ([]*model.HistoryEntry, error) {
	if entry.UserID.IsAnonymous() {
		return nil, goerr.New("history entry has no owner", goerr.V("id", entry.ID))
	}

	if _, err := uc.repo.History().Put(ctx, entry); err != nil {
		return nil, goerr.Wrap(err, "failed to save history entry")
	}

	return uc.Recent(ctx, entry.UserID)
}

// Recent returns the owner's most recent entries, newest first.
func (uc *HistoryUseCase) Recent(ctx context.Context, userID types.UserID) ([]*model.HistoryEntry, error) {
	entries, err := uc.repo.History().ListByUser(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list history entries", goerr.V(UserIDKey, userID))
	}
	return entries, nil
}
