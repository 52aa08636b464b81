package interfaces

import (
	"context"

	"github.com/forgelab/promptforge/pkg/domain/model"
	"github.com/forgelab/promptforge/pkg/domain/types"
)

// HistoryRepository defines persistence for saved generations.
// The store is insert-only from this system's perspective.
type HistoryRepository interface {
	// Put inserts a new history entry. ID and Timestamp are assigned
	// when unset. The stored entry is returned.
	Put(ctx context.Context, entry *model.HistoryEntry) (*model.HistoryEntry, error)

	// ListByUser retrieves up to limit entries owned by the given
	// user, ordered by Timestamp descending.
	ListByUser(ctx context.Context, userID types.UserID, limit int) ([]*model.HistoryEntry, error)
}
