package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/forgelab/promptforge/pkg/domain/model"
	"github.com/forgelab/promptforge/pkg/domain/types"
)

type historyRepository struct {
	mu      sync.RWMutex
	entries []*model.HistoryEntry
}

func newHistoryRepository() *historyRepository {
	return &historyRepository{}
}

func copyHistoryEntry(e *model.HistoryEntry) *model.HistoryEntry {
	c := *e
	return &c
}

func (r *historyRepository) Put(ctx context.Context, entry *model.HistoryEntry) (*model.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyHistoryEntry(entry)
	if created.ID == "" {
		created.ID = types.NewHistoryID()
	}
	if created.Timestamp.IsZero() {
		created.Timestamp = time.Now().UTC()
	}

	r.entries = append(r.entries, created)
	return copyHistoryEntry(created), nil
}

func (r *historyRepository) ListByUser(ctx context.Context, userID types.UserID, limit int) ([]*model.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]*model.HistoryEntry, 0)
	for _, e := range r.entries {
		if e.UserID == userID {
			owned = append(owned, e)
		}
	}

	// Sort by Timestamp descending
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].Timestamp.After(owned[j].Timestamp)
	})

	if limit > 0 && len(owned) > limit {
		owned = owned[:limit]
	}

	result := make([]*model.HistoryEntry, 0, len(owned))
	for _, e := range owned {
		result = append(result, copyHistoryEntry(e))
	}
	return result, nil
}
