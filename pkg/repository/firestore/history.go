package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/forgelab/promptforge/pkg/domain/model"
	"github.com/forgelab/promptforge/pkg/domain/types"
	"google.golang.org/api/iterator"
)

const historyCollection = "prompt_history"

// historyDoc is the Firestore document representation of
// model.HistoryEntry.
type historyDoc struct {
	ID        string    `firestore:"id"`
	Profile   string    `firestore:"profile"`
	Goal      string    `firestore:"goal"`
	Level     string    `firestore:"level"`
	Prompt    string    `firestore:"prompt"`
	Thinking  string    `firestore:"thinking"`
	Timestamp time.Time `firestore:"timestamp"`
	UserID    string    `firestore:"user_id"`
}

func toHistoryDoc(e *model.HistoryEntry) *historyDoc {
	return &historyDoc{
		ID:        e.ID.String(),
		Profile:   e.Profile,
		Goal:      e.Goal,
		Level:     e.Level,
		Prompt:    e.Prompt,
		Thinking:  e.Thinking,
		Timestamp: e.Timestamp,
		UserID:    e.UserID.String(),
	}
}

func fromHistoryDoc(d *historyDoc) *model.HistoryEntry {
	return &model.HistoryEntry{
		ID:        types.HistoryID(d.ID),
		Profile:   d.Profile,
		Goal:      d.Goal,
		Level:     d.Level,
		Prompt:    d.Prompt,
		Thinking:  d.Thinking,
		Timestamp: d.Timestamp,
		UserID:    types.UserID(d.UserID),
	}
}

type historyRepository struct {
	client *firestore.Client
}

func newHistoryRepository(client *firestore.Client) *historyRepository {
	return &historyRepository{client: client}
}

func (r *historyRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(historyCollection)
}

func (r *historyRepository) Put(ctx context.Context, entry *model.HistoryEntry) (*model.HistoryEntry, error) {
	created := *entry
	if created.ID == "" {
		created.ID = types.NewHistoryID()
	}
	if created.Timestamp.IsZero() {
		created.Timestamp = time.Now().UTC()
	}

	docRef := r.collection().Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toHistoryDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to put history entry", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *historyRepository) ListByUser(ctx context.Context, userID types.UserID, limit int) ([]*model.HistoryEntry, error) {
	query := r.collection().
		Where("user_id", "==", userID.String()).
		OrderBy("timestamp", firestore.Desc).
		Limit(limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	entries := make([]*model.HistoryEntry, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate history entries", goerr.V("user_id", userID))
		}

		var d historyDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal history entry")
		}

		entries = append(entries, fromHistoryDoc(&d))
	}

	return entries, nil
}
