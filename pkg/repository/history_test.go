package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/forgelab/promptforge/pkg/domain/interfaces"
	"github.com/forgelab/promptforge/pkg/domain/model"
	"github.com/forgelab/promptforge/pkg/domain/types"
)

func runHistoryRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put assigns ID and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		entry := &model.HistoryEntry{
			Profile:  "Data Scientist",
			Goal:     "Learn SQL joins",
			Level:    "Intermediate",
			Prompt:   "generated prompt",
			Thinking: "generated thinking",
			UserID:   types.UserID(fmt.Sprintf("put-user-%d", time.Now().UnixNano())),
		}

		created, err := repo.History().Put(ctx, entry)
		gt.NoError(t, err).Required()

		gt.String(t, string(created.ID)).NotEqual("")
		gt.NoError(t, created.ID.Validate())
		gt.Bool(t, created.Timestamp.IsZero()).False()
		gt.Value(t, created.Profile).Equal("Data Scientist")
		gt.Value(t, created.Goal).Equal("Learn SQL joins")
		gt.Value(t, created.Prompt).Equal("generated prompt")
		gt.Value(t, created.Thinking).Equal("generated thinking")
	})

	t.Run("ListByUser returns entries newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := types.UserID(fmt.Sprintf("order-user-%d", time.Now().UnixNano()))

		for i := 0; i < 3; i++ {
			_, err := repo.History().Put(ctx, &model.HistoryEntry{
				Profile: fmt.Sprintf("profile-%d", i),
				Goal:    fmt.Sprintf("goal-%d", i),
				Level:   "Beginner",
				UserID:  userID,
			})
			gt.NoError(t, err).Required()
			time.Sleep(10 * time.Millisecond)
		}

		entries, err := repo.History().ListByUser(ctx, userID, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(3)

		gt.Value(t, entries[0].Profile).Equal("profile-2")
		gt.Value(t, entries[1].Profile).Equal("profile-1")
		gt.Value(t, entries[2].Profile).Equal("profile-0")

		for i := 1; i < len(entries); i++ {
			gt.Bool(t, entries[i].Timestamp.After(entries[i-1].Timestamp)).False()
		}
	})

	t.Run("ListByUser honors the limit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := types.UserID(fmt.Sprintf("limit-user-%d", time.Now().UnixNano()))

		for i := 0; i < 12; i++ {
			_, err := repo.History().Put(ctx, &model.HistoryEntry{
				Profile: fmt.Sprintf("profile-%d", i),
				Goal:    "goal",
				Level:   "Expert",
				UserID:  userID,
			})
			gt.NoError(t, err).Required()
			time.Sleep(5 * time.Millisecond)
		}

		entries, err := repo.History().ListByUser(ctx, userID, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(10)

		// The two oldest entries fall off
		gt.Value(t, entries[0].Profile).Equal("profile-11")
		gt.Value(t, entries[9].Profile).Equal("profile-2")
	})

	t.Run("ListByUser scopes by owner", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		alice := types.UserID(fmt.Sprintf("alice-%d", time.Now().UnixNano()))
		bob := types.UserID(fmt.Sprintf("bob-%d", time.Now().UnixNano()))

		_, err := repo.History().Put(ctx, &model.HistoryEntry{
			Profile: "alice-profile", Goal: "g", Level: "Beginner", UserID: alice,
		})
		gt.NoError(t, err).Required()

		_, err = repo.History().Put(ctx, &model.HistoryEntry{
			Profile: "bob-profile", Goal: "g", Level: "Beginner", UserID: bob,
		})
		gt.NoError(t, err).Required()

		entries, err := repo.History().ListByUser(ctx, alice, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1)
		gt.Value(t, entries[0].Profile).Equal("alice-profile")
	})

	t.Run("ListByUser with no entries returns empty list", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		entries, err := repo.History().ListByUser(ctx, types.UserID("nobody"), 10)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(0)
	})
}
