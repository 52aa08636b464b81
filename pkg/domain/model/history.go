package model

import (
	"time"

	"github.com/forgelab/promptforge/pkg/domain/types"
)

// HistoryEntry is one saved past generation. UserID is empty for
// anonymous (local-only) use; for signed-in users durability and
// ownership are delegated to the external data store.
type HistoryEntry struct {
	ID        types.HistoryID
	Profile   string
	Goal      string
	Level     string
	Prompt    string
	Thinking  string
	Timestamp time.Time
	UserID    types.UserID
}

// NewHistoryEntry builds an entry from the form input and its result.
// ID and Timestamp are assigned by the repository on insert when zero.
func NewHistoryEntry(in *FormInput, result *GenerationResult, userID types.UserID) *HistoryEntry {
	return &HistoryEntry{
		Profile:  in.Profile,
		Goal:     in.Goal,
		Level:    in.Level,
		Prompt:   result.Prompt,
		Thinking: result.Thinking,
		UserID:   userID,
	}
}

// Restore maps the entry back onto a form input and result, the way
// loading from the history panel does: profile, goal and level are
// restored while context and constraints are intentionally cleared.
func (e *HistoryEntry) Restore() (*FormInput, *GenerationResult) {
	in := &FormInput{
		Profile: e.Profile,
		Goal:    e.Goal,
		Level:   e.Level,
	}
	result := &GenerationResult{
		Thinking: e.Thinking,
		Prompt:   e.Prompt,
	}
	return in, result
}
