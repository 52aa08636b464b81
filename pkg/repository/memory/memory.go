package memory

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/forgelab/promptforge/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("not found")

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-process repository backend for development and
// tests. It mirrors the Firestore backend's semantics.
type Memory struct {
	history *historyRepository
	tokens  *tokenStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		history: newHistoryRepository(),
		tokens:  newTokenStore(),
	}
}

func (m *Memory) History() interfaces.HistoryRepository {
	return m.history
}

func (m *Memory) Close() error {
	return nil
}
