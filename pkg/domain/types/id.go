package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// UserID identifies an account owned by the external auth service.
// It is opaque to this system; an empty UserID means anonymous use.
type UserID string

// String returns the string representation of UserID
func (u UserID) String() string {
	return string(u)
}

// IsAnonymous reports whether the ID belongs to no signed-in user
func (u UserID) IsAnonymous() bool {
	return u == ""
}

// HistoryID is a UUID-based identifier for a saved generation
type HistoryID string

// NewHistoryID generates a new UUID v4 HistoryID
func NewHistoryID() HistoryID {
	return HistoryID(uuid.New().String())
}

// Validate checks if the HistoryID is a well-formed UUID
func (h HistoryID) Validate() error {
	if h == "" {
		return goerr.New("history ID cannot be empty")
	}
	if _, err := uuid.Parse(string(h)); err != nil {
		return goerr.Wrap(err, "history ID must be a UUID", goerr.V("id", h))
	}
	return nil
}

// String returns the string representation of HistoryID
func (h HistoryID) String() string {
	return string(h)
}
