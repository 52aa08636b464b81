package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// Level represents the expertise level of the requesting user
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
	LevelExpert       Level = "Expert"
)

// DefaultLevel is used when no level is supplied by the caller
const DefaultLevel = LevelIntermediate

// Levels lists all known expertise levels in ascending order
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}
}

// Validate checks if the Level is one of the known expertise levels
func (l Level) Validate() error {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return nil
	}
	return goerr.New("unknown expertise level", goerr.V("level", l))
}

// String returns the string representation of Level
func (l Level) String() string {
	return string(l)
}

// ParseLevel maps a raw string to a known Level, falling back to
// DefaultLevel for empty or unknown values. The relay itself forwards
// the raw string verbatim; this is for typed consumers (client, CLI).
func ParseLevel(s string) Level {
	l := Level(s)
	if err := l.Validate(); err != nil {
		return DefaultLevel
	}
	return l
}
