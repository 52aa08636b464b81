package model

import "github.com/forgelab/promptforge/pkg/domain/types"

// LevelDefinition describes one expertise level as shown to users.
// The IDs are fixed by types.Level; only the wording is configurable.
type LevelDefinition struct {
	ID          types.Level `json:"id" toml:"id"`
	Name        string      `json:"name" toml:"name"`
	Description string      `json:"description" toml:"description"`
}

// DefaultLevelDefinitions returns the built-in wording for the four
// expertise levels.
func DefaultLevelDefinitions() []LevelDefinition {
	return []LevelDefinition{
		{ID: types.LevelBeginner, Name: "Beginner", Description: "New to the subject, needs step by step guidance"},
		{ID: types.LevelIntermediate, Name: "Intermediate", Description: "Comfortable with the basics, wants practical depth"},
		{ID: types.LevelAdvanced, Name: "Advanced", Description: "Experienced, expects precise and technical answers"},
		{ID: types.LevelExpert, Name: "Expert", Description: "Deep expertise, wants peer level discussion"},
	}
}
