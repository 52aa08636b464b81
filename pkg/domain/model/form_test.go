package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/forgelab/promptforge/pkg/domain/model"
	"github.com/forgelab/promptforge/pkg/domain/types"
)

func TestFormInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   model.FormInput
		wantErr bool
	}{
		{
			name:  "valid with required fields only",
			input: model.FormInput{Profile: "Data Scientist", Goal: "Learn SQL joins"},
		},
		{
			name: "valid with all fields",
			input: model.FormInput{
				Profile:     "Lawyer",
				Goal:        "Draft a contract summary",
				Level:       "Expert",
				Context:     "Corporate law",
				Constraints: "Under 500 words",
			},
		},
		{
			name:    "missing profile",
			input:   model.FormInput{Goal: "Learn SQL joins"},
			wantErr: true,
		},
		{
			name:    "missing goal",
			input:   model.FormInput{Profile: "Data Scientist"},
			wantErr: true,
		},
		{
			name:    "whitespace-only profile",
			input:   model.FormInput{Profile: "   ", Goal: "Learn SQL joins"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				gt.Error(t, err)
				gt.Bool(t, errors.Is(err, model.ErrMissingRequiredField)).True()
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestOptionalField(t *testing.T) {
	gt.Bool(t, model.OptionalField("").Present()).False()
	gt.Bool(t, model.OptionalField("  \t").Present()).False()
	gt.Bool(t, model.OptionalField("some context").Present()).True()
}

func TestFormInput_EffectiveLevel(t *testing.T) {
	in := model.FormInput{Profile: "p", Goal: "g", Level: "Advanced"}
	gt.Value(t, in.EffectiveLevel()).Equal(types.LevelAdvanced)

	in.Level = "definitely-not-a-level"
	gt.Value(t, in.EffectiveLevel()).Equal(types.DefaultLevel)
}

func TestHistoryEntry_Restore(t *testing.T) {
	entry := &model.HistoryEntry{
		ID:       types.NewHistoryID(),
		Profile:  "Data Scientist",
		Goal:     "Learn SQL joins",
		Level:    "Intermediate",
		Prompt:   "generated prompt",
		Thinking: "generated thinking",
	}

	in, result := entry.Restore()
	gt.Value(t, in.Profile).Equal("Data Scientist")
	gt.Value(t, in.Goal).Equal("Learn SQL joins")
	gt.Value(t, in.Level).Equal("Intermediate")

	// Context and constraints are never restored from history
	gt.Bool(t, in.Context.Present()).False()
	gt.Bool(t, in.Constraints.Present()).False()

	gt.Value(t, result.Prompt).Equal("generated prompt")
	gt.Value(t, result.Thinking).Equal("generated thinking")
}
