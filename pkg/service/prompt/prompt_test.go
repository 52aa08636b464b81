package prompt_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/forgelab/promptforge/pkg/domain/model"
	"github.com/forgelab/promptforge/pkg/service/prompt"
)

func TestUserInstruction(t *testing.T) {
	t.Run("required fields only", func(t *testing.T) {
		in := &model.FormInput{
			Profile: "Data Scientist",
			Goal:    "Learn SQL joins",
			Level:   "Intermediate",
		}

		got := prompt.UserInstruction(in)

		gt.String(t, got).Contains("User profile: Data Scientist")
		gt.String(t, got).Contains("Expertise level: Intermediate")
		gt.String(t, got).Contains("Main goal: Learn SQL joins")
		gt.String(t, got).NotContains("Additional context:")
		gt.String(t, got).NotContains("Constraints:")
	})

	t.Run("optional fields included when present", func(t *testing.T) {
		in := &model.FormInput{
			Profile:     "Lawyer",
			Goal:        "Summarize case law",
			Level:       "Expert",
			Context:     "French civil law",
			Constraints: "Under 500 words",
		}

		got := prompt.UserInstruction(in)

		gt.String(t, got).Contains("Additional context: French civil law")
		gt.String(t, got).Contains("Constraints: Under 500 words")
	})

	t.Run("never emits a labeled line with empty value", func(t *testing.T) {
		in := &model.FormInput{
			Profile:     "Course Designer",
			Goal:        "Build a lesson plan",
			Context:     "   ",
			Constraints: "",
		}

		got := prompt.UserInstruction(in)

		for _, label := range []string{"Additional context:", "Constraints:"} {
			gt.String(t, got).NotContains(label)
			gt.Bool(t, strings.Contains(got, strings.TrimSuffix(label, ":"))).False()
		}
	})

	t.Run("empty level falls back to default", func(t *testing.T) {
		in := &model.FormInput{Profile: "p", Goal: "g"}
		gt.String(t, prompt.UserInstruction(in)).Contains("Expertise level: Intermediate")
	})
}

func TestFallback(t *testing.T) {
	in := &model.FormInput{
		Profile: "Data Scientist",
		Goal:    "Learn SQL joins",
		Level:   "Intermediate",
	}

	result := prompt.Fallback(in)

	t.Run("thinking carries the form fields", func(t *testing.T) {
		gt.String(t, result.Thinking).Contains("Data Scientist")
		gt.String(t, result.Thinking).Contains("Intermediate")
		gt.String(t, result.Thinking).Contains("Learn SQL joins")
		gt.String(t, result.Thinking).Contains("offline mode")
	})

	t.Run("prompt carries the form fields", func(t *testing.T) {
		gt.String(t, result.Prompt).Contains("DATA SCIENTIST")
		gt.String(t, result.Prompt).Contains("Data Scientist")
		gt.String(t, result.Prompt).Contains("Intermediate")
		gt.String(t, result.Prompt).Contains("Learn SQL joins")
	})

	t.Run("optional sections omitted when absent", func(t *testing.T) {
		gt.String(t, result.Thinking).NotContains("- Context:")
		gt.String(t, result.Thinking).NotContains("- Constraints:")
		gt.String(t, result.Prompt).NotContains("## ADDITIONAL CONTEXT")
		gt.String(t, result.Prompt).NotContains("## CONSTRAINTS")
	})

	t.Run("optional sections present when supplied", func(t *testing.T) {
		full := &model.FormInput{
			Profile:     "Data Scientist",
			Goal:        "Learn SQL joins",
			Level:       "Intermediate",
			Context:     "PostgreSQL 16",
			Constraints: "No window functions",
		}
		r := prompt.Fallback(full)
		gt.String(t, r.Thinking).Contains("- Context: PostgreSQL 16")
		gt.String(t, r.Thinking).Contains("- Constraints: No window functions")
		gt.String(t, r.Prompt).Contains("## ADDITIONAL CONTEXT\nPostgreSQL 16")
		gt.String(t, r.Prompt).Contains("## CONSTRAINTS\nNo window functions")
	})

	t.Run("deterministic", func(t *testing.T) {
		again := prompt.Fallback(in)
		gt.Value(t, again).Equal(result)
	})
}
