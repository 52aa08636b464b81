package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/forgelab/promptforge/pkg/domain/types"
)

// Sentinel errors for form validation
var (
	ErrMissingRequiredField = goerr.New("required field is missing")
)

// OptionalField is a form field that may be absent. An empty or
// whitespace-only value counts as absent, so the "omit the line"
// rule for templates is a single check here instead of repeated
// string-emptiness tests in every template.
type OptionalField string

// Present reports whether the field carries a usable value
func (f OptionalField) Present() bool {
	return strings.TrimSpace(string(f)) != ""
}

// String returns the raw field value
func (f OptionalField) String() string {
	return string(f)
}

// FormInput holds the user-entered generation request. Profile and
// Goal are required; Context and Constraints may be absent. Level is
// forwarded as entered, with typed consumers falling back to
// types.DefaultLevel for unknown values.
type FormInput struct {
	Profile     string
	Goal        string
	Level       string
	Context     OptionalField
	Constraints OptionalField
}

// Validate checks that the required fields are filled
func (f *FormInput) Validate() error {
	if strings.TrimSpace(f.Profile) == "" {
		return goerr.Wrap(ErrMissingRequiredField, "profile is required", goerr.V("field", "profile"))
	}
	if strings.TrimSpace(f.Goal) == "" {
		return goerr.Wrap(ErrMissingRequiredField, "goal is required", goerr.V("field", "goal"))
	}
	return nil
}

// EffectiveLevel returns the typed expertise level for this input
func (f *FormInput) EffectiveLevel() types.Level {
	return types.ParseLevel(f.Level)
}

// GenerationResult is the outcome of one generate action, either
// parsed from the provider response or synthesized by the fallback.
type GenerationResult struct {
	Thinking string `json:"thinking"`
	Prompt   string `json:"prompt"`
}
