// Package prompt owns the instruction templates shared by the relay
// and the offline fallback, so the two stay in sync by construction.
package prompt

import (
	"strings"

	"github.com/forgelab/promptforge/pkg/domain/model"
	"github.com/forgelab/promptforge/pkg/domain/types"
)

// SystemInstruction is the fixed role description sent to the provider.
const SystemInstruction = "You are PromptForge, an expert in prompt engineering for AI models."

// UserInstruction interpolates the form fields into the instruction
// sent to the provider. Lines for absent optional fields are omitted
// entirely; no line is ever emitted with an empty value.
func UserInstruction(in *model.FormInput) string {
	var b strings.Builder
	b.WriteString("Create an optimized prompt for this use case:\n\n")
	b.WriteString("User profile: " + in.Profile + "\n")
	b.WriteString("Expertise level: " + level(in) + "\n")
	b.WriteString("Main goal: " + in.Goal + "\n")
	if in.Context.Present() {
		b.WriteString("Additional context: " + in.Context.String() + "\n")
	}
	if in.Constraints.Present() {
		b.WriteString("Constraints: " + in.Constraints.String() + "\n")
	}
	return b.String()
}

func level(in *model.FormInput) string {
	if strings.TrimSpace(in.Level) == "" {
		return types.DefaultLevel.String()
	}
	return in.Level
}
