package prompt

import (
	"strings"

	"github.com/forgelab/promptforge/pkg/domain/model"
)

// Fallback deterministically synthesizes a substitute generation from
// the form input alone. It is used when the relay is unreachable and
// follows the same field interpolation rules as UserInstruction.
func Fallback(in *model.FormInput) *model.GenerationResult {
	return &model.GenerationResult{
		Thinking: FallbackThinking(in),
		Prompt:   FallbackPrompt(in),
	}
}

// FallbackThinking builds the offline analysis narrative.
func FallbackThinking(in *model.FormInput) string {
	var b strings.Builder
	b.WriteString("ANALYSIS OF THE REQUEST (offline mode)\n\n")
	b.WriteString("1. UNDERSTANDING THE CONTEXT\n")
	b.WriteString("   - Profile: " + in.Profile + "\n")
	b.WriteString("   - Level: " + level(in) + "\n")
	b.WriteString("   - Goal: " + in.Goal + "\n")
	if in.Context.Present() {
		b.WriteString("   - Context: " + in.Context.String() + "\n")
	}
	if in.Constraints.Present() {
		b.WriteString("   - Constraints: " + in.Constraints.String() + "\n")
	}
	b.WriteString("\n2. PROMPT STRATEGY\n")
	b.WriteString("   - Specific and technical keywords\n")
	b.WriteString("   - Clear role for the AI\n")
	b.WriteString("   - Defined output format\n")
	b.WriteString("   - Measurable quality criteria\n")
	return b.String()
}

// FallbackPrompt builds the offline prompt document.
func FallbackPrompt(in *model.FormInput) string {
	lvl := level(in)

	var b strings.Builder
	b.WriteString("# OPTIMIZED PROMPT FOR " + strings.ToUpper(in.Profile) + "\n\n")
	b.WriteString("## CONTEXT\n")
	b.WriteString("You are an AI assistant specialized in **" + in.Profile + "**.\n")
	b.WriteString("Required level: **" + lvl + "**\n\n")
	b.WriteString("## GOAL\n")
	b.WriteString(in.Goal + "\n\n")
	if in.Context.Present() {
		b.WriteString("## ADDITIONAL CONTEXT\n" + in.Context.String() + "\n\n")
	}
	if in.Constraints.Present() {
		b.WriteString("## CONSTRAINTS\n" + in.Constraints.String() + "\n\n")
	}
	b.WriteString("## INSTRUCTIONS\n\n")
	b.WriteString("### 1. Initial analysis\n")
	b.WriteString("- Identify the key concepts of \"" + in.Goal + "\"\n")
	b.WriteString("- Determine the prerequisites for level " + lvl + "\n\n")
	b.WriteString("### 2. Structure\n")
	b.WriteString("- Overview first, then details\n")
	b.WriteString("- Theory with practical examples\n")
	b.WriteString("- Concrete applications\n\n")
	b.WriteString("### 3. Quality\n")
	b.WriteString("- Accurate and verifiable information\n")
	b.WriteString("- Adapted to level " + lvl + "\n")
	b.WriteString("- Sources and references\n\n")
	b.WriteString("## CRITERIA\n")
	b.WriteString("- Factual accuracy\n")
	b.WriteString("- Suited to \"" + in.Profile + "\"\n")
	b.WriteString("- Actionable\n")
	b.WriteString("- Vocabulary at level " + lvl + "\n")
	return b.String()
}
