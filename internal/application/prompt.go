package application

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/coherence-eval/coherence/internal/domain"
)

// promptTemplate is the evaluation prompt sent to the model. The JSON
// structure block doubles as the output contract the adapter expects.
var promptTemplate = template.Must(template.New("evaluate").Parse(`You are a relational coherence evaluator speaking directly to the user (use "you/your" language).
Use only these five dimensions: Continuity, Differentiation, Contextual Fit, Accountability, Reflexivity.
Use the provided profile for definitions and markers.

Coherence profile:
{{.ProfileText}}

Return ONLY valid JSON in the following structure:
{
  "scores": {
    "continuity": <0-1>,
    "differentiation": <0-1>,
    "contextual_fit": <0-1>,
    "accountability": <0-1>,
    "reflexivity": <0-1>
  },
  "explanations": {
    "continuity": "...",
    "differentiation": "...",
    "contextual_fit": "...",
    "accountability": "...",
    "reflexivity": "..."
  },
  "summary": "...",
  "recommendations": ["...", "..."],
  "clarifying_questions": ["...", "...", "..."]
}

IMPORTANT: For clarifying_questions:
- If critical context is missing that prevents accurate scoring, include 1-3 brief clarifying questions in "you/your" form.
- Only ask about concrete, missing facts: who is involved, timing/deadlines, specific constraints, what you're trying to achieve, what responsibilities exist.
- If the user provided enough detail to score all dimensions reasonably, return an empty array [].
- Never ask generic questions like "How do you feel?" or speculative questions.
- Only ask when a specific missing fact makes a dimension unclear or hard to score.
- Keep questions brief and direct.

User input:
{{.Input}}
`))

type promptData struct {
	ProfileText string
	Input       string
}

// BuildPrompt renders the evaluation prompt for the given rubric and user
// input.
func BuildPrompt(profile domain.Profile, input string) (string, error) {
	var b strings.Builder
	data := promptData{
		ProfileText: profileText(profile),
		Input:       input,
	}
	if err := promptTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return b.String(), nil
}

// profileText flattens the rubric into one block per dimension, in the
// fixed dimension order.
func profileText(profile domain.Profile) string {
	blocks := make([]string, 0, len(domain.Dimensions))
	for _, dim := range domain.Dimensions {
		entry := profile.Dimensions[dim]
		blocks = append(blocks, fmt.Sprintf("%s — %s\nPositive markers: %s\nNegative markers: %s",
			dim.Label(),
			entry.Description,
			strings.Join(entry.MarkersPositive, "; "),
			strings.Join(entry.MarkersNegative, "; "),
		))
	}
	return strings.Join(blocks, "\n\n")
}
