package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/coherence-eval/coherence/internal/domain"
)

// Markdown encodes the result as a Markdown document. It re-derives the
// sections directly from the result rather than transforming the plain-text
// lines, but preserves the same section order and defaulting rules.
func Markdown(result domain.EvaluationResult, generatedAt time.Time) Document {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", Title)
	fmt.Fprintf(&b, "_Generated: %s_\n\n", generatedAt.UTC().Format(time.RFC3339))

	b.WriteString("## Scores\n\n")
	for _, dim := range domain.Dimensions {
		fmt.Fprintf(&b, "- **%s:** %s (%s)\n", dim.Label(), scoreDisplay(result, dim), scoreBand(result, dim))
	}

	b.WriteString("\n## Summary\n\n")
	b.WriteString(result.Summary + "\n")

	b.WriteString("\n## Dimension Notes\n\n")
	for _, dim := range domain.Dimensions {
		fmt.Fprintf(&b, "- **%s:** %s\n", dim.Label(), result.Explanation(dim))
	}

	b.WriteString("\n## Recommendations\n\n")
	if len(result.Recommendations) == 0 {
		b.WriteString(domain.DefaultRecommendation + "\n")
	} else {
		for _, rec := range result.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	b.WriteString("\n## Clarifying Questions\n\n")
	if len(result.ClarifyingQuestions) == 0 {
		b.WriteString(noQuestions + "\n")
	} else {
		for _, q := range result.ClarifyingQuestions {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}

	return Document{
		Data:        []byte(b.String()),
		ContentType: "text/markdown",
		Filename:    Filename(FormatMarkdown, generatedAt),
	}
}
