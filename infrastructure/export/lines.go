package export

import (
	"fmt"
	"time"

	"github.com/coherence-eval/coherence/internal/domain"
)

// noQuestions is the line written when the model asked nothing.
const noQuestions = "None."

// buildLines produces the document body shared by the plain-text and PDF
// encoders: title, timestamp, then the Scores, Summary, Dimension Notes,
// Recommendations, and Clarifying Questions sections in fixed order.
func buildLines(result domain.EvaluationResult, generatedAt time.Time) []string {
	lines := []string{
		Title,
		"Generated: " + generatedAt.UTC().Format(time.RFC3339),
		"",
		"Scores",
	}

	for _, dim := range domain.Dimensions {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", dim.Label(), scoreDisplay(result, dim), scoreBand(result, dim)))
	}

	lines = append(lines, "", "Summary", result.Summary)

	lines = append(lines, "", "Dimension Notes")
	for _, dim := range domain.Dimensions {
		lines = append(lines, fmt.Sprintf("- %s: %s", dim.Label(), result.Explanation(dim)))
	}

	lines = append(lines, "", "Recommendations")
	if len(result.Recommendations) == 0 {
		lines = append(lines, domain.DefaultRecommendation)
	} else {
		for _, rec := range result.Recommendations {
			lines = append(lines, "- "+rec)
		}
	}

	lines = append(lines, "", "Clarifying Questions")
	if len(result.ClarifyingQuestions) == 0 {
		lines = append(lines, noQuestions)
	} else {
		for _, q := range result.ClarifyingQuestions {
			lines = append(lines, "- "+q)
		}
	}

	return lines
}

// scoreDisplay formats the clamped two-decimal score, or "--" when the
// dimension has no finite value.
func scoreDisplay(result domain.EvaluationResult, dim domain.Dimension) string {
	raw, ok := result.Score(dim)
	if !ok {
		return "--"
	}
	return fmt.Sprintf("%.2f", domain.Normalize(raw))
}

// scoreBand bands from the raw, unclamped value; absent scores band Low.
func scoreBand(result domain.EvaluationResult, dim domain.Dimension) domain.ScoreBand {
	raw, ok := result.Score(dim)
	if !ok {
		return domain.BandLow
	}
	return domain.BandFor(raw)
}
