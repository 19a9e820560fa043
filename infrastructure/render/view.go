package render

import (
	"fmt"

	"github.com/coherence-eval/coherence/internal/domain"
)

// AbsentScore is displayed in place of a score the model did not provide.
const AbsentScore = "--"

// Bar is one dimension's score row.
type Bar struct {
	Dimension domain.Dimension

	// Label is the display name of the dimension.
	Label string

	// Display is the clamped score formatted to two decimals, or
	// AbsentScore when no finite value was provided.
	Display string

	// WidthPct is the fill width as a percentage of the track.
	WidthPct float64

	// Band is the qualitative label from the raw value.
	Band domain.ScoreBand
}

// Composite is the coherence badge derived from all dimension scores.
type Composite struct {
	Score          float64
	Display        string
	Band           domain.CompositeBand
	Interpretation string
}

// Card pairs a dimension heading with its explanation text.
type Card struct {
	// Title combines the dimension label and band, e.g. "Continuity (High)".
	Title string
	Body  string
}

// Report is the full view model for one evaluation result. It is a pure
// function of the result; rebuilding it from the same result always yields
// the same view.
type Report struct {
	Bars []Bar

	// Composite is nil when no scores mapping was extracted, in which
	// case the badge is not rendered.
	Composite *Composite

	Summary string
	Cards   []Card

	// Recommendations always has at least one entry; the defaulting
	// placeholder stands in for an empty list.
	Recommendations []string

	// Questions is empty when the model asked nothing; ShowQuestions
	// suppresses the whole panel in that case, not just its contents.
	Questions     []string
	ShowQuestions bool
}

// BuildReport derives the complete view model from an adapted result.
func BuildReport(result domain.EvaluationResult) Report {
	report := Report{
		Bars:    make([]Bar, 0, len(domain.Dimensions)),
		Summary: result.Summary,
		Cards:   make([]Card, 0, len(domain.Dimensions)),
	}

	for _, dim := range domain.Dimensions {
		raw, present := result.Score(dim)
		normalized := domain.Normalize(raw)

		display := AbsentScore
		if present {
			display = fmt.Sprintf("%.2f", normalized)
		}

		report.Bars = append(report.Bars, Bar{
			Dimension: dim,
			Label:     dim.Label(),
			Display:   display,
			WidthPct:  normalized * 100,
			Band:      bandFor(raw, present),
		})

		report.Cards = append(report.Cards, Card{
			Title: fmt.Sprintf("%s (%s)", dim.Label(), bandFor(raw, present)),
			Body:  result.Explanation(dim),
		})
	}

	if score, band, ok := result.Composite(); ok {
		report.Composite = &Composite{
			Score:          score,
			Display:        fmt.Sprintf("%.2f", score),
			Band:           band,
			Interpretation: band.Interpretation(),
		}
	}

	report.Recommendations = result.Recommendations
	if len(report.Recommendations) == 0 {
		report.Recommendations = []string{domain.DefaultRecommendation}
	}

	report.Questions = result.ClarifyingQuestions
	report.ShowQuestions = len(report.Questions) > 0

	return report
}

func bandFor(raw float64, present bool) domain.ScoreBand {
	if !present {
		return domain.BandLow
	}
	return domain.BandFor(raw)
}
