package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coherence-eval/coherence/internal/domain"
)

func TestBuildReport(t *testing.T) {
	result := domain.NewEvaluationResult()
	result.Scores = fullScores()
	result.Explanations = map[domain.Dimension]string{
		domain.DimContinuity: "Clear through-line.",
	}
	result.Summary = "Generally holds together."
	result.Recommendations = []string{"Confirm ownership."}
	result.ClarifyingQuestions = []string{"What is the deadline?"}

	report := BuildReport(result)

	require.Len(t, report.Bars, 5)
	assert.Equal(t, "Continuity", report.Bars[0].Label)
	assert.Equal(t, "0.90", report.Bars[0].Display)
	assert.InDelta(t, 90.0, report.Bars[0].WidthPct, 1e-9)
	assert.Equal(t, domain.BandHigh, report.Bars[0].Band)
	assert.Equal(t, domain.BandLow, report.Bars[3].Band) // accountability 0.3

	require.NotNil(t, report.Composite)
	assert.Equal(t, "0.62", report.Composite.Display)
	assert.Equal(t, domain.BandStable, report.Composite.Band)
	assert.NotEmpty(t, report.Composite.Interpretation)

	require.Len(t, report.Cards, 5)
	assert.Equal(t, "Continuity (High)", report.Cards[0].Title)
	assert.Equal(t, "Clear through-line.", report.Cards[0].Body)
	assert.Equal(t, domain.DefaultExplanation, report.Cards[1].Body)

	assert.Equal(t, []string{"Confirm ownership."}, report.Recommendations)
	assert.True(t, report.ShowQuestions)
	assert.Equal(t, []string{"What is the deadline?"}, report.Questions)
}

func TestBuildReportDefaults(t *testing.T) {
	report := BuildReport(domain.NewEvaluationResult())

	// No scores mapping at all: badge suppressed, rows show the absent marker.
	assert.Nil(t, report.Composite)
	for _, bar := range report.Bars {
		assert.Equal(t, AbsentScore, bar.Display)
		assert.Zero(t, bar.WidthPct)
		assert.Equal(t, domain.BandLow, bar.Band)
	}

	// Empty recommendations render the single placeholder item.
	assert.Equal(t, []string{domain.DefaultRecommendation}, report.Recommendations)

	// Empty questions hide the panel entirely.
	assert.False(t, report.ShowQuestions)
	assert.Empty(t, report.Questions)
}

func TestBuildReportClampsDisplay(t *testing.T) {
	result := domain.NewEvaluationResult()
	result.Scores = map[domain.Dimension]float64{
		domain.DimContinuity:      5,
		domain.DimDifferentiation: -5,
	}

	report := BuildReport(result)

	// Raw 5 displays clamped but still bands High.
	assert.Equal(t, "1.00", report.Bars[0].Display)
	assert.Equal(t, domain.BandHigh, report.Bars[0].Band)

	assert.Equal(t, "0.00", report.Bars[1].Display)
	assert.Equal(t, domain.BandLow, report.Bars[1].Band)
}
