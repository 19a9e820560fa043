package modelout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coherence-eval/coherence/internal/domain"
)

// TestAdaptTotality verifies that adaptation accepts any JSON value and
// always produces a structurally valid, fully-defaulted result.
func TestAdaptTotality(t *testing.T) {
	inputs := []any{
		nil,
		[]any{},
		"x",
		42.0,
		true,
		map[string]any{},
	}

	for _, input := range inputs {
		result := Adapt(input)

		assert.Equal(t, domain.DefaultSummary, result.Summary)
		assert.Empty(t, result.Scores)
		assert.Empty(t, result.Recommendations)
		assert.Empty(t, result.ClarifyingQuestions)
		assert.Equal(t, domain.DefaultExplanation, result.Explanation(domain.DimContinuity))
	}
}

func TestAdaptWellFormed(t *testing.T) {
	raw, err := Extract(`{
		"scores": {"continuity": 0.9, "differentiation": 0.8, "contextual_fit": 0.5, "accountability": 0.3, "reflexivity": 0.6},
		"explanations": {"continuity": "Strong through-line."},
		"summary": "Mostly coherent.",
		"recommendations": ["Name the deadline explicitly."],
		"clarifying_questions": ["Who owns the decision?"]
	}`)
	require.NoError(t, err)

	result := Adapt(raw)

	assert.Equal(t, "Mostly coherent.", result.Summary)
	assert.Equal(t, []string{"Name the deadline explicitly."}, result.Recommendations)
	assert.Equal(t, []string{"Who owns the decision?"}, result.ClarifyingQuestions)
	assert.Equal(t, "Strong through-line.", result.Explanation(domain.DimContinuity))
	assert.Equal(t, domain.DefaultExplanation, result.Explanation(domain.DimReflexivity))

	score, ok := result.Score(domain.DimAccountability)
	require.True(t, ok)
	assert.Equal(t, 0.3, score)

	composite, band, ok := result.Composite()
	require.True(t, ok)
	assert.InDelta(t, 0.62, composite, 1e-9)
	assert.Equal(t, domain.BandStable, band)
}

// TestAdaptMissingFields pins the scenario where only a partial scores
// object is present: everything else defaults without affecting it.
func TestAdaptMissingFields(t *testing.T) {
	result := Adapt(map[string]any{
		"scores": map[string]any{"continuity": 0.8},
	})

	score, ok := result.Score(domain.DimContinuity)
	require.True(t, ok)
	assert.Equal(t, 0.8, score)

	assert.Empty(t, result.Explanations)
	assert.Equal(t, domain.DefaultSummary, result.Summary)
	assert.Empty(t, result.Recommendations)
	assert.Empty(t, result.ClarifyingQuestions)
}

// TestAdaptFieldIndependence verifies that one malformed field does not
// disturb extraction of the others.
func TestAdaptFieldIndependence(t *testing.T) {
	result := Adapt(map[string]any{
		"scores":          map[string]any{"continuity": 0.7},
		"recommendations": "not a list",
		"explanations":    []any{"wrong shape"},
		"summary":         12.0,
	})

	score, ok := result.Score(domain.DimContinuity)
	require.True(t, ok)
	assert.Equal(t, 0.7, score)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, domain.DefaultSummary, result.Summary)
}

func TestAdaptScoreCoercion(t *testing.T) {
	result := Adapt(map[string]any{
		"scores": map[string]any{
			"continuity":      "0.85",
			"differentiation": "garbage",
			"reflexivity":     5.0,
		},
	})

	score, ok := result.Score(domain.DimContinuity)
	require.True(t, ok)
	assert.Equal(t, 0.85, score)

	// Present but non-numeric is kept as NaN and reported as absent.
	raw, ok := result.Score(domain.DimDifferentiation)
	assert.False(t, ok)
	assert.True(t, math.IsNaN(raw))

	// Out-of-range values survive adaptation; clamping happens at use.
	score, ok = result.Score(domain.DimReflexivity)
	require.True(t, ok)
	assert.Equal(t, 5.0, score)
}

// TestAdaptFuzzyKeys verifies that near-miss dimension keys from the model
// are absorbed while unrelated keys are dropped.
func TestAdaptFuzzyKeys(t *testing.T) {
	result := Adapt(map[string]any{
		"scores": map[string]any{
			"contextual-fit": 0.5,
			"continuityy":    0.9,
			"velocity":       0.4,
		},
	})

	score, ok := result.Score(domain.DimContextualFit)
	require.True(t, ok)
	assert.Equal(t, 0.5, score)

	score, ok = result.Score(domain.DimContinuity)
	require.True(t, ok)
	assert.Equal(t, 0.9, score)

	assert.Len(t, result.Scores, 2)
}

func TestAdaptDropsNonStringListItems(t *testing.T) {
	result := Adapt(map[string]any{
		"recommendations":      []any{"keep this", 7.0, nil, "and this"},
		"clarifying_questions": []any{false},
	})

	assert.Equal(t, []string{"keep this", "and this"}, result.Recommendations)
	assert.Empty(t, result.ClarifyingQuestions)
}
