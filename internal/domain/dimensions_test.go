package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionsOrder(t *testing.T) {
	// Rendering order is a fixed contract.
	require.Equal(t, []Dimension{
		DimContinuity,
		DimDifferentiation,
		DimContextualFit,
		DimAccountability,
		DimReflexivity,
	}, Dimensions)
}

func TestDimensionLabel(t *testing.T) {
	tests := []struct {
		dim  Dimension
		want string
	}{
		{DimContinuity, "Continuity"},
		{DimContextualFit, "Contextual Fit"},
		{DimReflexivity, "Reflexivity"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.dim.Label())
	}
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		key  string
		want Dimension
		ok   bool
	}{
		{"continuity", DimContinuity, true},
		{"Contextual_Fit", DimContextualFit, true},
		{"  reflexivity  ", DimReflexivity, true},
		{"velocity", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseDimension(tt.key)
		assert.Equal(t, tt.ok, ok, "key %q", tt.key)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestEvaluationResultDefaults(t *testing.T) {
	r := NewEvaluationResult()

	assert.Equal(t, DefaultSummary, r.Summary)
	assert.Empty(t, r.Recommendations)
	assert.Empty(t, r.ClarifyingQuestions)
	assert.Equal(t, DefaultExplanation, r.Explanation(DimContinuity))

	_, ok := r.Score(DimContinuity)
	assert.False(t, ok)

	_, _, ok = r.Composite()
	assert.False(t, ok)
}
