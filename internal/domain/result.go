package domain

import "math"

// Default strings substituted for fields the model response did not provide.
const (
	// DefaultSummary replaces a missing or malformed summary.
	DefaultSummary = "No summary provided."

	// DefaultExplanation replaces a missing per-dimension explanation.
	DefaultExplanation = "No explanation provided."

	// DefaultRecommendation is rendered as the single placeholder item
	// when the recommendations list is empty.
	DefaultRecommendation = "No recommendations provided."
)

// EvaluationResult is the adapted, fully-defaulted record produced from an
// untrusted model response. It is the only shape that rendering and export
// consume; no possibly-absent field survives past adaptation.
//
// Scores holds the raw numeric value per dimension as provided by the
// model (possibly out of range, possibly NaN for present-but-non-numeric
// values); absent dimensions have no entry. Normalization and banding are
// applied at the point of use.
type EvaluationResult struct {
	// Scores maps each dimension to its raw numeric score.
	Scores map[Dimension]float64 `json:"scores"`

	// Explanations maps each dimension to the model's reasoning.
	// Missing entries default to DefaultExplanation on access.
	Explanations map[Dimension]string `json:"explanations"`

	// Summary is the model's overall assessment.
	Summary string `json:"summary"`

	// Recommendations holds the model's suggested next steps, in order.
	Recommendations []string `json:"recommendations"`

	// ClarifyingQuestions holds follow-up questions the model needs
	// answered to score confidently. An empty list suppresses the
	// questions panel entirely.
	ClarifyingQuestions []string `json:"clarifying_questions"`
}

// NewEvaluationResult returns a structurally valid result with every field
// at its default.
func NewEvaluationResult() EvaluationResult {
	return EvaluationResult{
		Scores:              make(map[Dimension]float64),
		Explanations:        make(map[Dimension]string),
		Summary:             DefaultSummary,
		Recommendations:     nil,
		ClarifyingQuestions: nil,
	}
}

// Score returns the raw score for a dimension and whether a finite value
// is present. Present-but-non-numeric entries report false so callers can
// render the absent marker.
func (r EvaluationResult) Score(d Dimension) (float64, bool) {
	raw, ok := r.Scores[d]
	if !ok || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return raw, false
	}
	return raw, true
}

// Explanation returns the explanation for a dimension, substituting
// DefaultExplanation when missing or empty.
func (r EvaluationResult) Explanation(d Dimension) string {
	if text, ok := r.Explanations[d]; ok && text != "" {
		return text
	}
	return DefaultExplanation
}

// Composite computes the composite score and band for this result.
// The boolean is false when no scores mapping was extracted at all.
func (r EvaluationResult) Composite() (float64, CompositeBand, bool) {
	score, ok := Composite(r.Scores)
	if !ok {
		return 0, "", false
	}
	return score, CompositeBandFor(score), true
}
