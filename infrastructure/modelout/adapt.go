package modelout

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/coherence-eval/coherence/internal/domain"
)

// maxKeyDistance is the largest edit distance at which an unknown score or
// explanation key is treated as a misspelling of a canonical dimension.
const maxKeyDistance = 2

// Adapt converts any parsed JSON value into a structurally valid
// EvaluationResult. It is total: nil, arrays, primitives, and objects with
// missing or mistyped fields all produce a usable result with per-field
// defaults, and it never fails. Fields are extracted independently, so a
// malformed recommendations list does not affect score extraction.
func Adapt(raw any) domain.EvaluationResult {
	result := domain.NewEvaluationResult()

	obj, ok := raw.(map[string]any)
	if !ok {
		return result
	}

	if scores, ok := obj["scores"].(map[string]any); ok {
		result.Scores = adaptScores(scores)
	}

	if explanations, ok := obj["explanations"].(map[string]any); ok {
		result.Explanations = adaptExplanations(explanations)
	}

	if summary, ok := obj["summary"].(string); ok && summary != "" {
		result.Summary = summary
	}

	result.Recommendations = stringSlice(obj["recommendations"])
	result.ClarifyingQuestions = stringSlice(obj["clarifying_questions"])

	return result
}

// adaptScores coerces each recognized dimension entry to a number.
// Present-but-non-numeric values are kept as NaN so downstream code can
// distinguish "provided garbage" from "absent".
func adaptScores(scores map[string]any) map[domain.Dimension]float64 {
	out := make(map[domain.Dimension]float64, len(domain.Dimensions))
	for key, value := range scores {
		dim, ok := matchDimension(key, out)
		if !ok {
			continue
		}
		out[dim] = domain.CoerceNumber(value)
	}
	return out
}

func adaptExplanations(explanations map[string]any) map[domain.Dimension]string {
	out := make(map[domain.Dimension]string, len(domain.Dimensions))
	for key, value := range explanations {
		text, ok := value.(string)
		if !ok || text == "" {
			continue
		}
		dim, ok := matchDimension(key, out)
		if !ok {
			continue
		}
		out[dim] = text
	}
	return out
}

// matchDimension resolves a raw key to a canonical dimension, first
// exactly and then by edit distance to absorb near-miss spellings like
// "contextual-fit" or "continuityy". A fuzzy match never displaces an
// entry already claimed by an exact or earlier match.
func matchDimension[V any](key string, seen map[domain.Dimension]V) (domain.Dimension, bool) {
	if dim, ok := domain.ParseDimension(key); ok {
		return dim, true
	}

	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", "_"))
	for _, dim := range domain.Dimensions {
		if _, taken := seen[dim]; taken {
			continue
		}
		if levenshtein.ComputeDistance(normalized, string(dim)) <= maxKeyDistance {
			return dim, true
		}
	}
	return "", false
}

// stringSlice extracts the string elements of a JSON array, dropping
// anything of the wrong type. Any non-array input yields an empty list.
func stringSlice(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
