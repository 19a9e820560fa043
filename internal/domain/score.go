package domain

import (
	"encoding/json"
	"math"
	"strconv"
)

// ScoreBand is the qualitative label for a single dimension score.
type ScoreBand string

// Score bands with their fixed thresholds. A raw value below 0.4 (or one
// that is not numeric at all) is Low, below 0.7 is Medium, and anything
// at or above 0.7 is High.
const (
	BandLow    ScoreBand = "Low"
	BandMedium ScoreBand = "Medium"
	BandHigh   ScoreBand = "High"
)

// CoerceNumber converts an arbitrary JSON-decoded value into a float64.
// Numeric types convert directly, json.Number and numeric strings are
// parsed, and everything else yields NaN. The conversion never fails;
// NaN is the explicit "not a number" result.
func CoerceNumber(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
		return math.NaN()
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		return math.NaN()
	default:
		return math.NaN()
	}
}

// Normalize coerces a raw value into a score clamped to [0, 1].
// The function is total and idempotent: any non-finite coercion becomes 0,
// and normalizing an already-normalized score returns it unchanged.
func Normalize(value any) float64 {
	n := CoerceNumber(value)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// BandFor classifies a raw value into a ScoreBand.
//
// Banding intentionally uses the unclamped coerced number rather than the
// normalized score: a raw 5 bands High even though it displays as 1.00.
// The two-step computation (unclamped band, clamped display) is a behavioral
// contract and must not be unified.
func BandFor(value any) ScoreBand {
	n := CoerceNumber(value)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return BandLow
	}
	if n >= 0.7 {
		return BandHigh
	}
	if n >= 0.4 {
		return BandMedium
	}
	return BandLow
}
