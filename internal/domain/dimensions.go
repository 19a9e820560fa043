// Package domain contains the core types and scoring math for the
// relational coherence evaluator.
package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Dimension identifies one of the five fixed axes of evaluation.
// The set is closed: input keys that do not resolve to one of these
// dimensions are discarded during adaptation.
type Dimension string

// The five evaluation dimensions.
const (
	DimContinuity    Dimension = "continuity"
	DimDifferentiation Dimension = "differentiation"
	DimContextualFit Dimension = "contextual_fit"
	DimAccountability Dimension = "accountability"
	DimReflexivity   Dimension = "reflexivity"
)

// Dimensions lists all evaluation dimensions in rendering order.
// The order is fixed at compile time and drives score rows, radar vertex
// placement, and export sections; it is never derived from input.
var Dimensions = []Dimension{
	DimContinuity,
	DimDifferentiation,
	DimContextualFit,
	DimAccountability,
	DimReflexivity,
}

var titleCaser = cases.Title(language.English)

// String returns the wire-format key for the dimension.
func (d Dimension) String() string { return string(d) }

// Label returns the human-readable display form of the dimension,
// e.g. "contextual_fit" becomes "Contextual Fit".
func (d Dimension) Label() string {
	return titleCaser.String(strings.ReplaceAll(string(d), "_", " "))
}

// ParseDimension resolves a raw key to a known dimension.
// It returns false for keys outside the fixed set.
func ParseDimension(key string) (Dimension, bool) {
	d := Dimension(strings.ToLower(strings.TrimSpace(key)))
	for _, known := range Dimensions {
		if d == known {
			return known, true
		}
	}
	return "", false
}
