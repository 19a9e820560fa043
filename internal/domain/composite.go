package domain

// CompositeBand is one of five ordered labels describing the overall
// coherence of the evaluated situation.
type CompositeBand string

// Composite bands ordered from least to most coherent.
const (
	BandFragmented CompositeBand = "Fragmented"
	BandStrained   CompositeBand = "Strained"
	BandMixed      CompositeBand = "Mixed"
	BandStable     CompositeBand = "Stable"
	BandCoherent   CompositeBand = "Coherent"
)

// interpretations maps each composite band to its fixed interpretive
// sentence. The lookup is static; sentences are never generated.
var interpretations = map[CompositeBand]string{
	BandFragmented: "The structure of the situation is unstable and difficult to navigate as-is.",
	BandStrained:   "There are meaningful strains that may need attention before you can move forward confidently.",
	BandMixed:      "Parts of the situation make sense, and parts are conflicted or unclear.",
	BandStable:     "The situation is generally coherent with some manageable complexities.",
	BandCoherent:   "The structure of the situation is solid, aligned, and supportive of forward movement.",
}

// Interpretation returns the fixed interpretive sentence for the band,
// or an empty string for an unknown band.
func (b CompositeBand) Interpretation() string { return interpretations[b] }

// Composite computes the arithmetic mean of the normalized scores for all
// five dimensions. Dimensions missing from the mapping count as 0 after
// normalization, so the composite is defined whenever the mapping itself is
// non-empty. The boolean reports whether a composite could be computed;
// it is false only for a nil or empty mapping.
//
// Normalization guarantees every term is finite, so this is a closed
// system: once scores exist, all five dimensions always contribute.
func Composite(scores map[Dimension]float64) (float64, bool) {
	if len(scores) == 0 {
		return 0, false
	}

	var sum float64
	for _, dim := range Dimensions {
		raw, ok := scores[dim]
		if !ok {
			continue // absent dimension normalizes to 0, contributes nothing
		}
		sum += Normalize(raw)
	}

	return sum / float64(len(Dimensions)), true
}

// CompositeBandFor maps a composite score to its band using fixed
// thresholds. Upper bounds are inclusive: a composite of exactly 0.25 is
// Fragmented and exactly 0.80 is Stable.
func CompositeBandFor(score float64) CompositeBand {
	switch {
	case score <= 0.25:
		return BandFragmented
	case score <= 0.45:
		return BandStrained
	case score <= 0.60:
		return BandMixed
	case score <= 0.80:
		return BandStable
	default:
		return BandCoherent
	}
}
