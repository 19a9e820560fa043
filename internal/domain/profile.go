package domain

// Profile is the rubric resource supplying per-dimension descriptions and
// markers used to build the evaluation prompt. It is loaded from an external
// document and treated as opaque reference material by the rest of the core.
type Profile struct {
	// Dimensions keys the rubric entries by dimension. A usable profile
	// carries an entry for every dimension in Dimensions.
	Dimensions map[Dimension]DimensionProfile `yaml:"dimensions" json:"dimensions" validate:"required,min=1"`
}

// DimensionProfile describes one evaluation axis for the model.
type DimensionProfile struct {
	// Description explains what the dimension measures.
	Description string `yaml:"description" json:"description" validate:"required"`

	// MarkersPositive lists signals of coherence along this dimension.
	MarkersPositive []string `yaml:"markers_positive" json:"markers_positive"`

	// MarkersNegative lists signals of incoherence along this dimension.
	MarkersNegative []string `yaml:"markers_negative" json:"markers_negative"`
}

// Complete reports whether the profile has an entry with a description for
// every dimension. Incomplete profiles are rejected at load time rather
// than producing partial prompts.
func (p Profile) Complete() bool {
	for _, dim := range Dimensions {
		entry, ok := p.Dimensions[dim]
		if !ok || entry.Description == "" {
			return false
		}
	}
	return true
}
