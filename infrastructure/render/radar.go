// Package render builds pure presentation data from an evaluation result:
// score bars, explanation cards, the composite badge, and the radar chart
// geometry. Nothing here depends on a UI technology; callers draw the
// returned values however they like.
package render

import (
	"math"

	"github.com/coherence-eval/coherence/internal/domain"
)

// RingCount is the number of concentric background reference rings.
const RingCount = 5

// labelOffset is the distance beyond the axis end at which labels anchor.
const labelOffset = 18

// centerTolerance is the horizontal distance from center within which a
// label stays center-aligned.
const centerTolerance = 10

// TextAlign describes horizontal label alignment relative to its anchor.
type TextAlign string

// Label alignments. Middle is used near the vertical centerline, Start for
// labels right of center, End for labels left of center.
const (
	AlignMiddle TextAlign = "middle"
	AlignStart  TextAlign = "start"
	AlignEnd    TextAlign = "end"
)

// Point is a position in chart coordinates. Y grows downward, matching
// screen conventions, so angles advance clockwise.
type Point struct {
	X float64
	Y float64
}

// Axis is one dimension's spoke: a full-length line from the center plus a
// label anchor placed just beyond its end.
type Axis struct {
	// Dimension identifies which evaluation axis this spoke represents.
	Dimension domain.Dimension

	// Angle is the spoke's angle in radians. Index 0 points straight up
	// (-π/2); successive axes advance clockwise by 2π/n.
	Angle float64

	// End is the outer endpoint of the spoke, always at full radius
	// regardless of the data value.
	End Point

	// Label is the anchor position for the dimension's text label.
	Label LabelAnchor
}

// LabelAnchor positions a dimension label so it clears the polygon.
type LabelAnchor struct {
	Pos   Point
	Align TextAlign
}

// Chart is the complete radar geometry for one result.
type Chart struct {
	Center Point
	Radius float64

	// Rings holds the radii of the concentric background reference
	// rings, at radius*k/RingCount for k = 1..RingCount.
	Rings []float64

	// Axes holds one spoke per dimension, in rendering order.
	Axes []Axis

	// Vertices holds the data polygon, one vertex per dimension at
	// radius * normalized score along that dimension's angle.
	Vertices []Point
}

// Layout computes radar geometry for the given scores. Axes are placed at
// equal angular spacing starting at the top and proceeding clockwise in
// dimension order; missing scores normalize to 0 and collapse their vertex
// to the center.
func Layout(scores map[domain.Dimension]float64, radius float64, center Point) Chart {
	n := len(domain.Dimensions)

	chart := Chart{
		Center:   center,
		Radius:   radius,
		Rings:    make([]float64, 0, RingCount),
		Axes:     make([]Axis, 0, n),
		Vertices: make([]Point, 0, n),
	}

	for k := 1; k <= RingCount; k++ {
		chart.Rings = append(chart.Rings, radius*float64(k)/RingCount)
	}

	for i, dim := range domain.Dimensions {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)

		end := pointAt(center, angle, radius)
		labelPos := pointAt(center, angle, radius+labelOffset)

		chart.Axes = append(chart.Axes, Axis{
			Dimension: dim,
			Angle:     angle,
			End:       end,
			Label: LabelAnchor{
				Pos:   adjustLabel(labelPos, center),
				Align: labelAlign(labelPos.X, center.X),
			},
		})

		value := domain.Normalize(valueOrNaN(scores, dim))
		chart.Vertices = append(chart.Vertices, pointAt(center, angle, radius*value))
	}

	return chart
}

func pointAt(center Point, angle, distance float64) Point {
	return Point{
		X: center.X + distance*math.Cos(angle),
		Y: center.Y + distance*math.Sin(angle),
	}
}

func valueOrNaN(scores map[domain.Dimension]float64, dim domain.Dimension) float64 {
	if v, ok := scores[dim]; ok {
		return v
	}
	return math.NaN()
}

// labelAlign picks the horizontal alignment: labels close to the vertical
// centerline stay centered, others align toward the chart.
func labelAlign(x, centerX float64) TextAlign {
	switch {
	case math.Abs(x-centerX) <= centerTolerance:
		return AlignMiddle
	case x > centerX:
		return AlignStart
	default:
		return AlignEnd
	}
}

// adjustLabel nudges the label vertically in one of three fixed bands so
// labels above the chart sit higher and labels below sit lower, reducing
// overlap with the polygon.
func adjustLabel(pos Point, center Point) Point {
	switch {
	case pos.Y < center.Y-centerTolerance:
		pos.Y -= 4
	case pos.Y > center.Y+centerTolerance:
		pos.Y += 12
	default:
		pos.Y += 4
	}
	return pos
}
