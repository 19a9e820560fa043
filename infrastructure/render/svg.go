package render

import (
	"fmt"
	"strings"
)

// svgMargin pads the viewBox so labels beyond the axis ends stay visible.
const svgMargin = 40

// SVG encodes the radar chart as a standalone SVG document: background
// rings, axis spokes, the data polygon, and one label per dimension.
func SVG(chart Chart) []byte {
	var b strings.Builder

	side := 2 * (chart.Radius + svgMargin)
	minX := chart.Center.X - chart.Radius - svgMargin
	minY := chart.Center.Y - chart.Radius - svgMargin

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f">`+"\n",
		minX, minY, side, side)

	for _, ring := range chart.Rings {
		fmt.Fprintf(&b, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#ddd"/>`+"\n",
			chart.Center.X, chart.Center.Y, ring)
	}

	for _, axis := range chart.Axes {
		fmt.Fprintf(&b, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#bbb"/>`+"\n",
			chart.Center.X, chart.Center.Y, axis.End.X, axis.End.Y)
	}

	points := make([]string, 0, len(chart.Vertices))
	for _, v := range chart.Vertices {
		points = append(points, fmt.Sprintf("%.1f,%.1f", v.X, v.Y))
	}
	fmt.Fprintf(&b, `  <polygon points="%s" fill="rgba(70,130,180,0.35)" stroke="steelblue"/>`+"\n",
		strings.Join(points, " "))

	for _, axis := range chart.Axes {
		fmt.Fprintf(&b, `  <text x="%.1f" y="%.1f" text-anchor="%s" font-size="12">%s</text>`+"\n",
			axis.Label.Pos.X, axis.Label.Pos.Y, axis.Label.Align, axis.Dimension.Label())
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}
