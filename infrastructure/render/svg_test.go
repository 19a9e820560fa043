package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coherence-eval/coherence/internal/domain"
)

func TestSVGStructure(t *testing.T) {
	scores := map[domain.Dimension]float64{
		domain.DimContinuity:      0.9,
		domain.DimDifferentiation: 0.5,
	}
	chart := Layout(scores, 120, Point{X: 150, Y: 150})

	svg := string(SVG(chart))

	assert.True(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))

	assert.Equal(t, RingCount, strings.Count(svg, "<circle"))
	assert.Equal(t, len(domain.Dimensions), strings.Count(svg, "<line"))
	assert.Equal(t, 1, strings.Count(svg, "<polygon"))
	assert.Equal(t, len(domain.Dimensions), strings.Count(svg, "<text"))

	for _, dim := range domain.Dimensions {
		assert.Contains(t, svg, ">"+dim.Label()+"</text>")
	}

	// The polygon has one vertex per dimension.
	start := strings.Index(svg, `points="`) + len(`points="`)
	end := strings.Index(svg[start:], `"`)
	assert.Len(t, strings.Fields(svg[start:start+end]), len(domain.Dimensions))
}
