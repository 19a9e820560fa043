package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/coherence-eval/coherence/internal/domain"
)

// PDF layout constants: US Letter page, a single built-in font, a fixed
// text origin near the top-left, and a fixed line height. There is no
// pagination; content past the bottom of the page is simply not visible.
const (
	pdfPageWidth  = 612
	pdfPageHeight = 792
	pdfFontSize   = 11
	pdfLineHeight = 14
	pdfOriginX    = 50
	pdfOriginY    = 760
)

// pdfEscaper escapes the three characters that are structurally
// significant inside PDF string literals.
var pdfEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// PDF encodes the result as a minimal single-page PDF: a catalog, a page
// tree, one page, one content stream drawing the shared lines top-down in
// Helvetica, and a cross-reference table. Common readers open it; nothing
// beyond left-to-right text on one page is supported.
func PDF(result domain.EvaluationResult, generatedAt time.Time) Document {
	content := contentStream(buildLines(result, generatedAt))

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
			pdfPageWidth, pdfPageHeight),
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 0, len(objects))
	for i, obj := range objects {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}

	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefStart)

	return Document{
		Data:        buf.Bytes(),
		ContentType: "application/pdf",
		Filename:    Filename(FormatPDF, generatedAt),
	}
}

// contentStream builds the page's text-drawing operations: position the
// cursor at the fixed origin, draw the first line, then step down one line
// height before each subsequent line.
func contentStream(lines []string) string {
	var b strings.Builder

	b.WriteString("BT\n")
	fmt.Fprintf(&b, "/F1 %d Tf\n", pdfFontSize)
	fmt.Fprintf(&b, "1 0 0 1 %d %d Tm\n", pdfOriginX, pdfOriginY)

	for i, line := range lines {
		if i > 0 {
			fmt.Fprintf(&b, "0 -%d Td\n", pdfLineHeight)
		}
		fmt.Fprintf(&b, "(%s) Tj\n", pdfEscaper.Replace(line))
	}

	b.WriteString("ET")
	return b.String()
}
