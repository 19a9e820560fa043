// Package export serializes an evaluation result into downloadable
// documents: plain text, Markdown, and a minimal single-page PDF. All
// three encoders share the same section order and defaulting rules.
package export

import (
	"fmt"
	"strings"
	"time"
)

// Title heads every export document.
const Title = "Coherence Evaluation Report"

// filenamePrefix starts every export filename.
const filenamePrefix = "coherence-evaluation-"

// Format selects an export encoding.
type Format string

// Supported export formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// Document is an encoded export ready to be written or served.
type Document struct {
	// Data is the encoded document body.
	Data []byte

	// ContentType is the MIME type for serving the document.
	ContentType string

	// Filename combines the fixed prefix, the generation timestamp, and
	// the format's extension.
	Filename string
}

var filenameSanitizer = strings.NewReplacer(":", "-", ".", "-")

// Filename builds the export filename for a format: the fixed prefix, an
// ISO-8601 timestamp with ':' and '.' replaced by '-', and the extension.
func Filename(format Format, generatedAt time.Time) string {
	stamp := filenameSanitizer.Replace(generatedAt.UTC().Format(time.RFC3339))

	ext := "txt"
	switch format {
	case FormatMarkdown:
		ext = "md"
	case FormatPDF:
		ext = "pdf"
	}

	return fmt.Sprintf("%s%s.%s", filenamePrefix, stamp, ext)
}
