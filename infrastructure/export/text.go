package export

import (
	"strings"
	"time"

	"github.com/coherence-eval/coherence/internal/domain"
)

// Text encodes the result as plain text: the shared lines joined by
// newlines, verbatim.
func Text(result domain.EvaluationResult, generatedAt time.Time) Document {
	body := strings.Join(buildLines(result, generatedAt), "\n") + "\n"

	return Document{
		Data:        []byte(body),
		ContentType: "text/plain",
		Filename:    Filename(FormatText, generatedAt),
	}
}
