// Package modelout turns the untrusted free-form text returned by a
// language model into a fully-typed evaluation result. Extraction parses
// the text as JSON after stripping an optional markdown code fence;
// adaptation then fills defaults for everything missing or malformed.
package modelout

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports that the model's text output was not valid JSON after
// fence stripping. It is terminal for the evaluation attempt; callers must
// surface it rather than retry.
type ParseError struct {
	// Err is the underlying JSON parse error, kept for diagnostics.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("model response is not valid JSON: %v", e.Err)
}

// Unwrap returns the underlying parse error.
func (e *ParseError) Unwrap() error { return e.Err }

// StripFence removes an optional leading "```json" or "```" fence and an
// optional trailing "```" from the text, along with surrounding whitespace.
// The fence markers are matched as case-sensitive literals.
func StripFence(text string) string {
	s := strings.TrimSpace(text)

	if rest, ok := strings.CutPrefix(s, "```json"); ok {
		s = rest
	} else if rest, ok := strings.CutPrefix(s, "```"); ok {
		s = rest
	}
	s = strings.TrimSpace(s)

	if rest, ok := strings.CutSuffix(s, "```"); ok {
		s = strings.TrimSpace(rest)
	}

	return s
}

// Extract strips any code fence from the raw model text and parses the
// remainder as JSON. On success it returns the decoded value (any JSON
// value, not necessarily an object); on failure it returns a *ParseError.
func Extract(raw string) (any, error) {
	var parsed any
	if err := json.Unmarshal([]byte(StripFence(raw)), &parsed); err != nil {
		return nil, &ParseError{Err: err}
	}
	return parsed, nil
}
