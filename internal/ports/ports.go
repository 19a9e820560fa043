// Package ports defines the interfaces between the application layer and
// the infrastructure adapters, enabling dependency inversion and testing
// with fakes.
package ports

import (
	"context"

	"github.com/coherence-eval/coherence/internal/domain"
)

// CompletionClient sends prompts to a large-language-model completion
// endpoint. Implementations handle provider-specific authentication,
// request formatting, and response parsing.
type CompletionClient interface {
	// Complete sends a completion request and returns the generated text.
	//
	// The options map carries provider-agnostic request knobs:
	//   - "temperature": float64
	//   - "max_tokens": int
	//   - "model": string (override the configured model)
	//   - "response_format": "json_object" to request structured output
	Complete(ctx context.Context, prompt string, options map[string]any) (string, error)

	// GetModel returns the model identifier the client is configured with,
	// for logging and diagnostics.
	GetModel() string
}

// ProfileLoader obtains the coherence rubric used to build evaluation
// prompts. Implementations must treat a load failure as fatal for the
// attempt rather than caching an empty profile.
type ProfileLoader interface {
	Load(ctx context.Context) (domain.Profile, error)
}
