// Package llm provides completion clients for the model providers the
// evaluator can talk to, behind a single interface with middleware for
// cross-cutting concerns.
//
// Providers (OpenAI, Anthropic, Google, and the relay daemon) implement the
// CoreLLM interface; middleware wraps any CoreLLM to add timeouts, rate
// limiting, retries, metrics, and tracing without touching provider code.
//
// Basic usage:
//
//	client, err := llm.NewClient("openai", llm.ClientConfig{
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	    Model:  "gpt-4o-mini",
//	    Middleware: []llm.Middleware{
//	        llm.TimeoutMiddleware(60 * time.Second),
//	        llm.RetryMiddleware(2, time.Second, 10*time.Second),
//	    },
//	})
//	raw, err := client.Complete(ctx, prompt, map[string]any{
//	    "temperature":     0.2,
//	    "response_format": "json_object",
//	})
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/coherence-eval/coherence/internal/ports"
)

// CoreLLM is the minimal surface a provider must implement. Middleware
// wraps any conforming implementation.
type CoreLLM interface {
	// DoRequest sends a prompt and returns the response text along with
	// input and output token counts. The opts map carries request knobs;
	// see ParseRequestOptions for the recognized keys.
	DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error)

	// GetModel returns the currently configured model name.
	GetModel() string

	// SetModel switches the model for subsequent requests.
	SetModel(model string)
}

// Middleware wraps a CoreLLM to add cross-cutting behavior. Middleware
// composes; the chain is assembled by NewClient.
type Middleware func(CoreLLM) CoreLLM

// ClientConfig holds the settings for creating a completion client.
type ClientConfig struct {
	// APIKey authenticates requests to the provider. The relay provider
	// does not use it; every other provider requires it.
	APIKey string

	// Model names the model to request. Empty selects the provider's
	// default.
	Model string

	// BaseURL overrides the provider's default endpoint. The relay
	// provider requires it; elsewhere empty means the default.
	BaseURL string

	// Timeout bounds individual requests. Zero means no client-side bound.
	Timeout time.Duration

	// Middleware is applied in order: the first entry is the outermost
	// wrapper.
	Middleware []Middleware
}

// Client adapts a middleware-wrapped CoreLLM to the application-facing
// CompletionClient port.
type Client struct {
	core CoreLLM
}

var _ ports.CompletionClient = (*Client)(nil)

// NewClient builds a completion client for the named provider, wrapping it
// with the configured middleware chain.
func NewClient(providerType string, config ClientConfig) (*Client, error) {
	factory, ok := providerFactories[providerType]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", providerType)
	}

	core, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", providerType, err)
	}

	// Apply middleware in reverse so the first entry is the outermost.
	for i := len(config.Middleware) - 1; i >= 0; i-- {
		core = config.Middleware[i](core)
	}

	return &Client{core: core}, nil
}

// Complete sends a prompt and returns the response text, discarding token
// usage.
func (c *Client) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	response, _, _, err := c.core.DoRequest(ctx, prompt, options)
	return response, err
}

// CompleteWithUsage sends a prompt and returns the response text with
// input and output token counts.
func (c *Client) CompleteWithUsage(ctx context.Context, prompt string, options map[string]any) (string, int, int, error) {
	return c.core.DoRequest(ctx, prompt, options)
}

// GetModel returns the model the underlying provider is configured with.
func (c *Client) GetModel() string { return c.core.GetModel() }

// ProviderFactory builds a CoreLLM from configuration.
type ProviderFactory func(ClientConfig) (CoreLLM, error)

// providerFactories maps provider names to factories. Providers register
// themselves in init.
var providerFactories = map[string]ProviderFactory{}

// RegisterProviderFactory registers a provider under the given name,
// replacing any existing registration.
func RegisterProviderFactory(providerType string, factory ProviderFactory) {
	providerFactories[providerType] = factory
}

// estimateTokens approximates a token count at four characters per token,
// used when a provider response carries no usage data.
func estimateTokens(text string) int {
	return (len(text) + 3) / 4
}
