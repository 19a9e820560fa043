package llm

import "time"

// Default request parameters, applied when the options map leaves them
// unset.
const (
	// DefaultMaxTokens bounds response length when the caller sets none.
	DefaultMaxTokens = 1024

	// Temperature bounds accepted across providers. Gemini and OpenAI both
	// accept up to 2.0.
	minTemperature = 0.0
	maxTemperature = 2.0
)

// ResponseFormatJSON requests structured JSON output from providers that
// support it. Providers without a JSON mode ignore it; the prompt itself
// must still demand JSON.
const ResponseFormatJSON = "json_object"

// RequestOptions is the provider-agnostic view of one request's knobs.
type RequestOptions struct {
	// Model overrides the provider's configured model for this request.
	Model string

	// Temperature controls sampling randomness. Nil means provider default.
	Temperature *float64

	// MaxTokens bounds the response length.
	MaxTokens int

	// ResponseFormat requests a structured output mode, e.g.
	// ResponseFormatJSON.
	ResponseFormat string
}

// ParseRequestOptions extracts the recognized keys from an options map,
// falling back to defaults for missing or invalid entries. Recognized keys:
// "model" (string), "temperature" (float64), "max_tokens" (int),
// "response_format" (string).
func ParseRequestOptions(opts map[string]any, defaultModel string) RequestOptions {
	options := RequestOptions{
		Model:     defaultModel,
		MaxTokens: DefaultMaxTokens,
	}

	if model, ok := opts["model"].(string); ok && model != "" {
		options.Model = model
	}

	if temp, ok := opts["temperature"].(float64); ok && temp >= minTemperature && temp <= maxTemperature {
		options.Temperature = &temp
	}

	if maxTokens, ok := opts["max_tokens"].(int); ok && maxTokens > 0 {
		options.MaxTokens = maxTokens
	}

	if format, ok := opts["response_format"].(string); ok {
		options.ResponseFormat = format
	}

	return options
}

// clampFloat64 restricts val to [min, max].
func clampFloat64(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// httpTimeout clamps a configured timeout into a usable range; zero or
// negative means no client-side timeout.
func httpTimeout(timeout time.Duration) time.Duration {
	const (
		minTimeout = 1 * time.Second
		maxTimeout = 10 * time.Minute
	)
	if timeout <= 0 {
		return 0
	}
	if timeout < minTimeout {
		return minTimeout
	}
	if timeout > maxTimeout {
		return maxTimeout
	}
	return timeout
}
