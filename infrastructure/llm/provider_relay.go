package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

func init() {
	RegisterProviderFactory("relay", newRelayProvider)
}

// relayProvider implements CoreLLM against the coherenced relay daemon,
// which holds the upstream credentials. The provider sends only the prompt;
// model selection and authentication happen on the daemon side.
type relayProvider struct {
	BaseProvider
	url             string
	httpClient      *http.Client
	errorClassifier *ErrorClassifier
}

// relayRequest is the daemon's inbound contract: a single prompt field.
type relayRequest struct {
	Prompt string `json:"prompt"`
}

// relayResponse mirrors the OpenAI chat completion shape the daemon relays
// verbatim. Error bodies carry error and details instead.
type relayResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

func newRelayProvider(config ClientConfig) (CoreLLM, error) {
	if config.BaseURL == "" {
		return nil, errors.New("relay URL is required")
	}

	model := config.Model
	if model == "" {
		// The daemon picks the model; this name only labels diagnostics.
		model = "relay"
	}

	return &relayProvider{
		BaseProvider:    BaseProvider{model: model},
		url:             config.BaseURL,
		httpClient:      &http.Client{Timeout: httpTimeout(config.Timeout)},
		errorClassifier: &ErrorClassifier{Provider: "relay"},
	}, nil
}

// DoRequest posts the prompt to the daemon and extracts the first choice's
// content. A 2xx response with no content yields "{}" so downstream
// adaptation still produces a defaulted result.
func (p *relayProvider) DoRequest(ctx context.Context, prompt string, _ map[string]any) (string, int, int, error) {
	body, err := json.Marshal(relayRequest{Prompt: prompt})
	if err != nil {
		return "", 0, 0, fmt.Errorf("failed to encode relay request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", 0, 0, fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", 0, 0, p.errorClassifier.ClassifyContextError(err)
		}
		return "", 0, 0, NewProviderError("relay", ErrorTypeNetwork, 0, "request failed", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, 0, NewProviderError("relay", ErrorTypeNetwork, 0, "failed to read response", err)
	}

	var parsed relayResponse
	// A malformed body on a 2xx still falls through to the "{}" default.
	_ = json.Unmarshal(payload, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := parsed.Error
		if parsed.Details != "" {
			message += ": " + parsed.Details
		}
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return "", 0, 0, p.errorClassifier.ClassifyHTTPError(resp.StatusCode, message, nil)
	}

	content := "{}"
	if len(parsed.Choices) > 0 && parsed.Choices[0].Message.Content != "" {
		content = parsed.Choices[0].Message.Content
	}

	return content, estimateTokens(prompt), estimateTokens(content), nil
}
