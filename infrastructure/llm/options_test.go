package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequestOptionsDefaults(t *testing.T) {
	options := ParseRequestOptions(nil, "default-model")

	assert.Equal(t, "default-model", options.Model)
	assert.Equal(t, DefaultMaxTokens, options.MaxTokens)
	assert.Nil(t, options.Temperature)
	assert.Empty(t, options.ResponseFormat)
}

func TestParseRequestOptionsOverrides(t *testing.T) {
	options := ParseRequestOptions(map[string]any{
		"model":           "other-model",
		"temperature":     0.2,
		"max_tokens":      512,
		"response_format": ResponseFormatJSON,
	}, "default-model")

	assert.Equal(t, "other-model", options.Model)
	require.NotNil(t, options.Temperature)
	assert.InDelta(t, 0.2, *options.Temperature, 1e-9)
	assert.Equal(t, 512, options.MaxTokens)
	assert.Equal(t, ResponseFormatJSON, options.ResponseFormat)
}

func TestParseRequestOptionsRejectsInvalid(t *testing.T) {
	options := ParseRequestOptions(map[string]any{
		"model":       "",
		"temperature": 5.0,
		"max_tokens":  -1,
	}, "default-model")

	assert.Equal(t, "default-model", options.Model)
	assert.Nil(t, options.Temperature)
	assert.Equal(t, DefaultMaxTokens, options.MaxTokens)
}

func TestHTTPTimeoutClamping(t *testing.T) {
	assert.Equal(t, time.Duration(0), httpTimeout(0))
	assert.Equal(t, time.Duration(0), httpTimeout(-time.Second))
	assert.Equal(t, time.Second, httpTimeout(time.Millisecond))
	assert.Equal(t, 30*time.Second, httpTimeout(30*time.Second))
	assert.Equal(t, 10*time.Minute, httpTimeout(time.Hour))
}
