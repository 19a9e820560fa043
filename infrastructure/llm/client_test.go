package llm

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM is a scriptable CoreLLM for middleware and client tests.
type fakeLLM struct {
	mu       sync.Mutex
	model    string
	response string
	err      error
	calls    int

	// onCall, when set, overrides the scripted response per attempt.
	onCall func(attempt int) (string, error)
}

func (f *fakeLLM) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.onCall != nil {
		response, err := f.onCall(f.calls)
		return response, 1, 1, err
	}
	if f.err != nil {
		return "", 0, 0, f.err
	}
	return f.response, estimateTokens(prompt), estimateTokens(f.response), nil
}

func (f *fakeLLM) GetModel() string  { return f.model }
func (f *fakeLLM) SetModel(m string) { f.model = m }

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient("nonexistent", ClientConfig{APIKey: "key"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestNewClientFactoryError(t *testing.T) {
	RegisterProviderFactory("failing", func(ClientConfig) (CoreLLM, error) {
		return nil, errors.New("boom")
	})

	_, err := NewClient("failing", ClientConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create failing provider")
}

func TestNewClientAppliesMiddlewareInOrder(t *testing.T) {
	fake := &fakeLLM{model: "test-model", response: "ok"}
	RegisterProviderFactory("ordered", func(ClientConfig) (CoreLLM, error) {
		return fake, nil
	})

	var order []string
	tag := func(name string) Middleware {
		return func(next CoreLLM) CoreLLM {
			return &taggedLLM{next: next, name: name, order: &order}
		}
	}

	client, err := NewClient("ordered", ClientConfig{
		Middleware: []Middleware{tag("outer"), tag("inner")},
	})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "prompt", nil)
	require.NoError(t, err)

	// The first configured middleware must run first.
	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.Equal(t, "test-model", client.GetModel())
}

func TestClientCompleteWithUsage(t *testing.T) {
	fake := &fakeLLM{model: "test-model", response: "twelve chars"}
	RegisterProviderFactory("usage", func(ClientConfig) (CoreLLM, error) {
		return fake, nil
	})

	client, err := NewClient("usage", ClientConfig{})
	require.NoError(t, err)

	response, tokensIn, tokensOut, err := client.CompleteWithUsage(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "twelve chars", response)
	assert.Positive(t, tokensIn)
	assert.Positive(t, tokensOut)
}

type taggedLLM struct {
	next  CoreLLM
	name  string
	order *[]string
}

func (t *taggedLLM) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	*t.order = append(*t.order, t.name)
	return t.next.DoRequest(ctx, prompt, opts)
}

func (t *taggedLLM) GetModel() string  { return t.next.GetModel() }
func (t *taggedLLM) SetModel(m string) { t.next.SetModel(m) }

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, estimateTokens(""))
	assert.Equal(t, 1, estimateTokens("abc"))
	assert.Equal(t, 2, estimateTokens("eightchr"))
}
