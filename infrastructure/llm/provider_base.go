package llm

import "sync"

// BaseProvider supplies thread-safe model-name storage shared by all
// providers.
type BaseProvider struct {
	mu    sync.RWMutex
	model string
}

// GetModel returns the configured model name. Safe for concurrent use.
func (b *BaseProvider) GetModel() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.model
}

// SetModel switches the model for subsequent requests. Safe for concurrent
// use.
func (b *BaseProvider) SetModel(model string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.model = model
}
