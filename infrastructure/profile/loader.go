// Package profile loads the coherence rubric that drives prompt
// construction. A default rubric ships embedded in the binary; deployments
// can override it with a YAML file on disk.
package profile

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/coherence-eval/coherence/internal/domain"
	"github.com/coherence-eval/coherence/internal/ports"
)

//go:embed coherence_profile.yaml
var embeddedProfile []byte

// Loader reads, validates, and caches a rubric document. Only successful
// loads are cached; a failed load leaves the loader ready to retry, so a
// corrected file is picked up on the next evaluation.
type Loader struct {
	// path is the override file; empty means use the embedded rubric.
	path string

	validator *validator.Validate

	mu     sync.Mutex
	cached *domain.Profile
}

var _ ports.ProfileLoader = (*Loader)(nil)

// NewLoader creates a loader for the rubric at path, or for the embedded
// default rubric when path is empty.
func NewLoader(path string) *Loader {
	return &Loader{
		path:      path,
		validator: validator.New(),
	}
}

// Load returns the rubric, reading and validating it on first use and
// serving the cached copy afterwards.
func (l *Loader) Load(ctx context.Context) (domain.Profile, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		return *l.cached, nil
	}

	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}

	data := embeddedProfile
	if l.path != "" {
		var err error
		data, err = os.ReadFile(l.path)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("failed to read profile %s: %w", l.path, err)
		}
	}

	profile, err := l.parse(data)
	if err != nil {
		return domain.Profile{}, err
	}

	l.cached = &profile
	return profile, nil
}

// parse unmarshals and validates a rubric document. Unknown top-level keys
// are rejected so a misindented file fails loudly instead of producing an
// empty rubric.
func (l *Loader) parse(data []byte) (domain.Profile, error) {
	var profile domain.Profile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&profile); err != nil {
		return domain.Profile{}, fmt.Errorf("failed to parse profile: %w", err)
	}

	if err := l.validator.Struct(profile); err != nil {
		return domain.Profile{}, fmt.Errorf("profile validation failed: %w", err)
	}

	if !profile.Complete() {
		return domain.Profile{}, fmt.Errorf("profile is missing dimensions: all of %v must carry a description", domain.Dimensions)
	}

	return profile, nil
}
