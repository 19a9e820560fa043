// Package application orchestrates a coherence evaluation end to end:
// building the prompt from the rubric, calling the completion client,
// adapting the response, and gating exports on a rendered result.
package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chainguard-dev/clog"

	"github.com/coherence-eval/coherence/infrastructure/export"
	"github.com/coherence-eval/coherence/infrastructure/modelout"
	"github.com/coherence-eval/coherence/internal/domain"
	"github.com/coherence-eval/coherence/internal/ports"
)

// State is the session's position in the evaluation lifecycle.
type State int

const (
	// StateIdle means no evaluation has run yet.
	StateIdle State = iota
	// StateEvaluating means a request is in flight.
	StateEvaluating
	// StateRendered means the last evaluation produced a result.
	StateRendered
	// StateFailed means the last evaluation failed after it started.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEvaluating:
		return "evaluating"
	case StateRendered:
		return "rendered"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Config carries the session's evaluation settings.
type Config struct {
	// MinInputLength is the minimum trimmed input length accepted for
	// evaluation. Zero selects the default of 20.
	MinInputLength int

	// Temperature is the sampling temperature for evaluation requests.
	// Zero selects the default of 0.2.
	Temperature float64

	// MaxTokens bounds the response length. Zero leaves the client's
	// default in place.
	MaxTokens int
}

const (
	defaultMinInputLength = 20
	defaultTemperature    = 0.2
)

// Session drives evaluations against a completion client and holds the
// last rendered result for export. Evaluations serialize; a session runs
// one at a time.
type Session struct {
	client   ports.CompletionClient
	profiles ports.ProfileLoader
	config   Config

	// evalMu serializes Evaluate calls; mu guards the fields below.
	evalMu sync.Mutex
	mu     sync.Mutex

	state      State
	lastResult *domain.EvaluationResult
}

// NewSession creates a session in the idle state, applying defaults for
// unset config fields.
func NewSession(client ports.CompletionClient, profiles ports.ProfileLoader, config Config) *Session {
	if config.MinInputLength <= 0 {
		config.MinInputLength = defaultMinInputLength
	}
	if config.Temperature <= 0 {
		config.Temperature = defaultTemperature
	}

	return &Session{
		client:   client,
		profiles: profiles,
		config:   config,
		state:    StateIdle,
	}
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastResult returns the most recently rendered result, or false when
// none is held.
func (s *Session) LastResult() (domain.EvaluationResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastResult == nil {
		return domain.EvaluationResult{}, false
	}
	return *s.lastResult, true
}

// Evaluate runs one evaluation of the input.
//
// Rejected input (too short) and rubric load failures return before the
// evaluation starts: the state and any previously rendered result are left
// untouched. Once the evaluation starts the previous result is discarded,
// and a transport or parse failure leaves the session failed with nothing
// to export.
func (s *Session) Evaluate(ctx context.Context, input string) (domain.EvaluationResult, error) {
	s.evalMu.Lock()
	defer s.evalMu.Unlock()

	log := clog.FromContext(ctx)

	trimmed := strings.TrimSpace(input)
	if len(trimmed) < s.config.MinInputLength {
		return domain.EvaluationResult{}, ErrInputTooShort
	}

	profile, err := s.profiles.Load(ctx)
	if err != nil {
		log.With("error", err).Warn("profile load failed")
		return domain.EvaluationResult{}, &ProfileError{Err: err}
	}

	prompt, err := BuildPrompt(profile, trimmed)
	if err != nil {
		return domain.EvaluationResult{}, err
	}

	s.setState(StateEvaluating, nil)
	log.With("model", s.client.GetModel(), "input_length", len(trimmed)).Info("evaluation started")

	raw, err := s.client.Complete(ctx, prompt, map[string]any{
		"temperature":     s.config.Temperature,
		"max_tokens":      s.config.MaxTokens,
		"response_format": "json_object",
	})
	if err != nil {
		s.setState(StateFailed, nil)
		log.With("error", err).Error("completion request failed")
		return domain.EvaluationResult{}, &TransportError{Err: err}
	}

	extracted, err := modelout.Extract(raw)
	if err != nil {
		s.setState(StateFailed, nil)
		log.With("error", err).Error("model response was not valid JSON")
		return domain.EvaluationResult{}, err
	}

	result := modelout.Adapt(extracted)
	s.setState(StateRendered, &result)

	composite, band, ok := result.Composite()
	if ok {
		log.With("composite", composite, "band", string(band)).Info("evaluation rendered")
	} else {
		log.Info("evaluation rendered without scores")
	}

	return result, nil
}

// Export encodes the last rendered result in the requested format. It
// fails with ErrNoResult unless the session holds a rendered result.
func (s *Session) Export(format export.Format, now time.Time) (export.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRendered || s.lastResult == nil {
		return export.Document{}, ErrNoResult
	}

	switch format {
	case export.FormatText:
		return export.Text(*s.lastResult, now), nil
	case export.FormatMarkdown:
		return export.Markdown(*s.lastResult, now), nil
	case export.FormatPDF:
		return export.PDF(*s.lastResult, now), nil
	default:
		return export.Document{}, fmt.Errorf("unknown export format: %s", format)
	}
}

func (s *Session) setState(state State, result *domain.EvaluationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.lastResult = result
}
