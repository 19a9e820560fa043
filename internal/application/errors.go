package application

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the session.
var (
	// ErrInputTooShort indicates the input, after trimming, is below the
	// configured minimum length. The session state is left untouched.
	ErrInputTooShort = errors.New("input is too short to evaluate")

	// ErrNoResult indicates an export was requested before any evaluation
	// rendered a result.
	ErrNoResult = errors.New("no result to export: run an evaluation first")
)

// TransportError indicates the completion request itself failed: the
// provider was unreachable, rejected the request, or timed out.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProfileError indicates the rubric could not be loaded. The evaluation
// never starts, so any previously rendered result survives.
type ProfileError struct {
	Err error
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("failed to load coherence profile: %v", e.Err)
}

func (e *ProfileError) Unwrap() error { return e.Err }
