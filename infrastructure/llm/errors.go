package llm

import (
	"context"
	"errors"
	"fmt"
)

// Common errors returned by providers.
var (
	// ErrEmptyAPIKey indicates a provider requiring authentication was
	// configured without a key.
	ErrEmptyAPIKey = errors.New("API key cannot be empty")
	// ErrEmptyResponse indicates the provider returned no usable content.
	ErrEmptyResponse = errors.New("empty response from API")
	// ErrNoResponseChoice indicates the provider's response contained no
	// choices.
	ErrNoResponseChoice = errors.New("no response choices returned")
)

// ErrorType categorizes provider errors for retry decisions and logging.
type ErrorType int

const (
	// ErrorTypeUnknown indicates an error of an undetermined category.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeAuthentication indicates an invalid or rejected credential.
	ErrorTypeAuthentication
	// ErrorTypeRateLimit indicates the provider throttled the request.
	ErrorTypeRateLimit
	// ErrorTypeBadRequest indicates malformed parameters.
	ErrorTypeBadRequest
	// ErrorTypeServerError indicates a failure on the provider's side.
	ErrorTypeServerError
	// ErrorTypeContentPolicy indicates the request was blocked by a safety
	// filter.
	ErrorTypeContentPolicy
	// ErrorTypeNetwork indicates a transport-level failure, including
	// context cancellation and deadline expiry.
	ErrorTypeNetwork
)

// ProviderError normalizes provider-specific failures into one shape with
// a classified type, so callers can decide on retries without knowing the
// provider.
type ProviderError struct {
	// Type classifies the failure.
	Type ErrorType
	// Provider names the provider that produced the error.
	Provider string
	// StatusCode holds the HTTP status from the provider, when applicable.
	StatusCode int
	// Message is the user-facing description.
	Message string
	// WrappedError preserves the original error for errors.Is / errors.As.
	WrappedError error
}

func (e *ProviderError) Error() string {
	base := fmt.Sprintf("%s error", e.Provider)
	if e.StatusCode > 0 {
		base += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if s := e.typeString(); s != "" {
		base += fmt.Sprintf(" [%s]", s)
	}
	if e.Message != "" {
		base += ": " + e.Message
	}
	if e.WrappedError != nil {
		base += fmt.Sprintf(": %v", e.WrappedError)
	}
	return base
}

// Unwrap returns the original provider error.
func (e *ProviderError) Unwrap() error { return e.WrappedError }

// IsRetryable reports whether a request failing with this error is worth
// retrying. Rate limits, server errors, and network failures are transient;
// everything else is not.
func (e *ProviderError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeRateLimit, ErrorTypeServerError, ErrorTypeNetwork:
		return true
	default:
		return false
	}
}

func (e *ProviderError) typeString() string {
	switch e.Type {
	case ErrorTypeAuthentication:
		return "authentication"
	case ErrorTypeRateLimit:
		return "rate_limit"
	case ErrorTypeBadRequest:
		return "bad_request"
	case ErrorTypeServerError:
		return "server_error"
	case ErrorTypeContentPolicy:
		return "content_policy"
	case ErrorTypeNetwork:
		return "network"
	default:
		return ""
	}
}

// NewProviderError builds a ProviderError.
func NewProviderError(provider string, errType ErrorType, statusCode int, message string, wrapped error) *ProviderError {
	return &ProviderError{
		Type:         errType,
		Provider:     provider,
		StatusCode:   statusCode,
		Message:      message,
		WrappedError: wrapped,
	}
}

// ErrorClassifier maps raw provider failures to ProviderError instances
// using HTTP status codes and context state.
type ErrorClassifier struct {
	// Provider names the provider this classifier annotates errors with.
	Provider string
}

// ClassifyHTTPError classifies an error by its HTTP status code.
func (ec *ErrorClassifier) ClassifyHTTPError(statusCode int, message string, err error) *ProviderError {
	var errType ErrorType

	switch {
	case statusCode == 401 || statusCode == 403:
		errType = ErrorTypeAuthentication
		message = fmt.Sprintf("%s authentication failed", ec.Provider)
	case statusCode == 429:
		errType = ErrorTypeRateLimit
		message = fmt.Sprintf("%s rate limit exceeded", ec.Provider)
	case statusCode >= 400 && statusCode < 500:
		errType = ErrorTypeBadRequest
	case statusCode >= 500:
		errType = ErrorTypeServerError
	default:
		errType = ErrorTypeUnknown
	}

	return NewProviderError(ec.Provider, errType, statusCode, message, err)
}

// ClassifyContextError classifies cancellation and deadline errors as
// network failures, which are retryable.
func (ec *ErrorClassifier) ClassifyContextError(err error) *ProviderError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return NewProviderError(ec.Provider, ErrorTypeNetwork, 0, "context deadline exceeded", err)
	case errors.Is(err, context.Canceled):
		return NewProviderError(ec.Provider, ErrorTypeNetwork, 0, "request canceled", err)
	default:
		return NewProviderError(ec.Provider, ErrorTypeUnknown, 0, "", err)
	}
}
