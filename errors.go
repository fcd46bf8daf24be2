package voltra

import (
	"errors"
	"fmt"
)

// Error codes reported in APIError.Code for failures raised locally.
const (
	// CodeCircuitOpen marks a call short-circuited by the per-path breaker.
	CodeCircuitOpen = "CircuitOpen"
	// CodeCancelled marks a call aborted by the caller's context.
	CodeCancelled = "Cancelled"
	// CodeRateLimited marks a call denied by the client-side rate limiter.
	CodeRateLimited = "RateLimited"
	// CodeNetwork marks a transport-level failure (connect error, timeout).
	CodeNetwork = "NetworkError"
	// CodeHTTP is the fallback for non-2xx responses whose body carries no
	// machine-readable code.
	CodeHTTP = "HTTPError"
	// CodeEncode marks a request body that could not be JSON-encoded.
	CodeEncode = "EncodeError"
	// CodeInvalidConfig marks a client built with invalid options.
	CodeInvalidConfig = "InvalidConfiguration"
)

// APIError is the uniform failure shape surfaced to callers. Every exit path
// of the client funnels through it; raw transport errors never escape.
type APIError struct {
	// Status is the HTTP status code, or 0 when the failure was local.
	// A tripped breaker reports a synthetic 503.
	Status int
	// Code is a short machine-readable failure tag, preferring a
	// server-supplied code from the response body.
	Code string
	// Message is a human-readable description, preferring the server's
	// message field.
	Message string
	// RequestID is the correlation ID from the response, if present.
	RequestID string
	// Details holds the decoded response body or the local cause, for
	// diagnostic use.
	Details any
	// URL is the originally requested URL.
	URL string
	// Cause is the underlying error for local failures, if any.
	Cause error
}

// Error implements error interface.
func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("[%s] %s", e.RequestID, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error codes for errors.Is.
func (e *APIError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*APIError); ok {
		return e.Code == targetErr.Code
	}
	return false
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *APIError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Code: %s\n", e.Code)
	info += fmt.Sprintf("Message: %s\n", e.Message)
	if e.Status > 0 {
		info += fmt.Sprintf("Status: %d\n", e.Status)
	}
	if e.RequestID != "" {
		info += fmt.Sprintf("Request ID: %s\n", e.RequestID)
	}
	if e.URL != "" {
		info += fmt.Sprintf("URL: %s\n", e.URL)
	}
	if e.Details != nil {
		info += fmt.Sprintf("Details: %v\n", e.Details)
	}
	if e.Cause != nil {
		info += fmt.Sprintf("Cause: %v\n", e.Cause)
	}
	return info
}

// IsTransient determines if an error represents a failure that might succeed
// on a later call. Network errors, timeouts, 5xx responses, rate limiting and
// an open breaker are transient; 4xx responses (except 429) and cancellation
// are not.
func IsTransient(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case CodeCancelled:
		return false
	case CodeCircuitOpen, CodeRateLimited, CodeNetwork:
		return true
	}
	if apiErr.Status >= 500 {
		return true
	}
	return apiErr.Status == 429
}
