package voltra

import (
	"net/http"
	"time"
)

// Option represents a configuration option
type Option func(*Client)

// Middleware represents a middleware function
type Middleware func(req *http.Request, next RoundTripper) (*http.Response, error)

// RoundTripper represents the HTTP transport interface
type RoundTripper interface {
	RoundTrip(*http.Request) (*http.Response, error)
}

// RoundTripperFunc is a helper type for middleware
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Result is the decoded outcome of a successful call.
type Result struct {
	// Status is the HTTP status code (always 2xx on a Result).
	Status int
	// Header holds the response headers.
	Header http.Header
	// RequestID is the correlation ID echoed by the server, if any.
	RequestID string
	// Raw is the unparsed response body.
	Raw []byte
	// Value is the decoded body: for JSON responses the unmarshalled value
	// (an empty object when a declared-JSON body fails to parse), for
	// everything else the body as a string.
	Value any
}

// CallOption overrides retry budget, timeout or headers for a single call.
type CallOption func(*callConfig)

type callConfig struct {
	retries int
	timeout time.Duration
	headers http.Header
}

// Retries overrides the retry budget for one call. n is the number of
// retries after the initial attempt; 0 disables retrying.
func Retries(n int) CallOption {
	return func(cc *callConfig) {
		if n >= 0 {
			cc.retries = n
		}
	}
}

// Timeout overrides the per-attempt timeout for one call.
func Timeout(d time.Duration) CallOption {
	return func(cc *callConfig) {
		if d > 0 {
			cc.timeout = d
		}
	}
}

// Header adds or replaces a header for one call. Caller headers win over the
// client's fixed and authorization headers.
func Header(key, value string) CallOption {
	return func(cc *callConfig) {
		if cc.headers == nil {
			cc.headers = http.Header{}
		}
		cc.headers.Set(key, value)
	}
}
