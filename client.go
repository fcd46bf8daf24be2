package voltra

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/chargeops/voltra/internal/backoff"
)

const (
	// APIKeyHeader identifies the calling application on every request.
	APIKeyHeader = "X-Api-Key"
	// RequestIDHeader carries the request correlation ID in both directions.
	RequestIDHeader = "X-Request-Id"
)

const (
	defaultMaxRetries = 3
	defaultTimeout    = 15 * time.Second
)

// Client is a resilient HTTP client for the platform API. It layers
// per-attempt timeouts, bounded retries, per-path circuit breaking, token
// injection, optional rate limiting, middleware and metrics around the
// standard net/http Client. It is safe for concurrent use.
type Client struct {
	httpClient      *http.Client
	maxRetries      int
	timeout         time.Duration
	schedule        backoff.Schedule
	apiKey          string
	tokens          TokenProvider
	breaker         BreakerStore
	limiter         *rate.Limiter
	middleware      []Middleware
	metrics         *MetricsCollector
	debug           *DebugConfig
	logger          Logger
	validationError error
}

// New constructs a Client using the provided functional options. A best effort
// validation is performed; call IsValid / ValidationError for errors.
func New(options ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{},
		maxRetries: defaultMaxRetries,
		timeout:    defaultTimeout,
		schedule:   backoff.Default(),
		breaker:    NewMemoryBreakerStore(),
		middleware: []Middleware{},
		debug:      DefaultDebugConfig(),
	}

	for _, option := range options {
		option(client)
	}

	if err := client.ValidateConfiguration(); err != nil {
		client.validationError = err
	}

	return client
}

// Get performs an HTTP GET against the given URL.
func (c *Client) Get(ctx context.Context, url string, opts ...CallOption) (*Result, error) {
	return c.call(ctx, http.MethodGet, url, nil, opts)
}

// Post performs an HTTP POST with a JSON-encoded body.
func (c *Client) Post(ctx context.Context, url string, body any, opts ...CallOption) (*Result, error) {
	return c.call(ctx, http.MethodPost, url, body, opts)
}

// Put performs an HTTP PUT with a JSON-encoded body.
func (c *Client) Put(ctx context.Context, url string, body any, opts ...CallOption) (*Result, error) {
	return c.call(ctx, http.MethodPut, url, body, opts)
}

// Delete performs an HTTP DELETE against the given URL.
func (c *Client) Delete(ctx context.Context, url string, opts ...CallOption) (*Result, error) {
	return c.call(ctx, http.MethodDelete, url, nil, opts)
}

// call runs one logical request: an explicit attempt loop with the breaker
// consulted before every attempt, including retries. A path pushed over the
// trip threshold mid-sequence therefore short-circuits its remaining retries.
func (c *Client) call(ctx context.Context, method, rawURL string, body any, opts []CallOption) (*Result, error) {
	start := time.Now()
	endpoint := endpointLabel(rawURL)
	key := breakerKey(rawURL)

	cc := callConfig{retries: c.maxRetries, timeout: c.timeout}
	for _, opt := range opts {
		opt(&cc)
	}

	var requestID string
	if c.debug != nil && c.debug.Enabled && c.debug.RequestIDGen != nil {
		requestID = c.debug.RequestIDGen()
	}

	if c.debug != nil && c.debug.Enabled && c.debug.LogRequests && c.logger != nil {
		c.logger.Debug("Starting request", "requestID", requestID, "method", method, "url", rawURL)
	}

	if c.metrics != nil {
		c.metrics.RecordRequestStart(method, endpoint)
		defer c.metrics.RecordRequestEnd(method, endpoint)
	}

	payload, err := encodeBody(body)
	if err != nil {
		encErr := &APIError{
			Code:      CodeEncode,
			Message:   err.Error(),
			RequestID: requestID,
			URL:       rawURL,
			Cause:     err,
		}
		c.finishCall(encErr, method, endpoint, start)
		return nil, encErr
	}

	// Token lookup happens once per logical call, never cached across calls.
	headers := c.buildHeaders(ctx, cc.headers, requestID)

	var callErr *APIError
	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			callErr = cancelledError(rawURL, requestID, ctx.Err())
			break
		}

		if c.limiter != nil && !c.limiter.Allow() {
			if c.logger != nil {
				c.logger.Warn("Rate limit exceeded", "requestID", requestID, "endpoint", endpoint)
			}
			callErr = &APIError{
				Code:      CodeRateLimited,
				Message:   "client-side rate limit exceeded",
				RequestID: requestID,
				URL:       rawURL,
			}
			break
		}

		if w, ok := c.breaker.Window(key); ok && w.Tripped(time.Now()) {
			if c.debug != nil && c.debug.Enabled && c.debug.LogBreaker && c.logger != nil {
				c.logger.Warn("Circuit open", "requestID", requestID, "path", key, "failures", w.Count)
			}
			callErr = &APIError{
				Status:    http.StatusServiceUnavailable,
				Code:      CodeCircuitOpen,
				Message:   "circuit open for " + key,
				RequestID: requestID,
				URL:       rawURL,
			}
			break
		}

		if attempt > 0 {
			if c.debug != nil && c.debug.Enabled && c.debug.LogRetries && c.logger != nil {
				c.logger.Info("Retry attempt", "requestID", requestID, "attempt", attempt, "maxRetries", cc.retries, "endpoint", endpoint)
			}
			if c.metrics != nil {
				c.metrics.RecordRetry(method, endpoint, attempt)
			}
		}

		resp, raw, attemptErr := c.attempt(ctx, method, rawURL, payload, headers, cc.timeout)
		if attemptErr != nil {
			if ctx.Err() != nil {
				callErr = cancelledError(rawURL, requestID, attemptErr)
				break
			}
			if attempt < cc.retries {
				sleepContext(ctx, c.schedule.Delay(attempt))
				continue
			}
			c.breaker.Record(key)
			callErr = &APIError{
				Code:      CodeNetwork,
				Message:   attemptErr.Error(),
				RequestID: requestID,
				Details:   attemptErr.Error(),
				URL:       rawURL,
				Cause:     attemptErr,
			}
			break
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			res := buildResult(resp, raw)
			if c.metrics != nil {
				c.metrics.RecordRequest(method, endpoint, resp.StatusCode, time.Since(start))
			}
			return res, nil
		}

		if resp.StatusCode >= 500 && attempt < cc.retries {
			sleepContext(ctx, c.schedule.Delay(attempt))
			continue
		}

		c.breaker.Record(key)
		callErr = errorFromResponse(rawURL, resp, raw, requestID)
		break
	}

	c.finishCall(callErr, method, endpoint, start)
	return nil, callErr
}

// attempt performs a single network attempt under its own deadline.
func (c *Client) attempt(ctx context.Context, method, rawURL string, payload []byte, headers http.Header, timeout time.Duration) (*http.Response, []byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, rawURL, reader)
	if err != nil {
		return nil, nil, err
	}
	req.Header = headers.Clone()

	resp, err := c.executeMiddleware(req)
	if err != nil {
		return nil, nil, err
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, nil, err
	}

	return resp, raw, nil
}

func (c *Client) executeMiddleware(req *http.Request) (*http.Response, error) {
	if len(c.middleware) == 0 {
		return c.httpClient.Do(req)
	}

	current := RoundTripperFunc(c.httpClient.Do)

	for i := len(c.middleware) - 1; i >= 0; i-- {
		middleware := c.middleware[i]
		next := current
		current = RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return middleware(r, next)
		})
	}

	return current.RoundTrip(req)
}

// buildHeaders assembles the fixed identification headers, fetches a fresh
// token and merges caller overrides last. A provider failure downgrades the
// call to unauthenticated instead of failing it.
func (c *Client) buildHeaders(ctx context.Context, overrides http.Header, requestID string) http.Header {
	h := http.Header{}
	if c.apiKey != "" {
		h.Set(APIKeyHeader, c.apiKey)
	}
	h.Set("Content-Type", "application/json")
	if requestID != "" {
		h.Set(RequestIDHeader, requestID)
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		switch {
		case err != nil:
			if c.logger != nil {
				c.logger.Warn("Token provider unavailable, sending unauthenticated", "error", err.Error())
			}
			if c.metrics != nil {
				c.metrics.RecordAuthFallback()
			}
		case token != "":
			h.Set("Authorization", "Bearer "+token)
		}
	}

	for k, vs := range overrides {
		h[http.CanonicalHeaderKey(k)] = vs
	}

	return h
}

func (c *Client) finishCall(apiErr *APIError, method, endpoint string, start time.Time) {
	if c.metrics == nil || apiErr == nil {
		return
	}
	c.metrics.RecordError(apiErr.Code, method, endpoint)
	c.metrics.RecordRequest(method, endpoint, apiErr.Status, time.Since(start))
}

// sleepContext waits out a backoff delay but returns as soon as the caller's
// context is done, so cancellation during a long wait surfaces on the next
// loop check instead of after the full delay.
func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func cancelledError(rawURL, requestID string, cause error) *APIError {
	return &APIError{
		Code:      CodeCancelled,
		Message:   "request cancelled by caller",
		RequestID: requestID,
		URL:       rawURL,
		Cause:     cause,
	}
}

// IsValid reports whether configuration validation passed at construction.
func (c *Client) IsValid() bool {
	return c.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (c *Client) ValidationError() error {
	return c.validationError
}

// endpointLabel extracts a simplified host+path identity for metrics.
func endpointLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	var builder strings.Builder
	builder.WriteString(u.Host)

	if u.Path != "" && u.Path != "/" {
		builder.WriteString(u.Path)
	} else {
		builder.WriteByte('/')
	}

	return builder.String()
}
