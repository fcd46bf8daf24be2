// Package voltra is the resilient HTTP client used by chargeops field-service
// tooling to talk to the hosted platform API. It wraps net/http with:
//
//   - Bounded retries on transient failures (5xx, network errors, timeouts)
//     following a fixed backoff schedule
//   - A per-path circuit breaker backed by a pluggable failure-window store
//   - Per-attempt timeouts independent of the caller's context deadline
//   - Fresh bearer-token injection per call via a TokenProvider, degrading to
//     unauthenticated requests when the provider is unavailable
//   - Uniform APIError results — no raw transport error ever reaches a caller
//   - Optional client-side rate limiting, middleware, Prometheus metrics and
//     structured debug logging
//
// Design goals:
//   - Small surface area – functional options configure everything
//   - Safe concurrent use of a single *Client instance
//   - Extensibility via user supplied middleware & pluggable store / metrics
//
// Typical usage:
//
//	client := voltra.New(
//	    voltra.WithAPIKey(os.Getenv("PLATFORM_KEY")),
//	    voltra.WithTokenProvider(sessions),
//	    voltra.WithMaxRetries(3),
//	    voltra.WithTimeout(15*time.Second),
//	)
//	res, err := client.Get(ctx, voltra.Endpoint(base, "orders", nil))
//
// Failures carry an *APIError: callers branch on Status and Code rather than
// unwrapping transport errors. Status 0 means the failure was local (network
// error, timeout, cancellation); a tripped breaker reports a synthetic 503
// with code CodeCircuitOpen and performs no network call.
package voltra
