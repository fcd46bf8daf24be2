package voltra

import "context"

// TokenProvider supplies the bearer token attached to outgoing requests.
// The client asks for a fresh token on every call and never caches the
// result. A provider error degrades the call to an unauthenticated request
// rather than failing it.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenProviderFunc adapts a function to the TokenProvider interface.
type TokenProviderFunc func(ctx context.Context) (string, error)

func (f TokenProviderFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken returns a provider that always yields the same token. Useful
// for service-to-service credentials and tests.
func StaticToken(token string) TokenProvider {
	return TokenProviderFunc(func(context.Context) (string, error) {
		return token, nil
	})
}
