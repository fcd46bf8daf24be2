package voltra

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger is the minimal structured logging interface the client emits
// through. Any logger taking alternating key/value pairs can adapt to it.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// slogLogger adapts log/slog to the Logger interface.
type slogLogger struct {
	l *slog.Logger
}

// NewSimpleLogger returns a Logger writing text lines to stderr.
func NewSimpleLogger() Logger {
	return &slogLogger{l: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))}
}

// NewSlogLogger wraps an existing *slog.Logger.
func NewSlogLogger(l *slog.Logger) Logger {
	return &slogLogger{l: l}
}

func (s *slogLogger) Debug(msg string, keysAndValues ...any) { s.l.Debug(msg, keysAndValues...) }
func (s *slogLogger) Info(msg string, keysAndValues ...any)  { s.l.Info(msg, keysAndValues...) }
func (s *slogLogger) Warn(msg string, keysAndValues ...any)  { s.l.Warn(msg, keysAndValues...) }
func (s *slogLogger) Error(msg string, keysAndValues ...any) { s.l.Error(msg, keysAndValues...) }

// DebugConfig controls per-request debug logging.
type DebugConfig struct {
	Enabled     bool
	LogRequests bool
	LogRetries  bool
	LogBreaker  bool
	// RequestIDGen produces the correlation ID attached to outgoing
	// requests as X-Request-Id when debugging is enabled.
	RequestIDGen func() string
}

// DefaultDebugConfig returns a config with all request logging enabled and
// UUID request IDs. Debugging itself stays off until WithDebug is used.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		Enabled:      false,
		LogRequests:  true,
		LogRetries:   true,
		LogBreaker:   true,
		RequestIDGen: uuid.NewString,
	}
}
