package voltra

import (
	"net/url"
	"sync"
	"time"
)

const (
	// breakerThreshold is the failure count at which a path's circuit opens.
	breakerThreshold = 5
	// breakerDecay is how long a failure window keeps counting toward a trip.
	breakerDecay = 60 * time.Second
)

// FailureWindow tracks recent failures for one request path.
type FailureWindow struct {
	Count       int
	LastFailure time.Time
}

// Tripped reports whether the window holds enough recent failures to open
// the circuit at the given instant. Windows older than the decay interval
// stop counting regardless of their failure count.
func (w FailureWindow) Tripped(now time.Time) bool {
	return w.Count >= breakerThreshold && now.Sub(w.LastFailure) < breakerDecay
}

// BreakerStore holds failure windows keyed by request path. Implementations
// must be safe for concurrent use. The in-memory default suits a single
// process; a shared store can be injected without touching call sites.
type BreakerStore interface {
	// Window returns the failure window for a key, if one exists.
	Window(key string) (FailureWindow, bool)
	// Record adds one failure to the key's window, refreshing its timestamp.
	Record(key string)
	// Reset discards the key's window.
	Reset(key string)
}

// MemoryBreakerStore is the default in-process BreakerStore.
type MemoryBreakerStore struct {
	mu      sync.Mutex
	windows map[string]FailureWindow
	now     func() time.Time
}

// NewMemoryBreakerStore creates an empty in-memory store.
func NewMemoryBreakerStore() *MemoryBreakerStore {
	return &MemoryBreakerStore{
		windows: make(map[string]FailureWindow),
		now:     time.Now,
	}
}

// Window returns the failure window for a key, if one exists.
func (s *MemoryBreakerStore) Window(key string) (FailureWindow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	return w, ok
}

// Record adds one failure to the key's window, refreshing its timestamp.
func (s *MemoryBreakerStore) Record(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.windows[key]
	w.Count++
	w.LastFailure = s.now()
	s.windows[key] = w
}

// Reset discards the key's window.
func (s *MemoryBreakerStore) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.windows, key)
}

// breakerKey derives the breaker identity from a URL: the path component
// only, so host and query string variations share one window.
func breakerKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	path := u.EscapedPath()
	if path == "" {
		return "/"
	}
	return path
}
