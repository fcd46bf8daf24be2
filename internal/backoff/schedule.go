// Package backoff holds the retry delay schedule used by the client.
package backoff

import "time"

// Schedule is a fixed table of delays indexed by attempt number. Attempts
// beyond the last entry reuse it, so a short table still bounds every retry.
type Schedule []time.Duration

// Default is the platform-wide schedule: first retry after 300ms, second
// after 900ms, third after 2s.
func Default() Schedule {
	return Schedule{300 * time.Millisecond, 900 * time.Millisecond, 2 * time.Second}
}

// Delay returns the wait before retrying after the given zero-based attempt.
// An empty schedule yields no delay.
func (s Schedule) Delay(attempt int) time.Duration {
	if len(s) == 0 {
		return 0
	}
	if attempt < 0 {
		attempt = 0
	}
	if attempt >= len(s) {
		attempt = len(s) - 1
	}
	return s[attempt]
}

// Valid reports whether every entry is positive and the schedule is non-empty.
func (s Schedule) Valid() bool {
	if len(s) == 0 {
		return false
	}
	for _, d := range s {
		if d <= 0 {
			return false
		}
	}
	return true
}
