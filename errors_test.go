package voltra

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAPIErrorError(t *testing.T) {
	err := &APIError{Status: 404, Code: "NotFound", Message: "no such order"}
	got := err.Error()
	if !strings.Contains(got, "NotFound") || !strings.Contains(got, "no such order") || !strings.Contains(got, "404") {
		t.Errorf("Error() missing fields: %q", got)
	}

	withID := &APIError{Code: CodeNetwork, Message: "connection refused", RequestID: "req-1"}
	if !strings.Contains(withID.Error(), "[req-1]") {
		t.Errorf("Error() should include request ID: %q", withID.Error())
	}

	var nilErr *APIError
	if nilErr.Error() != "<nil>" {
		t.Errorf("nil Error() = %q", nilErr.Error())
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &APIError{Code: CodeNetwork, Message: "Network error", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}

	var nilErr *APIError
	if nilErr.Unwrap() != nil {
		t.Error("nil Unwrap() should be nil")
	}
}

func TestAPIErrorIsComparesCodes(t *testing.T) {
	err := fmt.Errorf("call failed: %w", &APIError{Status: 503, Code: CodeCircuitOpen, Message: "circuit open"})

	if !errors.Is(err, &APIError{Code: CodeCircuitOpen}) {
		t.Error("Expected match on same code")
	}
	if errors.Is(err, &APIError{Code: CodeCancelled}) {
		t.Error("Expected no match on a different code")
	}
	if errors.Is(err, errors.New("other")) {
		t.Error("Expected no match against a plain error")
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"network", &APIError{Code: CodeNetwork}, true},
		{"circuit open", &APIError{Status: 503, Code: CodeCircuitOpen}, true},
		{"rate limited", &APIError{Code: CodeRateLimited}, true},
		{"cancelled", &APIError{Code: CodeCancelled}, false},
		{"server error", &APIError{Status: 502, Code: CodeHTTP}, true},
		{"client error", &APIError{Status: 404, Code: "NotFound"}, false},
		{"too many requests", &APIError{Status: 429, Code: CodeHTTP}, true},
		{"wrapped", fmt.Errorf("outer: %w", &APIError{Status: 500, Code: CodeHTTP}), true},
	}

	for _, tt := range tests {
		if got := IsTransient(tt.err); got != tt.want {
			t.Errorf("%s: IsTransient() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDebugInfo(t *testing.T) {
	err := &APIError{
		Status:    500,
		Code:      CodeHTTP,
		Message:   "boom",
		RequestID: "req-9",
		URL:       "https://api.example.com/orders",
		Details:   map[string]any{"hint": "try later"},
	}

	info := err.DebugInfo()
	for _, want := range []string{"HTTPError", "boom", "500", "req-9", "https://api.example.com/orders", "try later"} {
		if !strings.Contains(info, want) {
			t.Errorf("DebugInfo() missing %q:\n%s", want, info)
		}
	}

	var nilErr *APIError
	if nilErr.DebugInfo() != "Error: <nil>" {
		t.Errorf("nil DebugInfo() = %q", nilErr.DebugInfo())
	}
}
