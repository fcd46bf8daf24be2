package voltra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type testOrder struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
	Client string `json:"client"`
}

func TestIsJSONContentType(t *testing.T) {
	tests := []struct {
		ct   string
		want bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"Application/JSON", true},
		{"application/problem+json", true},
		{"text/plain", false},
		{"text/html; charset=utf-8", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isJSONContentType(tt.ct); got != tt.want {
			t.Errorf("isJSONContentType(%q) = %v, want %v", tt.ct, got, tt.want)
		}
	}
}

func TestEncodeBody(t *testing.T) {
	if b, err := encodeBody(nil); err != nil || b != nil {
		t.Errorf("encodeBody(nil) = %v, %v", b, err)
	}

	raw := []byte(`{"pre":"encoded"}`)
	if b, err := encodeBody(raw); err != nil || string(b) != string(raw) {
		t.Errorf("encodeBody([]byte) should pass through, got %s, %v", b, err)
	}

	b, err := encodeBody(map[string]int{"qty": 1})
	if err != nil {
		t.Fatalf("encodeBody(map) returned error: %v", err)
	}
	if string(b) != `{"qty":1}` {
		t.Errorf("encodeBody(map) = %s", b)
	}
}

func TestGetJSONTyped(t *testing.T) {
	want := testOrder{ID: 42, Status: "scheduled", Client: "ACME"}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeJSON)
		if err := json.NewEncoder(w).Encode(want); err != nil {
			t.Fatalf("Failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	client := New()
	var got testOrder
	if err := client.GetJSON(context.Background(), server.URL+"/orders/42", &got); err != nil {
		t.Fatalf("GetJSON() returned error: %v", err)
	}

	if got != want {
		t.Errorf("GetJSON() = %+v, want %+v", got, want)
	}
}

func TestPostJSONTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in testOrder
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		in.ID = 7
		w.Header().Set("Content-Type", contentTypeJSON)
		if err := json.NewEncoder(w).Encode(in); err != nil {
			t.Fatalf("Failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	client := New()
	var created testOrder
	err := client.PostJSON(context.Background(), server.URL+"/orders", testOrder{Status: "draft", Client: "ACME"}, &created)
	if err != nil {
		t.Fatalf("PostJSON() returned error: %v", err)
	}

	if created.ID != 7 || created.Status != "draft" || created.Client != "ACME" {
		t.Errorf("PostJSON() decoded %+v", created)
	}
}

func TestPostJSONNilOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New()
	if err := client.PostJSON(context.Background(), server.URL, map[string]int{"qty": 1}, nil); err != nil {
		t.Fatalf("PostJSON() with nil out returned error: %v", err)
	}
}

func TestErrorFromResponseFallbacks(t *testing.T) {
	resp := &http.Response{StatusCode: 400, Header: http.Header{"Content-Type": []string{"text/plain"}}}
	apiErr := errorFromResponse("/orders", resp, []byte("bad request body"), "")
	if apiErr.Code != CodeHTTP {
		t.Errorf("Expected fallback code, got %s", apiErr.Code)
	}
	if apiErr.Message != "bad request body" {
		t.Errorf("Expected body as message, got %q", apiErr.Message)
	}
	if apiErr.Details != "bad request body" {
		t.Errorf("Expected body as details, got %v", apiErr.Details)
	}

	empty := errorFromResponse("/orders", &http.Response{StatusCode: 404, Header: http.Header{}}, nil, "")
	if empty.Message != "Not Found" {
		t.Errorf("Expected status text fallback, got %q", empty.Message)
	}
}
