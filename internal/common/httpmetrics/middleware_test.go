package httpmetrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCollectorWrap_PassesStatusThrough(t *testing.T) {
	handler := New().Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/login", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("expected 418 passed through, got %d", rec.Code)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/users/", "/api/v1/users/"},
		{"/api/v1/users/0b746206-4867-49cc-9d8c-f5d2f0c5a2a3", "/api/v1/users/:id"},
		{"/api/v1/login", "/api/v1/login"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		if got := NormalizePath(tt.path); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
