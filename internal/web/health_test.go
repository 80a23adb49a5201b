package web

import (
	"net/http/httptest"
	"testing"
)

func TestHealthEndpoints(t *testing.T) {
	server := NewServer("0")

	for _, path := range []string{"/", "/healthz"} {
		req := httptest.NewRequest("GET", path, nil)
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, req)

		if rec.Code != 200 {
			t.Errorf("GET %s: expected 200, got %d", path, rec.Code)
		}
		if rec.Body.String() != "OK" {
			t.Errorf("GET %s: expected body OK, got %q", path, rec.Body.String())
		}
	}
}

func TestHealthUnknownPath(t *testing.T) {
	server := NewServer("0")

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	if rec.Code != 404 {
		t.Errorf("expected 404 for an unknown path, got %d", rec.Code)
	}
}
