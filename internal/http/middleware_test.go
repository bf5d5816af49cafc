package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSessionMiddleware_MintsSessionForNewVisitor(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = getSessionID(r.Context())
	})

	recorder := httptest.NewRecorder()
	SessionMiddleware(next).ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))

	if seen == "" {
		t.Fatal("expected a session id to be minted")
	}
	if got := recorder.Header().Get("X-Session-ID"); got != seen {
		t.Errorf("expected response header to echo session id %q, got %q", seen, got)
	}
}

func TestSessionMiddleware_KeepsExistingSession(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = getSessionID(r.Context())
	})

	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("X-Session-ID", "sess-42")

	SessionMiddleware(next).ServeHTTP(httptest.NewRecorder(), request)

	if seen != "sess-42" {
		t.Errorf("expected session 'sess-42', got %q", seen)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	recorder := httptest.NewRecorder()
	RequestIDMiddleware(next).ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))

	if recorder.Header().Get("X-Request-ID") == "" {
		t.Error("expected a request id header")
	}
}
