package httpadapter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestIDMiddlewareMintsAndEchoes(t *testing.T) {
	var seen string
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	echoed := res.Header().Get(requestIDHeader)
	if echoed == "" || echoed != seen {
		t.Fatalf("request id not propagated: header=%q context=%q", echoed, seen)
	}
	if _, err := uuid.Parse(echoed); err != nil {
		t.Fatalf("minted id is not a uuid: %q", echoed)
	}
}

func TestRequestIDMiddlewareKeepsWellFormedClientID(t *testing.T) {
	clientID := uuid.NewString()
	handler := requestIDMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, clientID)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if got := res.Header().Get(requestIDHeader); got != clientID {
		t.Fatalf("well-formed client id must be kept, got %q", got)
	}
}

func TestRequestIDMiddlewareReplacesMalformedClientID(t *testing.T) {
	handler := requestIDMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "not-a-uuid\n")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	got := res.Header().Get(requestIDHeader)
	if got == "not-a-uuid\n" {
		t.Fatalf("malformed client id must be replaced")
	}
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("replacement id is not a uuid: %q", got)
	}
}

func TestTelemetryMiddlewareRecordsStatusAndBytes(t *testing.T) {
	var recorder *responseRecorder
	handler := telemetryMiddleware(nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder = w.(*responseRecorder)
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))

	if res.Code != http.StatusTeapot {
		t.Fatalf("status not forwarded, got %d", res.Code)
	}
	if recorder.status != http.StatusTeapot {
		t.Fatalf("recorder missed the status, got %d", recorder.status)
	}
	if recorder.bytes != len("short and stout") {
		t.Fatalf("recorder missed the body size, got %d", recorder.bytes)
	}
}
