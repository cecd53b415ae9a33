package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/medkoval/health-companion/internal/observability/metrics"
)

const requestIDHeader = "X-Request-Id"

type requestIDContextKey struct{}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(requestIDContextKey{}).(string)
	return requestID
}

// requestIDMiddleware stamps every request with an id and echoes it back in
// the response. A client-supplied id is kept only when it is a well-formed
// UUID; anything else is replaced so log correlation keys stay uniform.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), requestIDContextKey{}, requestID)
		r = r.WithContext(ctx)
		w.Header().Set(requestIDHeader, requestID)

		next.ServeHTTP(w, r)
	})
}

// telemetryMiddleware writes the access log line and feeds the request
// counters from a single response recorder. A nil metrics value keeps the
// access log and skips the counters.
func telemetryMiddleware(m *metrics.HTTPServerMetrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

		if m != nil {
			done := m.TrackInFlight()
			defer done()
		}

		next.ServeHTTP(recorder, r)

		duration := time.Since(start)
		if m != nil {
			m.ObserveRequest(serviceName, r.Method, r.URL.Path, recorder.status, duration)
		}

		attrs := []any{
			"request_id", requestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"bytes", recorder.bytes,
			"duration_ms", float64(duration.Microseconds()) / 1000.0,
			"remote_addr", r.RemoteAddr,
		}
		switch {
		case recorder.status >= 500:
			slog.Error("http_request", attrs...)
		case recorder.status >= 400:
			slog.Warn("http_request", attrs...)
		default:
			slog.Info("http_request", attrs...)
		}
	})
}

// responseRecorder captures status and body size. Every response here is a
// buffered JSON document, so no streaming or hijacking surface is needed.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *responseRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}
