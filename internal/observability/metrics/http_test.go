package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *HTTPServerMetrics) string {
	t.Helper()
	res := httptest.NewRecorder()
	m.Handler().ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read scrape body: %v", err)
	}
	return string(body)
}

func TestObserveRequestNormalizesSessionPaths(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	m.ObserveRequest("api", http.MethodPost, "/v1/sessions/0a1b2c3d/chat", http.StatusOK, 5*time.Millisecond)

	body := scrape(t, m)
	if !strings.Contains(body, `path="/v1/sessions/{session_id}/chat"`) {
		t.Fatalf("session id must be collapsed in the path label:\n%s", body)
	}
	if strings.Contains(body, "0a1b2c3d") {
		t.Fatalf("raw session id leaked into a label:\n%s", body)
	}
}

func TestTrackInFlightBalances(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	done := m.TrackInFlight()
	if body := scrape(t, m); !strings.Contains(body, "hcc_http_in_flight_requests 1") {
		t.Fatalf("in-flight gauge not incremented:\n%s", body)
	}
	done()
	if body := scrape(t, m); !strings.Contains(body, "hcc_http_in_flight_requests 0") {
		t.Fatalf("in-flight gauge not decremented:\n%s", body)
	}
}

func TestRecordAnalysisCountsByCategory(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	m.RecordAnalysis("api", "PRESCRIPTION", 10*time.Millisecond)
	m.RecordAnalysis("api", "", 10*time.Millisecond)

	body := scrape(t, m)
	if !strings.Contains(body, `category="PRESCRIPTION"`) {
		t.Fatalf("category label missing:\n%s", body)
	}
	if !strings.Contains(body, `category="unknown"`) {
		t.Fatalf("empty category must be counted as unknown:\n%s", body)
	}
}
