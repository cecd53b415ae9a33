package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	analysesTotal    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	chatTurnsTotal   *prometheus.CounterVec
	chatDuration     *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hcc",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hcc",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hcc",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	analysesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hcc",
			Subsystem: "analysis",
			Name:      "documents_total",
			Help:      "Total completed document analyses by resulting category.",
		},
		[]string{"service", "category"},
	)
	analysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hcc",
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Classify+explain pipeline duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	chatTurnsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hcc",
			Subsystem: "chat",
			Name:      "turns_total",
			Help:      "Total completed chat turns by attachment kind.",
		},
		[]string{"service", "kind"},
	)
	chatDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hcc",
			Subsystem: "chat",
			Name:      "duration_seconds",
			Help:      "Chat turn duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "kind"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		analysesTotal,
		analysisDuration,
		chatTurnsTotal,
		chatDuration,
	)

	return &HTTPServerMetrics{
		registry:         registry,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		requestInFlight:  requestInFlight,
		analysesTotal:    analysesTotal,
		analysisDuration: analysisDuration,
		chatTurnsTotal:   chatTurnsTotal,
		chatDuration:     chatDuration,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// TrackInFlight bumps the in-flight gauge and returns the matching decrement.
func (m *HTTPServerMetrics) TrackInFlight() func() {
	m.requestInFlight.Inc()
	return m.requestInFlight.Dec
}

// ObserveRequest records one finished HTTP request. The raw path is collapsed
// to its route shape so session ids do not explode the label space.
func (m *HTTPServerMetrics) ObserveRequest(service, method, rawPath string, status int, duration time.Duration) {
	path := normalizePath(rawPath)
	m.requestTotal.WithLabelValues(service, method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(service, method, path).Observe(duration.Seconds())
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/v1/sessions/") {
		return path
	}
	rest := strings.TrimPrefix(path, "/v1/sessions/")
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		return "/v1/sessions/{session_id}/" + rest[idx+1:]
	}
	return "/v1/sessions/{session_id}"
}

func (m *HTTPServerMetrics) RecordAnalysis(service, category string, duration time.Duration) {
	if category == "" {
		category = "unknown"
	}
	m.analysesTotal.WithLabelValues(service, category).Inc()
	m.analysisDuration.WithLabelValues(service).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordChatTurn(service, kind string, duration time.Duration) {
	if kind == "" {
		kind = "plain"
	}
	m.chatTurnsTotal.WithLabelValues(service, kind).Inc()
	m.chatDuration.WithLabelValues(service, kind).Observe(duration.Seconds())
}
