// Package observability holds the prometheus registry and the optional
// OpenTelemetry tracer provider.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aussiebroadwan/qrhub/pkg/httpx"
)

// Metrics owns a private registry so tests can build as many as they like.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	scans    prometheus.Counter
	mails    *prometheus.CounterVec
	conflict *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qrhub",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "qrhub",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		scans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "qrhub",
			Name:      "scans_total",
			Help:      "QR scans recorded through /track.",
		}),
		mails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qrhub",
			Name:      "mails_total",
			Help:      "Code mails by kind and outcome.",
		}, []string{"kind", "outcome"}),
		conflict: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qrhub",
			Name:      "store_conflicts_total",
			Help:      "Conditional writes rejected on a stale etag.",
		}, []string{"container"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.latency, m.scans, m.mails, m.conflict,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{DisableCompression: true})
}

// Route instruments one mux pattern. It is applied per route because the
// matched pattern is not visible to middleware wrapping the mux.
func (m *Metrics) Route(pattern string) httpx.Middleware {
	if m == nil {
		return nil
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			m.requests.WithLabelValues(pattern, strconv.Itoa(rec.status)).Inc()
			m.latency.WithLabelValues(pattern).Observe(time.Since(start).Seconds())
		})
	}
}

func (m *Metrics) ScanRecorded() {
	if m == nil {
		return
	}
	m.scans.Inc()
}

func (m *Metrics) MailSent(kind string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.mails.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) Conflict(container string) {
	if m == nil {
		return
	}
	m.conflict.WithLabelValues(container).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }
