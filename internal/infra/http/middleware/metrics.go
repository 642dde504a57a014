package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	outreachSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_messages_sent_total",
			Help: "Total messages sent, by outreach type",
		},
		[]string{"type"},
	)

	outreachFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_send_failures_total",
			Help: "Total failed send attempts, by outreach type",
		},
		[]string{"type"},
	)

	repliesRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outreach_replies_recorded_total",
			Help: "Total prospect replies ingested",
		},
	)

	capExhausted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outreach_daily_cap_exhausted_total",
			Help: "Connection runs that found no cap headroom left",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordOutreachSent(outreachType string, count int) {
	outreachSent.WithLabelValues(outreachType).Add(float64(count))
}

func RecordSendFailures(outreachType string, count int) {
	outreachFailures.WithLabelValues(outreachType).Add(float64(count))
}

func RecordReplyIngested() {
	repliesRecorded.Inc()
}

func RecordCapExhausted() {
	capExhausted.Inc()
}
