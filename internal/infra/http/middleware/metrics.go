package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
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

	analysesTriggered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_triggered_total",
			Help: "Total number of analysis workflow triggers",
		},
		[]string{"result"},
	)

	analysesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_received_total",
			Help: "Total number of analysis results received from the workflow",
		},
		[]string{"status"},
	)

	rankllmRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rankllm_requests_total",
			Help: "Total number of RankLLM rerank requests",
		},
		[]string{"result"},
	)

	waitlistSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_submissions_total",
			Help: "Total number of waitlist submissions",
		},
		[]string{"result"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)

	dependencyUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_up",
			Help: "Whether an external dependency answered its last health check",
		},
		[]string{"dependency"},
	)
)

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// routePattern evita cardinalidade alta: /organizations/{slug}/dashboard em vez do slug real.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func RecordAnalysisTriggered(result string) {
	analysesTriggered.WithLabelValues(result).Inc()
}

func RecordAnalysisReceived(status string) {
	analysesReceived.WithLabelValues(status).Inc()
}

func RecordRankLLMRequest(result string) {
	rankllmRequests.WithLabelValues(result).Inc()
}

func RecordWaitlistSubmission(result string) {
	waitlistSubmissions.WithLabelValues(result).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}

func SetDependencyHealth(dependency string, healthy bool) {
	v := 0.0
	if healthy {
		v = 1
	}
	dependencyUp.WithLabelValues(dependency).Set(v)
}
