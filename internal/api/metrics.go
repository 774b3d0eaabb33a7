package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the collectors exposed on /metrics. Each server owns its
// registry so several servers can coexist in one process.
type Metrics struct {
	Registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	dueEvaluations  prometheus.Counter
	marks           *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "habitual",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"method", "route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "habitual",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dueEvaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "habitual",
			Name:      "due_evaluations_total",
			Help:      "Habits evaluated for due-ness.",
		}),
		marks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "habitual",
			Name:      "entries_recorded_total",
			Help:      "Habit entries recorded through the API, by outcome.",
		}, []string{"completed"}),
	}
	reg.MustRegister(
		m.requests,
		m.requestDuration,
		m.dueEvaluations,
		m.marks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// instrument records request counts and latency under the matched chi
// route pattern, not the raw path.
func (m *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(code)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) observeDue(n int) {
	if m == nil {
		return
	}
	m.dueEvaluations.Add(float64(n))
}

func (m *Metrics) observeMark(completed bool) {
	if m == nil {
		return
	}
	m.marks.WithLabelValues(strconv.FormatBool(completed)).Inc()
}
