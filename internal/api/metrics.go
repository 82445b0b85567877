package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"todo-tracker/internal/service"
)

// Metrics records request counts and latencies per route.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	users    prometheus.Gauge
	todos    *prometheus.GaugeVec
}

// NewMetrics registers the HTTP collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "todo_tracker_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "todo_tracker_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		users: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "todo_tracker_users",
			Help: "Registered accounts.",
		}),
		todos: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "todo_tracker_todos",
			Help: "Stored todos by status.",
		}, []string{"status"}),
	}
	m.registry.MustRegister(m.requests, m.duration, m.users, m.todos)
	return m
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveBoard sets the totals gauges from a stats snapshot.
func (m *Metrics) ObserveBoard(stats service.BoardStats) {
	m.users.Set(float64(stats.Users))
	for status, n := range stats.Todos {
		m.todos.WithLabelValues(string(status)).Set(float64(n))
	}
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
