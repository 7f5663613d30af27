// Package metrics exposes Prometheus metrics for the leaderboard service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	claimsTotal         prometheus.Counter
	pointsAwarded       prometheus.Counter
}

// New builds a Metrics with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "claimboard",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "claimboard",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		claimsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "claimboard",
			Name:      "claims_total",
			Help:      "Successful point claims.",
		}),
		pointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "claimboard",
			Name:      "points_awarded_total",
			Help:      "Total points handed out by claims.",
		}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpRequestDuration,
		m.claimsTotal,
		m.pointsAwarded,
	)
	return m
}

// Middleware records request counts and latency per route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// ObserveClaim records one successful claim and its awarded points.
func (m *Metrics) ObserveClaim(points int) {
	m.claimsTotal.Inc()
	m.pointsAwarded.Add(float64(points))
}

// Handler serves the scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
