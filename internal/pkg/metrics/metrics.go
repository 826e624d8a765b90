// Package metrics provides Prometheus metric collection and exposure.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

// Collector gathers the Prometheus metrics for the API and the notifier.
type Collector struct {
	httpRequests     *prometheus.CounterVec
	httpDuration     prometheus.Histogram
	connectedClients prometheus.Gauge
	eventsBroadcast  *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nexusai_http_requests_total",
			Help: "HTTP requests by method, path and status code",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nexusai_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		connectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nexusai_ws_connected_clients",
			Help: "Currently connected WebSocket clients",
		}),
		eventsBroadcast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nexusai_ws_events_broadcast_total",
			Help: "Broadcast WebSocket events by event name",
		}, []string{"event"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.connectedClients,
		c.eventsBroadcast,
	)

	return c
}

// RecordHTTPRequest records one completed HTTP request.
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.httpDuration.Observe(duration.Seconds())
}

// ClientConnected increments the connected clients gauge.
func (c *Collector) ClientConnected() {
	c.connectedClients.Inc()
}

// ClientDisconnected decrements the connected clients gauge.
func (c *Collector) ClientDisconnected() {
	c.connectedClients.Dec()
}

// RecordEventBroadcast records one broadcast notifier event.
func (c *Collector) RecordEventBroadcast(event string) {
	c.eventsBroadcast.WithLabelValues(event).Inc()
}

// Middleware returns a gin middleware recording request counts and latency.
// The route template is used as the path label to keep cardinality bounded.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		c.RecordHTTPRequest(ctx.Request.Method, path, ctx.Writer.Status(), time.Since(start))
	}
}

// HTTPHandler returns the /metrics endpoint handler for the given registry.
func HTTPHandler(reg *prometheus.Registry) gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}
