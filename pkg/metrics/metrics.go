package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "retail_admin"

// Collector owns a private Prometheus registry and the service metric vectors.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	BackendCallsTotal   *prometheus.CounterVec
	BackendCallDuration *prometheus.HistogramVec
	ExportsTotal        *prometheus.CounterVec
}

// New creates a Collector with its own registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of page and API requests served",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of served requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BackendCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_calls_total",
			Help:      "Calls issued to the backend REST API by outcome category",
		}, []string{"method", "category"}),
		BackendCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_call_duration_seconds",
			Help:      "Latency of backend REST API calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		ExportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_exports_total",
			Help:      "Spreadsheet exports by table and outcome",
		}, []string{"table", "outcome"}),
	}
	reg.MustRegister(
		c.HTTPRequestsTotal,
		c.HTTPRequestDuration,
		c.BackendCallsTotal,
		c.BackendCallDuration,
		c.ExportsTotal,
	)
	return c
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRequest records one served request.
func (c *Collector) ObserveRequest(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveBackendCall records one backend call and its outcome category.
func (c *Collector) ObserveBackendCall(method, category string, d time.Duration) {
	if c == nil {
		return
	}
	c.BackendCallsTotal.WithLabelValues(method, category).Inc()
	c.BackendCallDuration.WithLabelValues(method).Observe(d.Seconds())
}

// ObserveExport records a spreadsheet export attempt.
func (c *Collector) ObserveExport(table, outcome string) {
	if c == nil {
		return
	}
	c.ExportsTotal.WithLabelValues(table, outcome).Inc()
}
