// Package telemetry expone las métricas Prometheus del gateway.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Nombres de métricas.
const (
	MetricCacheRequestsTotal      = "inventory_web_cache_requests_total"
	MetricCacheInvalidationsTotal = "inventory_web_cache_invalidations_total"
	MetricUpstreamRequestsTotal   = "inventory_web_upstream_requests_total"
	MetricUpstreamDurationSeconds = "inventory_web_upstream_request_duration_seconds"
)

// Metrics registro propio (no el global) con los colectores del gateway.
// Implementa query.Recorder y api.Recorder.
type Metrics struct {
	registry         *prometheus.Registry
	cacheRequests    *prometheus.CounterVec
	invalidations    *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// New crea el registro e inscribe los colectores, incluidos los de proceso y runtime.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricCacheRequestsTotal,
			Help: "Lecturas de la caché por recurso y resultado (hit, miss, shared).",
		}, []string{"resource", "result"}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricCacheInvalidationsTotal,
			Help: "Invalidaciones de la caché por recurso.",
		}, []string{"resource"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricUpstreamRequestsTotal,
			Help: "Llamadas al backend por método y status (0 = fallo de red).",
		}, []string{"method", "status"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricUpstreamDurationSeconds,
			Help:    "Duración de las llamadas al backend.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
	m.registry.MustRegister(
		m.cacheRequests,
		m.invalidations,
		m.upstreamRequests,
		m.upstreamDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// CacheRequest cuenta una lectura de la caché.
func (m *Metrics) CacheRequest(resource, result string) {
	m.cacheRequests.WithLabelValues(resource, result).Inc()
}

// CacheInvalidation cuenta una invalidación.
func (m *Metrics) CacheInvalidation(resource string) {
	m.invalidations.WithLabelValues(resource).Inc()
}

// UpstreamRequest registra una llamada al backend.
func (m *Metrics) UpstreamRequest(method string, status int, d time.Duration) {
	m.upstreamRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.upstreamDuration.WithLabelValues(method).Observe(d.Seconds())
}

// Registry devuelve el registro subyacente.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler handler HTTP de exposición.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
