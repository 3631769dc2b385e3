package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the prometheus registry and the application collectors
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	ContentMutations *prometheus.CounterVec
	ImageUploads     *prometheus.CounterVec
}

// New creates and registers every collector
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ContentMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "content_mutations_total",
				Help: "Records created, updated or deleted per entity type",
			},
			[]string{"type", "op"},
		),
		ImageUploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "image_uploads_total",
				Help: "Images stored per upload folder",
			},
			[]string{"folder"},
		),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.ContentMutations,
		m.ImageUploads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler exposes the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordMutation counts one content change. Safe on a nil receiver.
func (m *Metrics) RecordMutation(entityType, op string) {
	if m == nil {
		return
	}
	m.ContentMutations.WithLabelValues(entityType, op).Inc()
}

// RecordUpload counts one stored image. Safe on a nil receiver.
func (m *Metrics) RecordUpload(folder string) {
	if m == nil {
		return
	}
	m.ImageUploads.WithLabelValues(folder).Inc()
}
