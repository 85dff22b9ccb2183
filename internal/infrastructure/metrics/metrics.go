package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors and the registry they are registered on
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	FeedFetchesTotal     *prometheus.CounterVec
	FeedFetchDuration    prometheus.Histogram
	RefreshSkippedTotal  prometheus.Counter
	SnapshotPublishedAt  prometheus.Gauge
	ConversionsTotal     *prometheus.CounterVec
	CurrencyLookupsTotal *prometheus.CounterVec
}

// NewMetrics registers all collectors on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),

		FeedFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feed_fetches_total",
				Help: "Upstream feed fetch attempts by result",
			},
			[]string{"result"},
		),

		FeedFetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "feed_fetch_duration_seconds",
				Help:    "Duration of upstream feed fetches",
				Buckets: prometheus.DefBuckets,
			},
		),

		RefreshSkippedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "feed_refresh_skipped_total",
				Help: "Stale snapshot refreshes suppressed by the minimum fetch interval",
			},
		),

		SnapshotPublishedAt: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "feed_snapshot_published_timestamp_seconds",
				Help: "Publication date of the cached snapshot as a unix timestamp",
			},
		),

		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conversions_total",
				Help: "Currency conversions by result",
			},
			[]string{"result"},
		),

		CurrencyLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currency_lookups_total",
				Help: "Currency registry lookups by result",
			},
			[]string{"result"},
		),
	}
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
