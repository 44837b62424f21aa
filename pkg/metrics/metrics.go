package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records operational metrics of the router and the HTTP API.
type Collector interface {
	RecordSearch(kind, navigator string, duration time.Duration, paths int)
	RecordGraph(points, segments, airports int)
	RecordRequest(route string, status int, duration time.Duration)
}

// NoopCollector discards all metrics
type NoopCollector struct{}

func (NoopCollector) RecordSearch(string, string, time.Duration, int) {}
func (NoopCollector) RecordGraph(int, int, int)                       {}
func (NoopCollector) RecordRequest(string, int, time.Duration)        {}

// PrometheusCollector exposes the metrics on its own registry
type PrometheusCollector struct {
	registry *prometheus.Registry

	searchLatency  *prometheus.HistogramVec
	searches       *prometheus.CounterVec
	pathsFound     *prometheus.HistogramVec
	graphSize      *prometheus.GaugeVec
	requestLatency *prometheus.HistogramVec
	requests       *prometheus.CounterVec
}

func NewPrometheusCollector() *PrometheusCollector {
	c := &PrometheusCollector{
		registry: prometheus.NewRegistry(),
		searchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "airway_search_latency_seconds",
			Help:    "Latency of route searches",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind", "navigator"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "airway_searches_total",
			Help: "Total route searches",
		}, []string{"kind", "navigator", "status"}),
		pathsFound: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "airway_search_paths",
			Help:    "Number of paths returned per search",
			Buckets: []float64{0, 1, 2, 3, 5, 8},
		}, []string{"kind"}),
		graphSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "airway_graph_size",
			Help: "Size of the loaded graph",
		}, []string{"element"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "airway_http_request_latency_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "airway_http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"route", "code"}),
	}

	c.registry.MustRegister(c.searchLatency)
	c.registry.MustRegister(c.searches)
	c.registry.MustRegister(c.pathsFound)
	c.registry.MustRegister(c.graphSize)
	c.registry.MustRegister(c.requestLatency)
	c.registry.MustRegister(c.requests)
	return c
}

func (c *PrometheusCollector) RecordSearch(kind, navigator string, duration time.Duration, paths int) {
	status := "found"
	if paths == 0 {
		status = "empty"
	}
	c.searchLatency.WithLabelValues(kind, navigator).Observe(duration.Seconds())
	c.searches.WithLabelValues(kind, navigator, status).Inc()
	c.pathsFound.WithLabelValues(kind).Observe(float64(paths))
}

func (c *PrometheusCollector) RecordGraph(points, segments, airports int) {
	c.graphSize.WithLabelValues("points").Set(float64(points))
	c.graphSize.WithLabelValues("segments").Set(float64(segments))
	c.graphSize.WithLabelValues("airports").Set(float64(airports))
}

func (c *PrometheusCollector) RecordRequest(route string, status int, duration time.Duration) {
	c.requestLatency.WithLabelValues(route).Observe(duration.Seconds())
	c.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// Handler serves the collected metrics in the Prometheus text format
func (c *PrometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}
