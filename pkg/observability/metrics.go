package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LoaderMetrics holds the plugin loader's Prometheus metrics
type LoaderMetrics struct {
	PluginsLoaded     *prometheus.GaugeVec
	PluginsSkipped    *prometheus.CounterVec
	PluginCollisions  *prometheus.CounterVec
	ScanDuration      prometheus.Histogram
	ScanFailuresTotal prometheus.Counter
}

// NewLoaderMetrics creates and registers the loader metrics
func NewLoaderMetrics(registry prometheus.Registerer) *LoaderMetrics {
	m := &LoaderMetrics{
		PluginsLoaded: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "switchboard_plugins_loaded",
				Help: "Number of plugins in the current registry snapshot",
			},
			[]string{"kind"},
		),
		PluginsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "switchboard_plugins_skipped_total",
				Help: "Total number of candidate plugin directories that failed validation",
			},
			[]string{"kind", "reason"},
		),
		PluginCollisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "switchboard_plugin_collisions_total",
				Help: "Total number of plugins replaced by a later plugin with the same name",
			},
			[]string{"kind"},
		),
		ScanDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "switchboard_plugin_scan_duration_seconds",
				Help:    "Duration of plugin root scans in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
		),
		ScanFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "switchboard_plugin_scan_failures_total",
				Help: "Total number of scans aborted because the plugin root could not be listed",
			},
		),
	}

	registry.MustRegister(
		m.PluginsLoaded,
		m.PluginsSkipped,
		m.PluginCollisions,
		m.ScanDuration,
		m.ScanFailuresTotal,
	)

	return m
}

// ObserveScan records the duration of a completed scan
func (m *LoaderMetrics) ObserveScan(d time.Duration) {
	m.ScanDuration.Observe(d.Seconds())
}

// ScanFailed counts an aborted scan
func (m *LoaderMetrics) ScanFailed() {
	m.ScanFailuresTotal.Inc()
}

// SetLoaded sets the number of loaded plugins of a kind
func (m *LoaderMetrics) SetLoaded(kind string, n int) {
	m.PluginsLoaded.WithLabelValues(kind).Set(float64(n))
}

// Skipped counts a rejected candidate directory
func (m *LoaderMetrics) Skipped(kind, reason string) {
	m.PluginsSkipped.WithLabelValues(kind, reason).Inc()
}

// Collision counts a replaced plugin
func (m *LoaderMetrics) Collision(kind string) {
	m.PluginCollisions.WithLabelValues(kind).Inc()
}

// HTTPMetrics holds request metrics for the status API
type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewHTTPMetrics creates and registers the HTTP metrics
func NewHTTPMetrics(registry prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "switchboard_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "switchboard_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	registry.MustRegister(m.RequestsTotal, m.RequestDuration)

	return m
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// HTTPMetricsMiddleware instruments HTTP requests. route labels the request;
// it should return a low-cardinality name such as the matched route template.
func HTTPMetricsMiddleware(metrics *HTTPMetrics, route func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			name := route(r)
			metrics.RequestsTotal.WithLabelValues(r.Method, name, strconv.Itoa(rw.statusCode)).Inc()
			metrics.RequestDuration.WithLabelValues(r.Method, name).Observe(time.Since(start).Seconds())
		})
	}
}

// MetricsHandler serves the Prometheus exposition for gatherer
func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
