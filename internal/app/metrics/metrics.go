// Package metrics holds the Prometheus collectors for the capture service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pokecapture",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pokecapture",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pokecapture",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	speciesCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pokecapture",
			Subsystem: "species",
			Name:      "cache_hits_total",
			Help:      "Species resolutions served from the local cache.",
		},
	)

	speciesCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pokecapture",
			Subsystem: "species",
			Name:      "cache_misses_total",
			Help:      "Species resolutions that required a provider fetch.",
		},
	)

	providerFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pokecapture",
			Subsystem: "species",
			Name:      "provider_fetches_total",
			Help:      "Provider fetch attempts by outcome.",
		},
		[]string{"outcome"},
	)

	capturesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pokecapture",
			Subsystem: "captures",
			Name:      "created_total",
			Help:      "Total number of captures persisted.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		speciesCacheHits,
		speciesCacheMisses,
		providerFetches,
		capturesTotal,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordCacheHit counts a species resolution served from the cache store.
func RecordCacheHit() { speciesCacheHits.Inc() }

// RecordCacheMiss counts a species resolution that went to the provider.
func RecordCacheMiss() { speciesCacheMisses.Inc() }

// RecordProviderFetch counts a provider fetch attempt by outcome
// ("ok", "not_found" or "error").
func RecordProviderFetch(outcome string) {
	providerFetches.WithLabelValues(outcome).Inc()
}

// RecordCapture counts a persisted capture row.
func RecordCapture() { capturesTotal.Inc() }

// statusRecorder captures the response status for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware instruments each request with count, duration and in-flight
// gauges. The path label uses the routed template when the router provides
// one via PathTemplate.
func Middleware(pathTemplate func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httpInFlight.Inc()
			defer httpInFlight.Dec()

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			path := r.URL.Path
			if pathTemplate != nil {
				if tmpl := pathTemplate(r); tmpl != "" {
					path = tmpl
				}
			}
			httpRequests.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
			httpDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}
