// Package metrics holds the Prometheus collectors of the import pipeline.
//
// Exposed series:
//
//	filmgrading_http_requests_total             counter by method/route/status
//	filmgrading_http_request_duration_seconds   histogram by method/route
//	filmgrading_plays_imported_total            counter by source/stage
//	filmgrading_plays_failed_total              counter by source/stage
//	filmgrading_validation_score                histogram by source
//	filmgrading_provider_requests_total         counter by provider/outcome
//	filmgrading_provider_circuit_state          gauge by provider (0 closed, 1 half open, 2 open)
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "filmgrading"

// Stages reported on the play counters.
const (
	StageIngest = "ingest"
	StageMap    = "map"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	PlaysImported    *prometheus.CounterVec
	PlaysFailed      *prometheus.CounterVec
	ValidationScore  *prometheus.HistogramVec
	ProviderRequests *prometheus.CounterVec
	CircuitState     *prometheus.GaugeVec
}

// New registers every collector on a fresh registry together with the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		PlaysImported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plays_imported_total",
			Help:      "Plays persisted by the importer.",
		}, []string{"source", "stage"}),
		PlaysFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plays_failed_total",
			Help:      "Plays skipped because of a per-play failure.",
		}, []string{"source", "stage"}),
		ValidationScore: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "validation_score",
			Help:      "Overall data quality score of validated games.",
			Buckets:   []float64{10, 25, 50, 60, 75, 90, 100},
		}, []string{"source"}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Upstream provider fetches by outcome.",
		}, []string{"provider", "outcome"}),
		CircuitState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "provider_circuit_state",
			Help:      "Provider circuit breaker state.",
		}, []string{"provider"}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.PlaysImported,
		m.PlaysFailed,
		m.ValidationScore,
		m.ProviderRequests,
		m.CircuitState,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObservePlays(source, stage string, imported, failed int) {
	if m == nil {
		return
	}
	if imported > 0 {
		m.PlaysImported.WithLabelValues(source, stage).Add(float64(imported))
	}
	if failed > 0 {
		m.PlaysFailed.WithLabelValues(source, stage).Add(float64(failed))
	}
}

func (m *Metrics) ObserveValidation(source string, score int) {
	if m == nil {
		return
	}
	m.ValidationScore.WithLabelValues(source).Observe(float64(score))
}

func (m *Metrics) ObserveProvider(provider, outcome string) {
	if m == nil {
		return
	}
	m.ProviderRequests.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) SetCircuitState(provider, state string) {
	if m == nil {
		return
	}
	var v float64
	switch state {
	case "half_open":
		v = 1
	case "open":
		v = 2
	}
	m.CircuitState.WithLabelValues(provider).Set(v)
}

// Middleware records request counts and latency labelled by the matched ServeMux pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
