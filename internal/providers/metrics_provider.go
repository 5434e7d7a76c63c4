package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"nutrilog/internal/models"
	"nutrilog/internal/structures"
)

const (
	ExtractionSuccess = "success"
	ExtractionFailure = "failure"
	ExtractionBlank   = "blank"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncPersistenceErrors()
	IncExtractions(outcome string)
	ObserveExtractionDuration(duration time.Duration)
	IncInFlight()
	DecInFlight()
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	persistenceErrors   prometheus.Counter
	extractionsTotal    *prometheus.CounterVec
	extractionDuration  prometheus.Histogram
	inFlight            prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncPersistenceErrors() {
	m.persistenceErrors.Inc()
}

func (m *MetricsProvider) IncExtractions(outcome string) {
	m.extractionsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObserveExtractionDuration(duration time.Duration) {
	m.extractionDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncInFlight() {
	m.inFlight.Inc()
}

func (m *MetricsProvider) DecInFlight() {
	m.inFlight.Dec()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, store *models.EntryStore) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nutrilog_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nutrilog_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nutrilog_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nutrilog_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "nutrilog_persistence_duration_seconds",
			Help:    "Duration of entry slot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		persistenceErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nutrilog_persistence_errors_total",
			Help: "Total number of failed entry slot writes",
		}),

		extractionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nutrilog_extractions_total",
			Help: "Total number of nutrition extraction calls by outcome",
		}, []string{"outcome"}),

		extractionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "nutrilog_extraction_duration_seconds",
			Help:    "Duration of nutrition extraction calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}),

		inFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "nutrilog_submissions_in_flight",
			Help: "Number of meal submissions waiting for extraction",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "nutrilog_entries_total",
		Help: "Current number of food entries in the journal",
	}, func() float64 {
		return float64(store.Len())
	})

	return m
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncPersistenceErrors()                            {}
func (n *noopMetrics) IncExtractions(_ string)                          {}
func (n *noopMetrics) ObserveExtractionDuration(_ time.Duration)        {}
func (n *noopMetrics) IncInFlight()                                     {}
func (n *noopMetrics) DecInFlight()                                     {}
