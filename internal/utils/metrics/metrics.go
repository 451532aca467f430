package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/outfitpicker/server/internal/port/outbound"
)

// Metrics holds all application metrics.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Wardrobe metrics
	PicksTotal         *prometheus.CounterVec
	UploadsTotal       *prometheus.CounterVec
	OutfitsTotal       prometheus.Counter
	OutfitMissingSlots prometheus.Histogram

	// Object storage metrics
	StorageBreakerState *prometheus.GaugeVec

	// Batch uploader metrics
	BatchFilesTotal *prometheus.CounterVec
}

var _ outbound.WardrobeMetricsPort = (*Metrics)(nil)

// New creates a Metrics instance registered on reg.
// A nil reg registers on the default Prometheus registry.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "outfitpicker"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		// Wardrobe metrics
		PicksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "wardrobe",
				Name:      "picks_total",
				Help:      "Total number of random item picks",
			},
			[]string{"category", "result"}, // result: hit, miss, error
		),
		UploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "wardrobe",
				Name:      "uploads_total",
				Help:      "Total number of item uploads",
			},
			[]string{"status"},
		),
		OutfitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "wardrobe",
				Name:      "outfits_total",
				Help:      "Total number of outfits assembled",
			},
		),
		OutfitMissingSlots: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "wardrobe",
				Name:      "outfit_missing_slots",
				Help:      "Number of categories with no item per assembled outfit",
				Buckets:   []float64{0, 1, 2, 3, 4},
			},
		),

		// Object storage metrics
		StorageBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "storage",
				Name:      "breaker_state",
				Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),

		// Batch uploader metrics
		BatchFilesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "uploader",
				Name:      "files_total",
				Help:      "Total number of files handled by the batch uploader",
			},
			[]string{"status"}, // uploaded, failed, skipped
		),
	}
}

// --- Convenience methods ---

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	statusStr := statusCodeToString(status)
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordPick records the outcome of a random pick.
func (m *Metrics) RecordPick(category, result string) {
	m.PicksTotal.WithLabelValues(category, result).Inc()
}

// RecordUpload records the outcome of an upload.
func (m *Metrics) RecordUpload(status string) {
	m.UploadsTotal.WithLabelValues(status).Inc()
}

// RecordOutfit records an assembled outfit and its empty slots.
func (m *Metrics) RecordOutfit(missing int) {
	m.OutfitsTotal.Inc()
	m.OutfitMissingSlots.Observe(float64(missing))
}

// SetBreakerState records a circuit breaker state transition.
func (m *Metrics) SetBreakerState(name string, state int) {
	m.StorageBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordBatchFile records one file handled by the batch uploader.
func (m *Metrics) RecordBatchFile(status string) {
	m.BatchFilesTotal.WithLabelValues(status).Inc()
}

// statusCodeToString converts an HTTP status code to a string category.
func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		if code == 429 {
			return strconv.Itoa(code)
		}
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
