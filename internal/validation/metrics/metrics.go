package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the validation module.
type Metrics struct {
	// Verdicts by result ("valid", "invalid")
	Validations *prometheus.CounterVec

	// Store failures by operation ("append", "list")
	StoreFailures *prometheus.CounterVec

	// Publisher failures
	PublishFailures prometheus.Counter

	// History reads served from an empty fallback page
	DegradedResponses *prometheus.CounterVec

	// Latency of store calls by operation
	StoreLatency *prometheus.HistogramVec
}

// New creates the validation metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "validarfc_validations_total",
			Help: "Total RFC validations by result",
		}, []string{"result"}),

		StoreFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "validarfc_history_store_failures_total",
			Help: "History store errors swallowed by the service, by operation",
		}, []string{"operation"}),

		PublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "validarfc_event_publish_failures_total",
			Help: "Validation events that could not be handed to the broker",
		}),

		DegradedResponses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "validarfc_degraded_responses_total",
			Help: "Responses served without store data, by endpoint",
		}, []string{"endpoint"}),

		StoreLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "validarfc_history_store_duration_seconds",
			Help:    "Duration of history store operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

// IncrementValidation records a verdict.
func (m *Metrics) IncrementValidation(valid bool) {
	if m == nil {
		return
	}
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.Validations.WithLabelValues(result).Inc()
}

// IncrementStoreFailure records a swallowed store error.
func (m *Metrics) IncrementStoreFailure(operation string) {
	if m != nil {
		m.StoreFailures.WithLabelValues(operation).Inc()
	}
}

// IncrementPublishFailure records an event that never reached the broker.
func (m *Metrics) IncrementPublishFailure() {
	if m != nil {
		m.PublishFailures.Inc()
	}
}

// IncrementDegraded records a degraded response for endpoint.
func (m *Metrics) IncrementDegraded(endpoint string) {
	if m != nil {
		m.DegradedResponses.WithLabelValues(endpoint).Inc()
	}
}

// ObserveStoreLatency records the duration of a store call.
func (m *Metrics) ObserveStoreLatency(operation string, d time.Duration) {
	if m != nil {
		m.StoreLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}
