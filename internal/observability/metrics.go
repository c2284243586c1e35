// Package observability holds the Prometheus metrics exported by solarsizer.
package observability

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rshade/solarsizer/internal/engine"
)

const namespace = "solarsizer"

// Outcome label values.
const (
	OutcomeSuccess      = "success"
	OutcomeZoneNotFound = "zone_not_found"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

// Metrics holds the counters and histograms for estimates, quotes and invoices.
type Metrics struct {
	Estimates          *prometheus.CounterVec // labels: outcome
	EstimateDuration   prometheus.Histogram
	QuotesIssued       prometheus.Counter
	InvoiceExtractions *prometheus.CounterVec // labels: outcome
	HTTPRequests       *prometheus.CounterVec // labels: route, status
}

func newMetrics() *Metrics {
	return &Metrics{
		Estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimates_total",
			Help:      "Estimates computed, by outcome.",
		}, []string{"outcome"}),
		EstimateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimate_duration_seconds",
			Help:      "Time spent computing a single estimate.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		QuotesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_issued_total",
			Help:      "Quote numbers issued.",
		}),
		InvoiceExtractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_extractions_total",
			Help:      "Invoice field extractions, by outcome.",
		}, []string{"outcome"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "status"}),
	}
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.Estimates,
		m.EstimateDuration,
		m.QuotesIssued,
		m.InvoiceExtractions,
		m.HTTPRequests,
	)
	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewMetrics(reg), reg
}

// ObserveEstimate records the outcome and duration of an estimate.
func (m *Metrics) ObserveEstimate(err error, d time.Duration) {
	if m == nil {
		return
	}
	m.Estimates.WithLabelValues(Outcome(err)).Inc()
	m.EstimateDuration.Observe(d.Seconds())
}

// ObserveInvoice records the outcome of an invoice extraction.
func (m *Metrics) ObserveInvoice(err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.InvoiceExtractions.WithLabelValues(outcome).Inc()
}

// QuoteIssued counts an issued quote number.
func (m *Metrics) QuoteIssued() {
	if m == nil {
		return
	}
	m.QuotesIssued.Inc()
}

// Outcome maps an engine error to its label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, engine.ErrZoneNotFound):
		return OutcomeZoneNotFound
	case errors.Is(err, engine.ErrInvalidInput):
		return OutcomeInvalidInput
	default:
		return OutcomeError
	}
}
