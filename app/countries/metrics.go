package countries

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

// Metrics provides observability for the countries module. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Upstream loads by result: "success" or "error"
	FetchTotal *prometheus.CounterVec

	FetchDuration prometheus.Histogram

	// Records in the ready collection
	RecordsLoaded prometheus.Gauge

	// Upstream elements dropped while decoding, by reason
	RecordsSkipped *prometheus.CounterVec

	// Query changes, split by whether anything matched
	Searches *prometheus.CounterVec

	// Page steps by direction
	Navigations *prometheus.CounterVec

	// 0 closed, 1 half-open, 2 open
	BreakerState prometheus.Gauge
}

// NewMetrics registers the countries metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_countries_fetch_total",
			Help: "Upstream country list loads by result",
		}, []string{"result"}),

		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "atlas_countries_fetch_duration_seconds",
			Help:    "Duration of upstream country list loads",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),

		RecordsLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "atlas_countries_records",
			Help: "Number of country records in the ready collection",
		}),

		RecordsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_countries_records_skipped_total",
			Help: "Upstream elements dropped while decoding by reason",
		}, []string{"reason"}),

		Searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_countries_searches_total",
			Help: "Search query changes by outcome",
		}, []string{"outcome"}),

		Navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_countries_page_navigations_total",
			Help: "Page navigation steps by direction",
		}, []string{"direction"}),

		BreakerState: factory.NewGauge(prometheus.GaugeOpts{
			Name: "atlas_countries_source_circuit_state",
			Help: "Circuit breaker state of the countries source (0 closed, 1 half-open, 2 open)",
		}),
	}
}

// ObserveFetch records one upstream load.
func (m *Metrics) ObserveFetch(err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.FetchTotal.WithLabelValues(result).Inc()
	m.FetchDuration.Observe(d.Seconds())
}

// SetRecords records the size of the ready collection.
func (m *Metrics) SetRecords(n int) {
	if m != nil {
		m.RecordsLoaded.Set(float64(n))
	}
}

// IncSkipped records a dropped upstream element.
func (m *Metrics) IncSkipped(reason string) {
	if m != nil {
		m.RecordsSkipped.WithLabelValues(reason).Inc()
	}
}

// IncSearch records a query change.
func (m *Metrics) IncSearch(noResults bool) {
	if m == nil {
		return
	}
	outcome := "matched"
	if noResults {
		outcome = "no_results"
	}
	m.Searches.WithLabelValues(outcome).Inc()
}

// IncNavigation records a page step.
func (m *Metrics) IncNavigation(dir Direction) {
	if m != nil {
		m.Navigations.WithLabelValues(string(dir)).Inc()
	}
}

// OnBreakerStateChange matches circuitbreaker.StateListener.
func (m *Metrics) OnBreakerStateChange(_ string, _, to gobreaker.State) {
	if m == nil {
		return
	}
	switch to {
	case gobreaker.StateClosed:
		m.BreakerState.Set(0)
	case gobreaker.StateHalfOpen:
		m.BreakerState.Set(1)
	case gobreaker.StateOpen:
		m.BreakerState.Set(2)
	}
}
