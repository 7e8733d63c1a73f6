package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "party_planner"

// Metrics holds the Prometheus collectors for the planner.
type Metrics struct {
	PlanRequests     *prometheus.CounterVec   // labels: outcome={found,none,invalid,geocode_error,weather_error,internal_error}
	GeocodeRequests  *prometheus.CounterVec   // labels: outcome={success,no_match,error}
	WeatherFetches   *prometheus.CounterVec   // labels: outcome={success,not_found,error}
	UpstreamDuration *prometheus.HistogramVec // labels: call={geocode,weather}
	QualifyingDays   prometheus.Histogram
}

// NewMetrics creates and registers all planner metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.PlanRequests,
		m.GeocodeRequests,
		m.WeatherFetches,
		m.UpstreamDuration,
		m.QualifyingDays,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PlanRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_requests_total",
			Help:      "Party plan requests by outcome.",
		}, []string{"outcome"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding lookups by outcome.",
		}, []string{"outcome"}),
		WeatherFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_fetches_total",
			Help:      "Weather observation fetches by outcome.",
		}, []string{"outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Duration of outbound geocoding and weather calls.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"call"}),
		QualifyingDays: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "qualifying_days",
			Help:      "Number of days per location that passed the suitability policy.",
			Buckets:   []float64{0, 1, 2, 3, 5, 7, 14, 31},
		}),
	}
}
