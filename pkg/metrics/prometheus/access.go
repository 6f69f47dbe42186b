// Package prometheus provides the Prometheus implementations of the
// metric interfaces defined by FileHaven components. Importing it for
// side effects wires the constructors into pkg/metrics.
package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/filehaven/filehaven/pkg/access"
	"github.com/filehaven/filehaven/pkg/metrics"
)

func init() {
	metrics.RegisterAccessMetricsConstructor(NewAccessMetrics)
}

// accessMetrics is the Prometheus implementation of access.Metrics.
type accessMetrics struct {
	decisions        *prometheus.CounterVec
	decisionDuration *prometheus.HistogramVec
	denials          *prometheus.CounterVec
	listings         *prometheus.CounterVec
	listingDuration  *prometheus.HistogramVec
	listingEntries   *prometheus.HistogramVec
	listingFiltered  *prometheus.CounterVec
}

// NewAccessMetrics creates a Prometheus-backed access.Metrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewAccessMetrics() access.Metrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &accessMetrics{
		decisions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "filehaven_access_decisions_total",
				Help: "Total number of access decisions by space and outcome",
			},
			[]string{"space", "allowed"},
		),
		decisionDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "filehaven_access_decision_duration_milliseconds",
				Help: "Duration of access decisions in milliseconds",
				Buckets: []float64{
					0.01, // 10us - cached lookups
					0.05, // 50us
					0.1,  // 100us
					0.5,  // 500us
					1,    // 1ms
					5,    // 5ms - store round trips
					10,   // 10ms
					50,   // 50ms
					100,  // 100ms
				},
			},
			[]string{"space"},
		),
		denials: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "filehaven_access_denials_total",
				Help: "Total number of denied access decisions by space and reason",
			},
			[]string{"space", "reason"},
		),
		listings: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "filehaven_access_listings_total",
				Help: "Total number of directory listings by space",
			},
			[]string{"space"},
		),
		listingDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "filehaven_access_listing_duration_milliseconds",
				Help: "Duration of filtered directory listings in milliseconds",
				Buckets: []float64{
					0.5,  // 500us - small cached directories
					1,    // 1ms
					5,    // 5ms
					10,   // 10ms
					50,   // 50ms
					100,  // 100ms
					500,  // 500ms
					1000, // 1s - very large directories
				},
			},
			[]string{"space"},
		),
		listingEntries: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "filehaven_access_listing_entries",
				Help: "Distribution of raw entry counts per listing",
				Buckets: []float64{
					1,
					10,
					50,
					100,
					500,
					1000,
					5000,
					10000,
				},
			},
			[]string{"space"},
		),
		listingFiltered: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "filehaven_access_listing_filtered_total",
				Help: "Total number of entries removed from listings by access checks",
			},
			[]string{"space"},
		),
	}
}

func (m *accessMetrics) ObserveDecision(space string, allowed bool, reason string, duration time.Duration) {
	if m == nil {
		return
	}

	m.decisions.WithLabelValues(space, strconv.FormatBool(allowed)).Inc()
	m.decisionDuration.WithLabelValues(space).Observe(duration.Seconds() * 1000)

	if !allowed && reason != "" {
		m.denials.WithLabelValues(space, reason).Inc()
	}
}

func (m *accessMetrics) ObserveListing(space string, entries, filtered int, duration time.Duration) {
	if m == nil {
		return
	}

	m.listings.WithLabelValues(space).Inc()
	m.listingDuration.WithLabelValues(space).Observe(duration.Seconds() * 1000)
	m.listingEntries.WithLabelValues(space).Observe(float64(entries))

	if filtered > 0 {
		m.listingFiltered.WithLabelValues(space).Add(float64(filtered))
	}
}
