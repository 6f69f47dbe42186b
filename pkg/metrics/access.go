package metrics

import (
	"github.com/filehaven/filehaven/pkg/access"
)

// NewAccessMetrics creates a Prometheus-backed access.Metrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
// When nil is returned, callers should pass nil to the access engine,
// which results in zero overhead.
//
// Example usage:
//
//	// With metrics enabled
//	metrics.InitRegistry()
//	engine := access.NewEngine(rules, volumes, shares, features, metrics.NewAccessMetrics())
//
//	// Without metrics (zero overhead)
//	engine := access.NewEngine(rules, volumes, shares, features, nil)
func NewAccessMetrics() access.Metrics {
	if !IsEnabled() {
		return nil
	}
	return newPrometheusAccessMetrics()
}

// newPrometheusAccessMetrics is implemented in pkg/metrics/prometheus.
// The indirection avoids an import cycle while keeping the API clean.
var newPrometheusAccessMetrics func() access.Metrics

// RegisterAccessMetricsConstructor registers the Prometheus access
// metrics constructor. Called by pkg/metrics/prometheus during package
// initialization.
func RegisterAccessMetricsConstructor(constructor func() access.Metrics) {
	newPrometheusAccessMetrics = constructor
}
