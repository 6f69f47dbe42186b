package config

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/filehaven/filehaven/pkg/metrics"
)

// MetricsResult holds the outcome of metrics initialization.
type MetricsResult struct {
	// Server is the Prometheus scrape endpoint, nil when metrics are disabled.
	// The caller owns its lifecycle (ListenAndServe / Shutdown).
	Server *http.Server
}

// InitializeMetrics enables the process-wide metrics registry and builds
// the Prometheus scrape server when metrics are enabled in the config.
//
// When metrics are disabled this is a no-op: the registry stays nil and
// every metrics constructor returns nil, so instrumented components run
// with zero overhead.
func InitializeMetrics(cfg *Config) MetricsResult {
	if !cfg.Metrics.Enabled {
		return MetricsResult{}
	}

	metrics.InitRegistry()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		metrics.GetRegistry(),
		promhttp.HandlerOpts{EnableOpenMetrics: true},
	))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return MetricsResult{Server: server}
}
