// Package metrics provides Prometheus metrics for the DARA query service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Manager.
type Option func(*Manager)

// WithRegistry registers the metrics on registry instead of the default
// registerer.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// WithQueryBuckets sets the query evaluation histogram buckets, in
// milliseconds.
func WithQueryBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.queryBuckets = buckets
		}
	}
}

// WithHTTPBuckets sets the HTTP request histogram buckets, in milliseconds.
func WithHTTPBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.httpBuckets = buckets
		}
	}
}

// WithoutRecording makes every recorder a no-op. The metrics are still
// registered so /metrics keeps its shape.
func WithoutRecording() Option {
	return func(m *Manager) {
		m.enabled = false
	}
}
