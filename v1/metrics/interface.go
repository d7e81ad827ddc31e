package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector provides an interface for collecting and exposing the
// metrics this module emits. It abstracts Prometheus metric operations with
// support for counters, histograms, and gauges so callers never import
// prometheus directly.
//
// This interface is implemented by the concrete *Metrics type.
type MetricsCollector interface {
	// Registry gateway metrics

	// IncrementRegistryCalls increments the registry-call counter for the
	// given operation and outcome ("ok" or "error").
	IncrementRegistryCalls(operation, outcome string)

	// RecordRegistryCallDuration records how long a registry RPC took.
	RecordRegistryCallDuration(start time.Time, operation string)

	// Cache metrics

	// SetCacheEntries sets the current size of a cache map ("forward" or
	// "reverse").
	SetCacheEntries(mapName string, count float64)

	// Transport metrics

	// IncrementTransportMessages increments the per-transport message
	// counter for a direction ("produce"/"consume") and outcome.
	IncrementTransportMessages(transport, direction, outcome string)

	// Dynamic metric factories

	// CreateCounter creates a new CounterVec metric and registers it.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates a new HistogramVec metric and registers it.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge creates a new GaugeVec metric and registers it.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}
