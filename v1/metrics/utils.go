package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IncrementRegistryCalls increments the registry-call counter for the given
// operation and outcome ("ok" or "error").
// Example: metrics.IncrementRegistryCalls("get_schema_version_by_id", "ok")
func (m *Metrics) IncrementRegistryCalls(operation, outcome string) {
	m.registryCallsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordRegistryCallDuration records how long a registry RPC took.
// Example: defer metrics.RecordRegistryCallDuration(time.Now(), "create_schema")
func (m *Metrics) RecordRegistryCallDuration(start time.Time, operation string) {
	duration := time.Since(start).Seconds()
	m.registryCallDuration.WithLabelValues(operation).Observe(duration)
}

// SetCacheEntries sets the current size of a cache map ("forward" or "reverse").
func (m *Metrics) SetCacheEntries(mapName string, count float64) {
	m.cacheEntries.WithLabelValues(mapName).Set(count)
}

// IncrementTransportMessages increments the per-transport message counter.
func (m *Metrics) IncrementTransportMessages(transport, direction, outcome string) {
	m.transportMessagesTotal.WithLabelValues(transport, direction, outcome).Inc()
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(name, help, labels)
	m.Registry.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(name, help, labels, buckets)
	m.Registry.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := createGaugeVec(name, help, labels)
	m.Registry.MustRegister(gauge)
	return gauge
}

// createCounterVec defines a new CounterVec with standard options.
func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}

// createGaugeVec defines a new GaugeVec safely for resource monitoring.
func createGaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}
