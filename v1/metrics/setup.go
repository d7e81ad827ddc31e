package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing this module's metrics.
//
// This structure provides the components needed to register metrics
// collectors and serve them via the /metrics HTTP endpoint for Prometheus
// scraping.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service maintains its own isolated registry to prevent metric
	// name collisions.
	Registry *prometheus.Registry

	// Core built-in metrics
	registryCallsTotal    *prometheus.CounterVec
	registryCallDuration  *prometheus.HistogramVec
	cacheEntries           *prometheus.GaugeVec
	transportMessagesTotal *prometheus.CounterVec
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
// It sets up a dedicated Prometheus registry, registers default system
// collectors, wraps all metrics with a constant `service` label, and creates
// an HTTP server exposing the /metrics endpoint.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.registryCallsTotal = createCounterVec("registry_calls_total", "Total number of registry gateway RPCs", []string{"operation", "outcome"})
	m.registryCallDuration = createHistogramVec("registry_call_duration_seconds", "Duration of registry gateway RPCs in seconds", []string{"operation"}, prometheus.DefBuckets)
	m.cacheEntries = createGaugeVec("cache_entries", "Current number of entries held in each cache map", []string{"map"})
	m.transportMessagesTotal = createCounterVec("transport_messages_total", "Total number of messages serialized/deserialized per transport", []string{"transport", "direction", "outcome"})

	wrappedRegistry.MustRegister(
		m.registryCallsTotal,
		m.registryCallDuration,
		m.cacheEntries,
		m.transportMessagesTotal,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	server := &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}

	m.Server = server
	return m
}
