// Package metrics provides Prometheus-based monitoring and metrics collection
// functionality for Go applications.
//
// The metrics package is designed to provide a standardized observability
// approach with features such as configurable HTTP endpoints for metrics exposure,
// automatic runtime instrumentation, and integration with the Fx dependency
// injection framework.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for metrics operations
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - FX module: Provides *Metrics for dependency injection
//
// Core Features:
//   - Exposes a configurable /metrics endpoint for Prometheus scraping
//   - Integration with go.uber.org/fx for automatic lifecycle management
//   - Optional registration of Go runtime and process-level metrics
//   - Support for custom metric registration (counters, gauges, histograms)
//   - Service name labelling of the built-in and default metrics
//   - Graceful startup and shutdown via Fx lifecycle hooks
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create metrics directly:
//
//	import "github.com/aleph-alpha-eng/glue-schema-registry/v1/metrics"
//
//	// Create a new metrics server (returns concrete *Metrics)
//	cfg := metrics.Config{
//		Address:                ":9090",
//		EnableDefaultCollectors: true,
//		ServiceName:             "glue-schema-registry",
//	}
//
//	m := metrics.NewMetrics(cfg)
//	go m.Server.ListenAndServe()
//
//	// Use built-in metrics
//	m.IncrementRegistryCalls("get_schema_version_by_id", "ok")
//	defer m.RecordRegistryCallDuration(time.Now(), "get_schema_version_by_id")
//
// # FX Module Integration
//
// For production applications using Uber's fx, use the FXModule which provides
// the concrete *Metrics:
//
//	import (
//		"go.uber.org/fx"
//		"github.com/aleph-alpha-eng/glue-schema-registry/v1/metrics"
//		"github.com/aleph-alpha-eng/glue-schema-registry/v1/logger"
//	)
//
//	app := fx.New(
//		logger.FXModule, // Required: the metrics lifecycle hook logs through *logger.Logger
//		metrics.FXModule, // Provides *Metrics
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{
//				Address:                 ":9090",
//				EnableDefaultCollectors: true,
//				ServiceName:             "glue-schema-registry",
//			}
//		}),
//		fx.Invoke(func(m *metrics.Metrics) {
//			// Use concrete type directly
//			m.IncrementRegistryCalls("create_schema", "ok")
//		}),
//	)
//	app.Run()
//
// # Configuration
//
// The metrics server is typically wired from environment variables by the
// calling application:
//
//	METRICS_ADDRESS=:9090                      # Port and address for /metrics endpoint
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true     # Enable runtime and process metrics
//	METRICS_SERVICE_NAME=glue-schema-registry  # Adds service label to built-in and default metrics
//
// # Default Collectors
//
// When EnableDefaultCollectors is true, the package automatically registers
// the following collectors:
//   - Go runtime metrics (goroutines, GC stats, heap usage)
//   - Process metrics (CPU time, memory, file descriptors)
//
// These metrics provide deep visibility into service performance and stability.
//
// # Custom Metrics
//
// Applications can register additional Prometheus metrics using the exposed
// Registry. For example:
//
//	requestDuration := prometheus.NewHistogramVec(
//	    prometheus.HistogramOpts{
//	        Name:    "http_request_duration_seconds",
//	        Help:    "Histogram of request latencies.",
//	        Buckets: prometheus.DefBuckets,
//	    },
//	    []string{"method", "route"},
//	)
//	m.Registry.MustRegister(requestDuration)
//
// # Performance Considerations
//
// The metrics server runs in a separate HTTP handler and is lightweight.
// Default collectors use minimal resources, but avoid unnecessary high-cardinality
// metrics or unbounded label values to maintain good performance.
//
// # Thread Safety
//
// All methods on the Metrics struct and Prometheus collectors are safe for
// concurrent use by multiple goroutines.
//
// # Observability
//
// Exposed metrics can be visualized in Prometheus, Grafana, or any compatible
// monitoring system to provide insights into service health, latency, and
// resource utilization.
package metrics
