package tracer

// Config configures NewClient.
type Config struct {
	// ServiceName is attached to every span as the otel "service.name" resource attribute.
	ServiceName string

	// AppEnv is the deployment environment (e.g. "production", "staging").
	AppEnv string

	// EnableExport turns on the OTLP/HTTP batch exporter. When false, spans
	// are created but never shipped, which is useful for tests.
	EnableExport bool
}
