// Package tracer provides distributed tracing functionality using
// OpenTelemetry, used to propagate trace context through Kafka and AMQP
// message headers across the produce/consume boundary.
//
// Basic usage:
//
//	tracerClient := tracer.NewClient(tracer.Config{
//		ServiceName:  "glue-schema-registry",
//		AppEnv:       "development",
//		EnableExport: true,
//	}, log)
//
//	ctx, span := tracerClient.StartSpan(ctx, "registry.get_schema_version_by_id")
//	defer span.End()
//
//	tracerClient.SetAttributes(span, map[string]interface{}{
//		"svid": svid.String(),
//	})
//
// Propagating across a message boundary:
//
//	// producer side
//	headers := tracerClient.GetCarrier(ctx)
//
//	// consumer side
//	ctx = tracerClient.SetCarrierOnContext(context.Background(), headers)
package tracer
