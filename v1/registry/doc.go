// Package registry provides integration with a remote, Glue-style schema
// registry service.
//
// This package turns the registry's raw RPC surface (Transport) into a
// single Gateway that callers drive with two calls: GetByDefinition, to
// resolve or auto-register a schema, and GetByID, to fetch a previously
// registered version. Both calls block through the registry's PENDING
// status until the schema version is AVAILABLE or a terminal error occurs.
//
// Core Features:
//   - HTTP transport to the registry service
//   - register_schema_version -> create_schema auto-registration fallback
//   - Bounded polling for PENDING schema versions
//   - Best-effort metadata attachment on newly registered versions
//   - In-memory Transport for tests
//
// Basic Usage:
//
//	transport, err := registry.NewHTTPTransport(registry.HTTPTransportConfig{
//	    Endpoint: "https://registry.example.com",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gw := registry.New(registry.Config{RegistryName: "my-registry"}, transport, log, observer)
//
//	sv, err := gw.GetByDefinition(ctx, userSchema)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Using with FX:
//
//	app := fx.New(
//	    logger.FXModule, // the Gateway requires a *logger.Logger
//	    registry.FXModule,
//	    fx.Provide(
//	        func() registry.Config { return registry.Config{RegistryName: "my-registry"} },
//	        func() registry.HTTPTransportConfig {
//	            return registry.HTTPTransportConfig{Endpoint: "https://registry.example.com"}
//	        },
//	    ),
//	)
package registry
