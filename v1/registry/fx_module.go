package registry

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/logger"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/observability"
)

// FXModule is an fx.Module that provides and configures the registry
// Gateway and its HTTPTransport.
//
// The Gateway requires a *logger.Logger from the container, for example
// from logger.FXModule.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    registry.FXModule,
//	    fx.Provide(
//	        func() registry.Config { return registry.Config{RegistryName: "my-registry"} },
//	        func() registry.HTTPTransportConfig {
//	            return registry.HTTPTransportConfig{Endpoint: "https://registry.example.com"}
//	        },
//	    ),
//	)
var FXModule = fx.Module("registry",
	fx.Provide(
		NewHTTPTransportWithDI,
		NewGatewayWithDI,
	),
	fx.Invoke(RegisterGatewayLifecycle),
)

// HTTPTransportParams groups the dependencies needed to create an
// HTTPTransport.
type HTTPTransportParams struct {
	fx.In

	Config HTTPTransportConfig
}

// NewHTTPTransportWithDI creates an HTTPTransport for use with fx.
func NewHTTPTransportWithDI(params HTTPTransportParams) (Transport, error) {
	return NewHTTPTransport(params.Config)
}

// GatewayParams groups the dependencies needed to create a Gateway.
type GatewayParams struct {
	fx.In

	Config    Config
	Transport Transport
	Logger    *logger.Logger
	Observer  observability.Observer `optional:"true"`
}

// NewGatewayWithDI creates a Gateway using dependency injection.
func NewGatewayWithDI(params GatewayParams) *Gateway {
	obs := params.Observer
	if obs == nil {
		obs = observability.NewNoOpObserver()
	}
	return New(params.Config, params.Transport, params.Logger, obs)
}

// GatewayLifecycleParams groups the dependencies needed for Gateway
// lifecycle management.
type GatewayLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Gateway   *Gateway
}

// RegisterGatewayLifecycle registers the Gateway with the fx lifecycle
// system. The gateway itself holds no connections to close; this hook
// exists for consistent startup/shutdown logging across packages.
func RegisterGatewayLifecycle(params GatewayLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("INFO: registry gateway initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("INFO: registry gateway shutdown")
			return nil
		},
	})
}
