package sdk

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/logger"
)

// FXModule is an fx.Module that provides the composed SDK. It requires an
// sdk.Config, which carries the registry.Transport, registry.Config and
// serde.Config, and a *logger.Logger; callers supply both.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    sdk.FXModule,
//	    fx.Provide(
//	        func() sdk.Config {
//	            return sdk.Config{
//	                Registry:  registry.Config{RegistryName: "my-registry"},
//	                Transport: transport,
//	                Serde:     serde.Config{},
//	            }
//	        },
//	    ),
//	)
var FXModule = fx.Module("sdk",
	fx.Provide(NewSDKWithDI),
	fx.Invoke(RegisterSDKLifecycle),
)

// SDKParams groups the dependencies needed to create an SDK.
type SDKParams struct {
	fx.In

	Config Config
	Logger *logger.Logger
}

// NewSDKWithDI creates an SDK using dependency injection.
func NewSDKWithDI(params SDKParams) *SDK {
	return New(params.Config, params.Logger)
}

// SDKLifecycleParams groups the dependencies needed for SDK lifecycle
// management.
type SDKLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	SDK       *SDK
}

// RegisterSDKLifecycle registers the SDK with the fx lifecycle system.
func RegisterSDKLifecycle(params SDKLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("INFO: schema registry SDK initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("INFO: schema registry SDK shutdown")
			return nil
		},
	})
}
