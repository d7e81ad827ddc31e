// Package sdk composes the registry gateway, schema cache, and serde
// pipeline into a single entry point for applications that want schema
// registration and serialization without wiring component D, E, and F
// themselves.
package sdk

import (
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/cache"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/compression"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/observability"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/registry"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/serde"
)

// Config configures New.
type Config struct {
	// Registry configures the gateway's polling, auto-registration, and
	// metadata behavior.
	Registry registry.Config

	// Transport is the raw RPC client the gateway drives. Required.
	Transport registry.Transport

	// Serde configures the serializer/deserializer pipeline (compression
	// code, fallback deserializer).
	Serde serde.Config

	// Observer, if set, receives operation events from the gateway and
	// cache. Defaults to a no-op observer.
	Observer observability.Observer
}

// SDK bundles the registry Gateway, schema Cache, and serde Pipeline
// constructed from a Config, so callers have one object to hold instead of
// three.
type SDK struct {
	Gateway  *registry.Gateway
	Cache    *cache.Cache
	Pipeline *serde.Pipeline
}

// New wires a Gateway over cfg.Transport, a Cache over that Gateway, and a
// Pipeline over that Cache, in the same order the produce/consume data flow
// in the schema registry client pipeline requires: D -> E -> F.
func New(cfg Config, log registry.Logger) *SDK {
	obs := cfg.Observer
	if obs == nil {
		obs = observability.NewNoOpObserver()
	}

	gw := registry.New(cfg.Registry, cfg.Transport, log, obs)
	c := cache.New(gw, obs)
	p := serde.New(c, compression.NewRegistry(), cfg.Serde)

	return &SDK{Gateway: gw, Cache: c, Pipeline: p}
}
