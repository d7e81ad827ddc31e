package cache

import (
	"go.uber.org/fx"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/observability"
)

// FXModule is an fx.Module that provides a Cache wired to the registry
// Gateway.
var FXModule = fx.Module("cache",
	fx.Provide(NewCacheWithDI),
)

// CacheParams groups the dependencies needed to create a Cache.
type CacheParams struct {
	fx.In

	Resolver Resolver
	Observer observability.Observer `optional:"true"`
}

// NewCacheWithDI creates a Cache using dependency injection.
func NewCacheWithDI(params CacheParams) *Cache {
	return New(params.Resolver, params.Observer)
}
