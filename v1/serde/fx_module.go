package serde

import (
	"go.uber.org/fx"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/compression"
)

// FXModule is an fx.Module that provides a Pipeline wired to the schema
// Cache.
var FXModule = fx.Module("serde",
	fx.Provide(NewPipelineWithDI),
)

// PipelineParams groups the dependencies needed to create a Pipeline.
type PipelineParams struct {
	fx.In

	Cache  Cache
	Config Config
}

// NewPipelineWithDI creates a Pipeline using dependency injection.
func NewPipelineWithDI(params PipelineParams) *Pipeline {
	return New(params.Cache, compression.NewRegistry(), params.Config)
}
