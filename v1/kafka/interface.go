package kafka

import (
	"context"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/registry"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/schema"
)

// Pipeline is the schema serde pipeline a KafkaClient serializes and
// deserializes message values through. *serde.Pipeline satisfies it.
type Pipeline interface {
	Serialize(ctx context.Context, datum interface{}, s schema.Schema) ([]byte, error)
	Deserialize(ctx context.Context, data []byte) (interface{}, schema.Schema, error)

	// EnsureRegistered resolves s to an SVID without encoding anything,
	// used by NewClient to register a producer's value schema eagerly.
	EnsureRegistered(ctx context.Context, s schema.Schema) (registry.SVID, error)
}

// Pair bundles a datum with the schema it should be (or was) encoded
// under. Publish and Consume pass no topic to the pipeline; the topic comes
// from Config.Topic and the pipeline underneath does not key anything off it.
type Pair struct {
	Datum  interface{}
	Schema schema.Schema
}

// Serializer encodes a Pair into wire bytes.
type Serializer interface {
	Encode(ctx context.Context, pair Pair) ([]byte, error)
}

// Deserializer decodes wire bytes back into a Pair.
type Deserializer interface {
	Decode(ctx context.Context, data []byte) (Pair, error)
}

// pipelineSerializer adapts a Pipeline to the Serializer interface.
type pipelineSerializer struct {
	pipeline Pipeline
}

func (s *pipelineSerializer) Encode(ctx context.Context, pair Pair) ([]byte, error) {
	return s.pipeline.Serialize(ctx, pair.Datum, pair.Schema)
}

// pipelineDeserializer adapts a Pipeline to the Deserializer interface.
type pipelineDeserializer struct {
	pipeline Pipeline
}

func (d *pipelineDeserializer) Decode(ctx context.Context, data []byte) (Pair, error) {
	datum, s, err := d.pipeline.Deserialize(ctx, data)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Datum: datum, Schema: s}, nil
}

// SetDefaultSerializers builds the client's Serializer and Deserializer
// from cfg.Pipeline, when one was configured and no explicit
// SetSerializer/SetDeserializer call has already run.
func (k *KafkaClient) SetDefaultSerializers() {
	if k.cfg.Pipeline == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.serializer == nil {
		k.serializer = &pipelineSerializer{pipeline: k.cfg.Pipeline}
	}
	if k.deserializer == nil {
		k.deserializer = &pipelineDeserializer{pipeline: k.cfg.Pipeline}
	}
}
