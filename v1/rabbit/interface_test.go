package rabbit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/registry"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/schema"
)

// fakePipeline is a minimal Pipeline for exercising the Serializer/
// Deserializer adapters without a real registry or cache behind them.
type fakePipeline struct {
	encoded      []byte
	s            schema.Schema
	registerErr  error
	registerSVID registry.SVID
}

func (p *fakePipeline) Serialize(ctx context.Context, datum interface{}, s schema.Schema) ([]byte, error) {
	return p.encoded, nil
}

func (p *fakePipeline) Deserialize(ctx context.Context, data []byte) (interface{}, schema.Schema, error) {
	return string(data), p.s, nil
}

func (p *fakePipeline) EnsureRegistered(ctx context.Context, s schema.Schema) (registry.SVID, error) {
	if p.registerErr != nil {
		return registry.SVID{}, p.registerErr
	}
	if p.registerSVID != (registry.SVID{}) {
		return p.registerSVID, nil
	}
	return uuid.New(), nil
}

func testEventSchema(t *testing.T) schema.Schema {
	t.Helper()
	s, err := schema.NewAvro("Event", `{"type":"record","name":"Event","fields":[{"name":"id","type":"long"}]}`, schema.CompatibilityBackward)
	require.NoError(t, err)
	return s
}

func TestSetDefaultSerializersBuildsFromPipeline(t *testing.T) {
	s := testEventSchema(t)
	pipeline := &fakePipeline{encoded: []byte("framed"), s: s}

	rb := &RabbitClient{cfg: Config{Pipeline: pipeline}}
	rb.SetDefaultSerializers()

	require.NotNil(t, rb.serializer)
	require.NotNil(t, rb.deserializer)

	encoded, err := rb.serializer.Encode(context.Background(), Pair{Datum: "x", Schema: s})
	require.NoError(t, err)
	assert.Equal(t, []byte("framed"), encoded)

	pair, err := rb.deserializer.Decode(context.Background(), []byte("framed"))
	require.NoError(t, err)
	assert.Equal(t, "framed", pair.Datum)
	assert.True(t, schema.Equivalent(pair.Schema, s))
}

func TestSetDefaultSerializersNoopWithoutPipeline(t *testing.T) {
	rb := &RabbitClient{cfg: Config{}}
	rb.SetDefaultSerializers()

	assert.Nil(t, rb.serializer)
	assert.Nil(t, rb.deserializer)
}

func TestSetDefaultSerializersDoesNotOverrideExplicitSerializer(t *testing.T) {
	s := testEventSchema(t)
	pipeline := &fakePipeline{encoded: []byte("framed"), s: s}
	explicit := &pipelineSerializer{pipeline: pipeline}

	rb := &RabbitClient{cfg: Config{Pipeline: pipeline}}
	rb.SetSerializer(explicit)
	rb.SetDefaultSerializers()

	assert.Same(t, explicit, rb.serializer)
}

func TestPublishReturnsErrorWithoutSerializer(t *testing.T) {
	rb := &RabbitClient{cfg: Config{Channel: Channel{ExchangeName: "events"}}}

	err := rb.Publish(context.Background(), Pair{Datum: "x"})
	require.Error(t, err)
}
