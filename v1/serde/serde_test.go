package serde

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/compression"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/registry"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/schema"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/wire"
)

// fakeCache is a Cache backed by plain maps, for tests that do not need
// the real concurrency or single-flight behavior of *cache.Cache.
type fakeCache struct {
	svid   registry.SVID
	byDef  map[string]registry.SVID
	bySVID map[registry.SVID]schema.Schema
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		byDef:  make(map[string]registry.SVID),
		bySVID: make(map[registry.SVID]schema.Schema),
	}
}

func (c *fakeCache) GetOrRegister(ctx context.Context, s schema.Schema) (registry.SVID, error) {
	key := s.Name()
	if svid, ok := c.byDef[key]; ok {
		return svid, nil
	}
	svid := uuid.New()
	c.byDef[key] = svid
	c.bySVID[svid] = s
	return svid, nil
}

func (c *fakeCache) GetByID(ctx context.Context, svid registry.SVID) (schema.Schema, error) {
	s, ok := c.bySVID[svid]
	if !ok {
		return nil, registry.ErrSchemaNotFound
	}
	return s, nil
}

func widgetSchema(t *testing.T) schema.Schema {
	t.Helper()
	s, err := schema.NewAvro("Widget", `{"type":"record","name":"Widget","fields":[{"name":"id","type":"long"}]}`, schema.CompatibilityBackward)
	require.NoError(t, err)
	return s
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	s := widgetSchema(t)
	cache := newFakeCache()
	p := New(cache, compression.NewRegistry(), Config{})

	datum := map[string]interface{}{"id": int64(7)}

	framed, err := p.Serialize(context.Background(), datum, s)
	require.NoError(t, err)

	got, writer, err := p.Deserialize(context.Background(), framed)
	require.NoError(t, err)
	assert.Equal(t, datum, got)
	assert.True(t, schema.Equivalent(writer, s))
}

func TestSerializeWithCompression(t *testing.T) {
	s := widgetSchema(t)
	cache := newFakeCache()
	p := New(cache, compression.NewRegistry(), Config{CompressionCode: compression.ZlibCode})

	datum := map[string]interface{}{"id": int64(99)}

	framed, err := p.Serialize(context.Background(), datum, s)
	require.NoError(t, err)

	got, _, err := p.Deserialize(context.Background(), framed)
	require.NoError(t, err)
	assert.Equal(t, datum, got)
}

func TestSerializeNilSchemaRejected(t *testing.T) {
	cache := newFakeCache()
	p := New(cache, compression.NewRegistry(), Config{})

	_, err := p.Serialize(context.Background(), map[string]interface{}{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestDeserializeMalformedFrame(t *testing.T) {
	cache := newFakeCache()
	p := New(cache, compression.NewRegistry(), Config{})

	_, _, err := p.Deserialize(context.Background(), []byte{0x00, 0x00})
	require.Error(t, err)
}

func TestDeserializeMalformedFrameFallsBackToConfiguredSchema(t *testing.T) {
	s := widgetSchema(t)
	cache := newFakeCache()
	p := New(cache, compression.NewRegistry(), Config{Fallback: s})

	// Data that never went through wire.Encode at all (no header byte, no
	// SVID) - the shape legacy, non-framed producers write.
	raw, err := s.Encode(map[string]interface{}{"id": int64(11)})
	require.NoError(t, err)

	datum, writer, err := p.Deserialize(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"id": int64(11)}, datum)
	assert.True(t, schema.Equivalent(writer, s))
}

func TestDeserializeMalformedFramePropagatesErrorWhenFallbackAlsoFails(t *testing.T) {
	s := widgetSchema(t)
	cache := newFakeCache()
	p := New(cache, compression.NewRegistry(), Config{Fallback: s})

	_, _, err := p.Deserialize(context.Background(), []byte{0x00, 0x00})
	require.Error(t, err)
	assert.True(t, errors.Is(err, wire.ErrMalformedData))
}

func TestDeserializeUnknownSVIDFallsBackToConfiguredSchema(t *testing.T) {
	s := widgetSchema(t)
	cache := newFakeCache()

	fallback := widgetSchema(t)
	p := New(cache, compression.NewRegistry(), Config{Fallback: fallback})

	// Encode with a schema the cache never learns about, by constructing
	// the frame directly rather than going through Serialize (which would
	// register it).
	encoded, err := s.Encode(map[string]interface{}{"id": int64(3)})
	require.NoError(t, err)

	unknownSVID := uuid.New()
	framed := wire.Encode(unknownSVID, compression.NoneCode, encoded)

	datum, writer, err := p.Deserialize(context.Background(), framed)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"id": int64(3)}, datum)
	assert.True(t, schema.Equivalent(writer, fallback))
}
