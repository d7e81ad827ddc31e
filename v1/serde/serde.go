// Package serde implements the serializer/deserializer pipeline that ties
// the wire codec, compression registry, and schema cache together into two
// calls: Serialize and Deserialize.
package serde

import (
	"context"
	"errors"
	"fmt"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/compression"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/registry"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/schema"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/wire"
)

// ErrInvalidInput is returned when a caller's input is not shaped the way
// the pipeline expects (e.g. a nil schema on Serialize).
var ErrInvalidInput = errors.New("serde: invalid input")

// Cache is the subset of *cache.Cache the pipeline depends on.
type Cache interface {
	GetOrRegister(ctx context.Context, s schema.Schema) (registry.SVID, error)
	GetByID(ctx context.Context, svid registry.SVID) (schema.Schema, error)
}

// Config configures a Pipeline.
type Config struct {
	// CompressionCode is the wire code written into every frame produced
	// by Serialize. Defaults to compression.NoneCode.
	CompressionCode byte

	// Fallback, when set, is tried by Deserialize if the primary decode
	// (resolving the writer schema via the cache and decoding with it)
	// fails. This supports reading data written under a schema this
	// consumer's cache cannot resolve, by decoding with a caller-supplied
	// schema instead.
	Fallback schema.Schema
}

// Pipeline is the serializer/deserializer: Serialize resolves or registers
// a schema, encodes the datum, compresses it, and frames it; Deserialize
// reverses every step.
type Pipeline struct {
	cache      Cache
	compressor *compression.Registry
	cfg        Config
}

// New constructs a Pipeline over cache, using compressor for framing.
// compressor may be nil, in which case compression.NewRegistry() is used.
func New(cache Cache, compressor *compression.Registry, cfg Config) *Pipeline {
	if compressor == nil {
		compressor = compression.NewRegistry()
	}
	return &Pipeline{cache: cache, compressor: compressor, cfg: cfg}
}

// Serialize resolves s to an SVID (registering it if necessary), encodes
// datum with s, compresses the result, and returns a fully framed payload
// ready for a transport.
func (p *Pipeline) Serialize(ctx context.Context, datum interface{}, s schema.Schema) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: schema is nil", ErrInvalidInput)
	}

	svid, err := p.cache.GetOrRegister(ctx, s)
	if err != nil {
		return nil, err
	}

	encoded, err := s.Encode(datum)
	if err != nil {
		return nil, err
	}

	compressed, err := p.compressor.Compress(p.cfg.CompressionCode, encoded)
	if err != nil {
		return nil, err
	}

	return wire.Encode(svid, p.cfg.CompressionCode, compressed), nil
}

// EnsureRegistered resolves s to an SVID, registering it if necessary,
// without encoding a datum. Transport adapters call this eagerly at setup
// time for a producer's value schema, so a registry outage or a rejected
// schema evolution surfaces as a construction error instead of on the
// first published message.
func (p *Pipeline) EnsureRegistered(ctx context.Context, s schema.Schema) (registry.SVID, error) {
	if s == nil {
		return registry.SVID{}, fmt.Errorf("%w: schema is nil", ErrInvalidInput)
	}
	return p.cache.GetOrRegister(ctx, s)
}

// Deserialize reverses Serialize: it unframes data, resolves the writer
// schema by SVID from the cache, decompresses, and decodes. It returns the
// decoded datum and the writer schema it was decoded with.
func (p *Pipeline) Deserialize(ctx context.Context, data []byte) (interface{}, schema.Schema, error) {
	svid, compressionCode, payload, err := wire.Decode(data)
	if err != nil {
		if p.cfg.Fallback != nil {
			if datum, ferr := p.cfg.Fallback.Decode(data, p.cfg.Fallback); ferr == nil {
				return datum, p.cfg.Fallback, nil
			}
		}
		return nil, nil, err
	}

	writer, err := p.cache.GetByID(ctx, svid)
	if err != nil {
		if p.cfg.Fallback != nil {
			return p.decodeWith(p.cfg.Fallback, compressionCode, payload)
		}
		return nil, nil, err
	}

	datum, _, decodeErr := p.decodeWith(writer, compressionCode, payload)
	if decodeErr != nil && p.cfg.Fallback != nil {
		return p.decodeWith(p.cfg.Fallback, compressionCode, payload)
	}
	return datum, writer, decodeErr
}

func (p *Pipeline) decodeWith(s schema.Schema, compressionCode byte, payload []byte) (interface{}, schema.Schema, error) {
	decompressed, err := p.compressor.Decompress(compressionCode, payload)
	if err != nil {
		return nil, nil, err
	}

	datum, err := s.Decode(decompressed, s)
	if err != nil {
		return nil, nil, err
	}

	return datum, s, nil
}
