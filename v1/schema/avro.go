package schema

import (
	"fmt"

	"github.com/linkedin/goavro/v2"
)

// avroSchema is a Schema backed by an Avro codec. The codec is parsed
// once, by NewAvro, and kept for the life of the value.
type avroSchema struct {
	name          string
	definition    string
	compatibility Compatibility
	codec         *goavro.Codec
}

// NewAvro constructs a Schema that encodes and decodes Avro datums.
// definition is the canonical Avro schema JSON text; it is parsed eagerly
// so that a malformed definition is rejected at construction time rather
// than on first use.
func NewAvro(name, definition string, compatibility Compatibility) (Schema, error) {
	codec, err := goavro.NewCodec(definition)
	if err != nil {
		return nil, fmt.Errorf("schema: parse avro definition for %q: %w", name, err)
	}
	return &avroSchema{
		name:          name,
		definition:    definition,
		compatibility: compatibilityOrDefault(compatibility),
		codec:         codec,
	}, nil
}

func (s *avroSchema) Name() string                   { return s.name }
func (s *avroSchema) Definition() string              { return s.definition }
func (s *avroSchema) Format() Format                  { return FormatAvro }
func (s *avroSchema) Compatibility() Compatibility    { return s.compatibility }

func (s *avroSchema) Encode(datum interface{}) ([]byte, error) {
	b, err := s.codec.BinaryFromNative(nil, datum)
	if err != nil {
		return nil, fmt.Errorf("schema: avro encode %q: %w", s.name, err)
	}
	return b, nil
}

func (s *avroSchema) Decode(data []byte, writer Schema) (interface{}, error) {
	writerCodec := s.codec
	if writer != nil && !Equivalent(writer, s) {
		w, ok := writer.(*avroSchema)
		if !ok {
			return nil, unsupportedFormatErr(writer.Format())
		}
		writerCodec = w.codec
	}

	native, remainder, err := writerCodec.NativeFromBinary(data)
	if err != nil {
		return nil, fmt.Errorf("schema: avro decode %q: %w", s.name, err)
	}
	if len(remainder) != 0 {
		return nil, fmt.Errorf("schema: avro decode %q: %d trailing bytes after datum", s.name, len(remainder))
	}
	return native, nil
}
