// Package schema defines the Schema abstraction: a named, versioned codec
// with an associated compatibility mode. Two schemas are equivalent iff
// their (format, name, definition) triples match exactly.
package schema

import (
	"errors"
	"fmt"
)

// Format identifies the serialization format a Schema encodes datums in.
type Format string

const (
	FormatAvro Format = "AVRO"
	FormatJSON Format = "JSON"
)

// Compatibility is the evolution rule the registry enforces when a new
// version of a schema with the same name is registered.
type Compatibility string

const (
	CompatibilityNone         Compatibility = "NONE"
	CompatibilityDisabled     Compatibility = "DISABLED"
	CompatibilityBackward     Compatibility = "BACKWARD"
	CompatibilityBackwardAll  Compatibility = "BACKWARD_ALL"
	CompatibilityForward      Compatibility = "FORWARD"
	CompatibilityForwardAll   Compatibility = "FORWARD_ALL"
	CompatibilityFull         Compatibility = "FULL"
	CompatibilityFullAll      Compatibility = "FULL_ALL"
)

// DefaultCompatibility is used when a caller does not specify one.
const DefaultCompatibility = CompatibilityBackward

// Schema is a named codec for one wire representation of a data shape. A
// Schema is immutable once constructed; evolving it means constructing a
// new Schema with the same Name and a different Definition.
type Schema interface {
	// Name identifies this schema across versions. Two schemas with the
	// same Name are different versions of the same logical schema.
	Name() string

	// Definition is the canonical textual representation used for
	// equivalence comparison and registration.
	Definition() string

	// Format reports the wire format this schema encodes.
	Format() Format

	// Compatibility reports the evolution rule to enforce when this
	// schema is registered.
	Compatibility() Compatibility

	// Encode serializes datum into this schema's wire representation.
	Encode(datum interface{}) ([]byte, error)

	// Decode deserializes data, written under writer, using this schema
	// (the reader schema). Passing the same Schema as both writer and
	// reader is the common case; passing a different writer schema reads
	// data written under another schema version. The Avro implementation
	// decodes with the writer's codec, so the datum has the writer's
	// shape; it is not projected onto the reader schema.
	Decode(data []byte, writer Schema) (interface{}, error)
}

// Equivalent reports whether a and b have the same format, name, and
// definition, which is the equivalence relation the cache coordinator and
// registry gateway use to decide whether a schema is already registered.
func Equivalent(a, b Schema) bool {
	return a.Format() == b.Format() && a.Name() == b.Name() && a.Definition() == b.Definition()
}

func compatibilityOrDefault(c Compatibility) Compatibility {
	if c == "" {
		return DefaultCompatibility
	}
	return c
}

// ErrUnsupportedFormat is returned by Encode and Decode for formats this
// package does not implement a codec for.
var ErrUnsupportedFormat = errors.New("schema: unsupported format")

func unsupportedFormatErr(f Format) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}
