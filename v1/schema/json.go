package schema

// jsonSchema is a placeholder Schema for the JSON format. Per scope, this
// package does not implement JSON schema validation or codec support; a
// jsonSchema carries identity (name, definition, compatibility) so it can
// participate in registration and cache bookkeeping, but Encode/Decode
// always fail.
type jsonSchema struct {
	name          string
	definition    string
	compatibility Compatibility
}

// NewJSON constructs a Schema value that identifies a JSON-formatted
// schema for registration purposes. Its Encode and Decode methods return
// ErrUnsupportedFormat; only the Avro format has a working codec.
func NewJSON(name, definition string, compatibility Compatibility) Schema {
	return &jsonSchema{
		name:          name,
		definition:    definition,
		compatibility: compatibilityOrDefault(compatibility),
	}
}

func (s *jsonSchema) Name() string                { return s.name }
func (s *jsonSchema) Definition() string           { return s.definition }
func (s *jsonSchema) Format() Format               { return FormatJSON }
func (s *jsonSchema) Compatibility() Compatibility { return s.compatibility }

func (s *jsonSchema) Encode(datum interface{}) ([]byte, error) {
	return nil, unsupportedFormatErr(FormatJSON)
}

func (s *jsonSchema) Decode(data []byte, writer Schema) (interface{}, error) {
	return nil, unsupportedFormatErr(FormatJSON)
}
