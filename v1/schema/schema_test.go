package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userSchemaDef = `{"type":"record","name":"User","fields":[{"name":"id","type":"long"},{"name":"name","type":"string"}]}`

func TestAvroEncodeDecodeRoundTrip(t *testing.T) {
	s, err := NewAvro("User", userSchemaDef, CompatibilityBackward)
	require.NoError(t, err)

	datum := map[string]interface{}{"id": int64(42), "name": "ada"}

	encoded, err := s.Encode(datum)
	require.NoError(t, err)

	decoded, err := s.Decode(encoded, s)
	require.NoError(t, err)
	assert.Equal(t, datum, decoded)
}

func TestAvroDefaultsCompatibility(t *testing.T) {
	s, err := NewAvro("User", userSchemaDef, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultCompatibility, s.Compatibility())
}

func TestAvroInvalidDefinitionRejectedAtConstruction(t *testing.T) {
	_, err := NewAvro("Broken", `not valid avro json`, CompatibilityNone)
	require.Error(t, err)
}

func TestAvroDecodeTrailingBytesRejected(t *testing.T) {
	s, err := NewAvro("User", userSchemaDef, CompatibilityNone)
	require.NoError(t, err)

	encoded, err := s.Encode(map[string]interface{}{"id": int64(1), "name": "x"})
	require.NoError(t, err)

	_, err = s.Decode(append(encoded, 0xFF), s)
	require.Error(t, err)
}

func TestJSONEncodeDecodeUnsupported(t *testing.T) {
	s := NewJSON("Event", `{"type":"object"}`, CompatibilityNone)

	_, err := s.Encode(map[string]interface{}{"a": 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = s.Decode([]byte("{}"), s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestEquivalent(t *testing.T) {
	a, err := NewAvro("User", userSchemaDef, CompatibilityBackward)
	require.NoError(t, err)
	b, err := NewAvro("User", userSchemaDef, CompatibilityFull)
	require.NoError(t, err)

	assert.True(t, Equivalent(a, b), "equivalence ignores compatibility mode")

	c, err := NewAvro("User", `{"type":"record","name":"User","fields":[{"name":"id","type":"long"}]}`, CompatibilityBackward)
	require.NoError(t, err)
	assert.False(t, Equivalent(a, c), "different definitions are not equivalent")

	d := NewJSON("User", userSchemaDef, CompatibilityBackward)
	assert.False(t, Equivalent(a, d), "different formats are not equivalent even with identical name/definition")
}
