package compression

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoneRoundTrip(t *testing.T) {
	reg := NewRegistry()
	payload := []byte("uncompressed bytes")

	compressed, err := reg.Compress(NoneCode, payload)
	require.NoError(t, err)
	assert.Equal(t, payload, compressed)

	decompressed, err := reg.Decompress(NoneCode, compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, decompressed)
}

func TestZlibRoundTrip(t *testing.T) {
	reg := NewRegistry()
	payload := []byte("the quick brown fox jumps over the lazy dog, repeatedly, to give zlib something to compress")

	compressed, err := reg.Compress(ZlibCode, payload)
	require.NoError(t, err)
	assert.NotEqual(t, payload, compressed)

	decompressed, err := reg.Decompress(ZlibCode, compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, decompressed)
}

func TestUnsupportedCode(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Compress(0xFF, []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedCompression))

	_, err = reg.Decompress(0xFF, []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedCompression))
}

func TestCodeForName(t *testing.T) {
	code, err := CodeForName("NONE")
	require.NoError(t, err)
	assert.Equal(t, NoneCode, code)

	code, err = CodeForName("ZLIB")
	require.NoError(t, err)
	assert.Equal(t, ZlibCode, code)

	_, err = CodeForName("GZIP")
	require.Error(t, err)
}

func TestRegisterCustomAlgorithm(t *testing.T) {
	reg := NewRegistry()
	reg.Register(0x10, noneAlgorithm{})

	alg, err := reg.Get(0x10)
	require.NoError(t, err)
	assert.NotNil(t, alg)
}
