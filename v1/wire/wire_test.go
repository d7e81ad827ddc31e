package wire

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	svid := uuid.New()
	payload := []byte("hello schema registry")

	framed := Encode(svid, 0x05, payload)

	gotSVID, gotCode, gotPayload, err := Decode(framed)
	require.NoError(t, err)
	assert.Equal(t, svid, gotSVID)
	assert.Equal(t, byte(0x05), gotCode)
	assert.Equal(t, payload, gotPayload)
}

func TestEncodeFrameLayout(t *testing.T) {
	svid := uuid.New()
	framed := Encode(svid, 0x00, []byte{0xAA})

	require.Len(t, framed, HeaderSize+1)
	assert.Equal(t, HeaderByte, framed[0])
	assert.Equal(t, byte(0x00), framed[1])
	assert.Equal(t, svid[:], framed[2:18])
	assert.Equal(t, []byte{0xAA}, framed[18:])
}

func TestDecodeTooShort(t *testing.T) {
	_, _, _, err := Decode(make([]byte, HeaderSize-1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedData))
}

func TestDecodeBadHeaderByte(t *testing.T) {
	frame := Encode(uuid.New(), 0x00, nil)
	frame[0] = 0x09

	_, _, _, err := Decode(frame)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedData))
}

func TestEncodeEmptyPayload(t *testing.T) {
	framed := Encode(uuid.New(), 0x00, nil)
	_, _, payload, err := Decode(framed)
	require.NoError(t, err)
	assert.Empty(t, payload)
}
