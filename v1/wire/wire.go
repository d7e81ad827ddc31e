// Package wire implements the bit-exact binary framing that prefixes every
// payload handed to a transport with registry metadata: a magic/version
// byte, a compression wire code, and the 16-byte schema-version identifier
// (SVID) the payload was encoded under.
//
// Frame layout, in order:
//
//	byte 0      header byte, fixed 0x03
//	byte 1      compression wire code
//	bytes 2-17  SVID, 16 raw bytes
//	bytes 18+   payload
package wire

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// HeaderByte is the fixed magic/version byte that must be the first byte of
// every frame.
const HeaderByte byte = 0x03

// HeaderSize is the number of bytes preceding the payload: 1 header byte +
// 1 compression byte + 16 SVID bytes.
const HeaderSize = 18

// ErrMalformedData is returned when a frame is too short or its header byte
// does not match HeaderByte.
var ErrMalformedData = errors.New("wire: malformed data")

// Encode concatenates the header byte, compressionCode, the 16 raw bytes of
// svid, and payload into a single frame. Encode is total: it never fails.
func Encode(svid uuid.UUID, compressionCode byte, payload []byte) []byte {
	out := make([]byte, HeaderSize+len(payload))
	out[0] = HeaderByte
	out[1] = compressionCode
	copy(out[2:18], svid[:])
	copy(out[18:], payload)
	return out
}

// Decode splits a frame back into its SVID, compression code, and payload.
// It fails with ErrMalformedData if b is shorter than HeaderSize or its
// header byte does not equal HeaderByte. Decode does not validate the
// compression code; that is the compression registry's job.
func Decode(b []byte) (svid uuid.UUID, compressionCode byte, payload []byte, err error) {
	if len(b) < HeaderSize {
		return uuid.UUID{}, 0, nil, fmt.Errorf("%w: frame too short, got %d bytes, need at least %d", ErrMalformedData, len(b), HeaderSize)
	}
	if b[0] != HeaderByte {
		return uuid.UUID{}, 0, nil, fmt.Errorf("%w: header byte mismatch, expected 0x%02x, got 0x%02x", ErrMalformedData, HeaderByte, b[0])
	}

	compressionCode = b[1]
	copy(svid[:], b[2:18])
	payload = b[18:]
	return svid, compressionCode, payload, nil
}
