// Package compression implements the pluggable compression registry used by
// the serializer/deserializer pipeline. Every algorithm is identified on the
// wire by a single byte, the same code the wire package writes into the
// frame header.
package compression

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
)

// Wire codes for the built-in algorithms.
const (
	NoneCode byte = 0x00
	ZlibCode byte = 0x05
)

// ErrUnsupportedCompression is returned when a wire code has no registered
// Algorithm.
var ErrUnsupportedCompression = errors.New("compression: unsupported compression code")

// Algorithm compresses and decompresses payloads for a single wire code.
type Algorithm interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

type noneAlgorithm struct{}

func (noneAlgorithm) Compress(data []byte) ([]byte, error)   { return data, nil }
func (noneAlgorithm) Decompress(data []byte) ([]byte, error) { return data, nil }

type zlibAlgorithm struct{}

func (zlibAlgorithm) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compression: zlib compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compression: zlib compress: %w", err)
	}
	return buf.Bytes(), nil
}

func (zlibAlgorithm) Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("compression: zlib decompress: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("compression: zlib decompress: %w", err)
	}
	return out, nil
}

// Registry looks up an Algorithm by its wire code. NewRegistry returns one
// pre-populated with NoneCode and ZlibCode; the zero value has no
// algorithms registered until Register is called.
type Registry struct {
	algorithms map[byte]Algorithm
}

// NewRegistry returns a Registry with the built-in NONE and ZLIB algorithms
// registered.
func NewRegistry() *Registry {
	r := &Registry{algorithms: make(map[byte]Algorithm)}
	r.Register(NoneCode, noneAlgorithm{})
	r.Register(ZlibCode, zlibAlgorithm{})
	return r
}

// Register adds or replaces the Algorithm for the given wire code.
func (r *Registry) Register(code byte, algo Algorithm) {
	if r.algorithms == nil {
		r.algorithms = make(map[byte]Algorithm)
	}
	r.algorithms[code] = algo
}

// Get returns the Algorithm registered for code, or ErrUnsupportedCompression
// if none is registered.
func (r *Registry) Get(code byte) (Algorithm, error) {
	algo, ok := r.algorithms[code]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnsupportedCompression, code)
	}
	return algo, nil
}

// Compress compresses data using the algorithm registered for code.
func (r *Registry) Compress(code byte, data []byte) ([]byte, error) {
	algo, err := r.Get(code)
	if err != nil {
		return nil, err
	}
	return algo.Compress(data)
}

// Decompress decompresses data using the algorithm registered for code.
func (r *Registry) Decompress(code byte, data []byte) ([]byte, error) {
	algo, err := r.Get(code)
	if err != nil {
		return nil, err
	}
	return algo.Decompress(data)
}

// CodeForName maps a configuration-facing compression name ("NONE", "ZLIB")
// to its wire code.
func CodeForName(name string) (byte, error) {
	switch name {
	case "", "NONE":
		return NoneCode, nil
	case "ZLIB":
		return ZlibCode, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedCompression, name)
	}
}
