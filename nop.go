// Package nop implements a compact, self-describing binary serialization
// format: every encoded value is headed by a single prefix byte identifying
// its shape, so a decoder can skip or introspect data it doesn't statically
// know about without a side-channel schema.
//
// # Core features
//
//   - Smallest-prefix integer encoding (an in-range uint32 costs as little
//     as one byte, never the full fixed width)
//   - Self-describing containers (array, binary, string, map) and sum types
//     (optional, result, variant) that need no external schema to decode
//   - A versioned table encoding (TAB) for forward/backward-compatible
//     structures, with unknown fields skipped and missing fields left at
//     their zero value
//   - A structural fungibility relation deciding whether two differently
//     shaped declared types are wire-compatible, used to gate decoding by a
//     protocol package before a value type's own decode logic ever runs
//   - Optional per-payload compression (None, Zstd, S2, LZ4) and pluggable
//     byte transports (in-memory buffer, file, stdio)
//
// # Package structure
//
// This package provides a thin Marshal/Unmarshal convenience layer around
// codec, record, table, and protocol. Callers who need record declarations,
// table declarations, or protocol gating should use those packages
// directly; this file only wires a caller-supplied encode/decode function
// to an in-memory byte buffer.
//
// Example, encoding a single uint32 value:
//
//	data, err := nop.Marshal(uint32(7), codec.EncodeUint32)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	got, err := nop.Unmarshal(data, codec.DecodeUint32)
package nop

import (
	"github.com/arloliu/nop/codec"
	"github.com/arloliu/nop/internal/options"
	"github.com/arloliu/nop/ioadapter"
)

// Marshal encodes value into a freshly allocated byte slice using encode,
// which is typically one of the codec package's Encode* functions or a
// caller-assembled function composing record.Encode/table.Encode.
//
// Parameters:
//   - value: the value to encode
//   - encode: the encoding function, e.g. codec.EncodeUint32
//
// Returns:
//   - []byte: the encoded bytes, owned by the caller
//   - error: any error returned by encode
func Marshal[T any](value T, encode func(w codec.Writer, v T) error) ([]byte, error) {
	buf := ioadapter.GetPooledBuffer()
	defer ioadapter.PutPooledBuffer(buf)

	if err := encode(buf, value); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Config holds MarshalWithOptions' tunable parameters. The zero Config is
// not usable directly; build one through WithInitialCapacity and friends.
type Config struct {
	initialCapacity int
}

// Option configures a Config, following the same functional-option shape
// internal/options provides for the teacher's encoder configs.
type Option = options.Option[*Config]

// WithInitialCapacity sets the starting capacity of the scratch buffer
// Marshal writes into, avoiding incremental regrowth when the caller
// already knows roughly how large the encoding will be.
func WithInitialCapacity(n int) Option {
	return options.NoError[*Config](func(c *Config) {
		c.initialCapacity = n
	})
}

// MarshalWithOptions is Marshal with explicit control over the scratch
// buffer's starting capacity instead of the shared pooled default.
//
// Parameters:
//   - value: the value to encode
//   - encode: the encoding function, e.g. codec.EncodeUint32
//   - opts: configuration, e.g. WithInitialCapacity(256)
//
// Returns:
//   - []byte: the encoded bytes, owned by the caller
//   - error: any error returned by encode or by applying opts
func MarshalWithOptions[T any](value T, encode func(w codec.Writer, v T) error, opts ...Option) ([]byte, error) {
	cfg := &Config{initialCapacity: ioadapter.DefaultBufferSize}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	buf := ioadapter.NewBuffer(cfg.initialCapacity)
	if err := encode(buf, value); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Unmarshal decodes data using decode, which is typically one of the codec
// package's Decode* functions or a caller-assembled function composing
// record.Decode/table.Decode.
//
// Parameters:
//   - data: the encoded bytes, e.g. from Marshal
//   - decode: the decoding function, e.g. codec.DecodeUint32
//
// Returns:
//   - T: the decoded value
//   - error: any error returned by decode, including a declared type's
//     match-set rejection of an unexpected prefix
func Unmarshal[T any](data []byte, decode func(r codec.Reader) (T, error)) (T, error) {
	buf := ioadapter.NewBufferFromBytes(data)

	return decode(buf.AsReader())
}
