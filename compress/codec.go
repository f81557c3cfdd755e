package compress

import "fmt"

// Compressor provides compression for a table entry's or record member's
// encoded payload, applied after the wire codec and before the bytes are
// framed by a bounded sub-writer.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor mirrors Compressor for the read path. Separate interfaces
// allow asymmetric implementations whose compression and decompression
// paths have different performance characteristics or resource needs.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original
	// result. Returns an error if the data is corrupted or uses an
	// incompatible format.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats summarizes one compression operation, useful for
// deciding whether a given payload is worth compressing at all.
type CompressionStats struct {
	Algorithm Type

	OriginalSize   int64
	CompressedSize int64

	CompressionTimeNs   int64
	DecompressionTimeNs int64
}

// CompressionRatio returns compressed size / original size. Values below
// 1.0 indicate successful compression.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec builds a Codec for the given algorithm. target names the
// caller's usage, folded into the error message on an unknown type.
func CreateCodec(compressionType Type, target string) (Codec, error) {
	switch compressionType {
	case None:
		return NewNoOpCompressor(), nil
	case Zstd:
		return NewZstdCompressor(), nil
	case S2:
		return NewS2Compressor(), nil
	case LZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[Type]Codec{
	None: NewNoOpCompressor(),
	Zstd: NewZstdCompressor(),
	S2:   NewS2Compressor(),
	LZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType Type) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
