package compress

import "github.com/arloliu/meshpack/format"

// NoOpCompressor passes data through unchanged.
//
// It is used at the fastest speed tier and whenever built-in attribute compression
// is disabled.
type NoOpCompressor struct{}

var _ Codec = NoOpCompressor{}

// NewNoOpCompressor creates a pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Type implements Codec.
func (NoOpCompressor) Type() format.CompressionType { return format.CompressionNone }

// Compress returns data without copying. The result shares memory with the input.
func (NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data without copying.
func (NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
