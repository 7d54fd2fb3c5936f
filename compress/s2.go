package compress

import (
	"github.com/arloliu/meshpack/format"
	"github.com/klauspost/compress/s2"
)

// S2Compressor compresses with S2, optionally in its "better" mode which spends
// more CPU for a smaller result.
type S2Compressor struct {
	better bool
}

var _ Codec = S2Compressor{}

// NewS2Compressor creates an S2 codec in default mode.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// NewS2CompressorBetter creates an S2 codec in "better" mode.
func NewS2CompressorBetter() S2Compressor {
	return S2Compressor{better: true}
}

// Type implements Codec.
func (S2Compressor) Type() format.CompressionType { return format.CompressionS2 }

// Compress compresses data with S2.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if c.better {
		return s2.EncodeBetter(nil, data), nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses S2 data. Both modes share the same block format.
func (S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
