package compress

import (
	"fmt"

	"github.com/arloliu/meshpack/format"
)

// Compressor compresses an encoder body.
//
// The returned slice is owned by the caller. The input is not modified, except that
// the None codec returns it as-is.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions and reports the type recorded in stream headers.
type Codec interface {
	Compressor
	Decompressor

	// Type returns the compression type written to the stream header.
	Type() format.CompressionType
}

// CreateCodec creates a codec of the given type at its default level.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

// ForSpeed returns the codec used for a body at the given speed tier.
// Speeds outside [0, 10] are clamped.
func ForSpeed(speed int, enabled bool) Codec {
	if !enabled {
		return NewNoOpCompressor()
	}

	switch {
	case speed <= 1:
		return NewZstdCompressorLevel(ZstdLevelBest)
	case speed <= 3:
		return NewZstdCompressorLevel(ZstdLevelDefault)
	case speed <= 5:
		return NewS2CompressorBetter()
	case speed <= 6:
		return NewS2Compressor()
	case speed < format.MaxSpeed:
		return NewLZ4Compressor()
	default:
		return NewNoOpCompressor()
	}
}
