package compress

import "github.com/arloliu/meshpack/format"

// ZstdLevel selects the zstd effort.
type ZstdLevel uint8

const (
	ZstdLevelFastest ZstdLevel = iota + 1
	ZstdLevelDefault
	ZstdLevelBetter
	ZstdLevelBest
)

// ZstdCompressor compresses with Zstandard at a fixed level.
//
// It is used at the slow speed tiers where a smaller body is worth the CPU.
type ZstdCompressor struct {
	level ZstdLevel
}

var _ Codec = ZstdCompressor{}

// NewZstdCompressor creates a zstd codec at the default level.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{level: ZstdLevelDefault}
}

// NewZstdCompressorLevel creates a zstd codec at the given level.
// Unknown levels fall back to the default level.
func NewZstdCompressorLevel(level ZstdLevel) ZstdCompressor {
	if level < ZstdLevelFastest || level > ZstdLevelBest {
		level = ZstdLevelDefault
	}

	return ZstdCompressor{level: level}
}

// Type implements Codec.
func (ZstdCompressor) Type() format.CompressionType { return format.CompressionZstd }

// Level returns the configured level.
func (c ZstdCompressor) Level() ZstdLevel { return c.level }
