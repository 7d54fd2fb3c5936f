//go:build cgo && gozstd

package compress

import "github.com/valyala/gozstd"

var gozstdLevels = map[ZstdLevel]int{
	ZstdLevelFastest: 1,
	ZstdLevelDefault: 3,
	ZstdLevelBetter:  7,
	ZstdLevelBest:    19,
}

// Compress compresses data with libzstd at the configured level.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	level, ok := gozstdLevels[c.level]
	if !ok {
		level = gozstdLevels[ZstdLevelDefault]
	}

	return gozstd.CompressLevel(nil, data, level), nil
}

// Decompress decompresses zstd data with libzstd.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
