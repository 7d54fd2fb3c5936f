package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/arloliu/meshpack/format"
	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// maxLZ4Body bounds the decompressed size accepted by Decompress.
const maxLZ4Body = 256 * 1024 * 1024

const (
	lz4ModeStored byte = 0
	lz4ModeBlock  byte = 1
)

var errLZ4Size = errors.New("lz4: invalid decompressed size")

// LZ4Compressor compresses with LZ4 block compression.
//
// LZ4 blocks do not record their decompressed size, so Compress prefixes the block
// with it as a uvarint followed by a mode byte. Input that LZ4 cannot shrink is
// stored raw.
type LZ4Compressor struct{}

var _ Codec = LZ4Compressor{}

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Type implements Codec.
func (LZ4Compressor) Type() format.CompressionType { return format.CompressionLZ4 }

// Compress compresses data with a pooled lz4.Compressor.
func (LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, binary.MaxVarintLen64+1+lz4.CompressBlockBound(len(data)))
	prefix := binary.PutUvarint(dst, uint64(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[prefix+1:])
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(data) {
		dst[prefix] = lz4ModeStored
		return append(dst[:prefix+1], data...), nil
	}
	dst[prefix] = lz4ModeBlock

	return dst[:prefix+1+n], nil
}

// Decompress decompresses a block produced by Compress.
func (LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, prefix := binary.Uvarint(data)
	if prefix <= 0 || prefix >= len(data) || size > maxLZ4Body {
		return nil, errLZ4Size
	}

	mode, payload := data[prefix], data[prefix+1:]
	switch mode {
	case lz4ModeStored:
		if uint64(len(payload)) != size {
			return nil, errLZ4Size
		}
		return append([]byte(nil), payload...), nil
	case lz4ModeBlock:
		dst := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, dst)
		if err != nil {
			return nil, err
		}
		if uint64(n) != size {
			return nil, errLZ4Size
		}
		return dst, nil
	default:
		return nil, fmt.Errorf("lz4: unknown block mode %d", mode)
	}
}
