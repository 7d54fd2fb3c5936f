// Package buffer provides the append-only byte sink that encoders write their
// serialized output into.
//
// All multi-byte values are written in little-endian order. Varints use the
// encoding/binary varint layout.
package buffer

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/arloliu/meshpack/endian"
)

var le = endian.GetLittleEndianEngine()

// DefaultSize is the initial capacity of a buffer created by New.
const DefaultSize = 1024 * 16 // 16KiB

// Buffer is an append-only byte sink.
//
// The zero value is ready to use. A Buffer is not safe for concurrent use.
type Buffer struct {
	b []byte
}

// New creates a Buffer with the given initial capacity.
func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}

	return &Buffer{b: make([]byte, 0, capacity)}
}

// Bytes returns the written bytes. The slice aliases the buffer until the next write.
func (bb *Buffer) Bytes() []byte {
	return bb.b
}

// Len returns the number of written bytes.
func (bb *Buffer) Len() int {
	return len(bb.b)
}

// Cap returns the capacity of the underlying storage.
func (bb *Buffer) Cap() int {
	return cap(bb.b)
}

// Reset empties the buffer but keeps its storage.
func (bb *Buffer) Reset() {
	bb.b = bb.b[:0]
}

// Grow ensures that n more bytes can be appended without reallocating.
//
// Small buffers grow by DefaultSize, larger ones by 25% of their capacity.
func (bb *Buffer) Grow(n int) {
	if cap(bb.b)-len(bb.b) >= n {
		return
	}

	growBy := DefaultSize
	if cap(bb.b) > 4*DefaultSize {
		growBy = cap(bb.b) / 4
	}
	if growBy < n {
		growBy = n
	}

	nb := make([]byte, len(bb.b), len(bb.b)+growBy)
	copy(nb, bb.b)
	bb.b = nb
}

// Write appends data to the buffer. It never fails.
func (bb *Buffer) Write(data []byte) (int, error) {
	bb.b = append(bb.b, data...)
	return len(data), nil
}

// WriteByte appends a single byte. It never fails.
func (bb *Buffer) WriteByte(c byte) error {
	bb.b = append(bb.b, c)
	return nil
}

// WriteTo writes the buffer contents to w.
func (bb *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.b)
	return int64(n), err
}

func (bb *Buffer) AppendUint16(v uint16) {
	bb.b = le.AppendUint16(bb.b, v)
}

func (bb *Buffer) AppendUint32(v uint32) {
	bb.b = le.AppendUint32(bb.b, v)
}

func (bb *Buffer) AppendUint64(v uint64) {
	bb.b = le.AppendUint64(bb.b, v)
}

func (bb *Buffer) AppendFloat32(v float32) {
	bb.b = le.AppendUint32(bb.b, math.Float32bits(v))
}

// AppendUvarint appends v as an unsigned varint.
func (bb *Buffer) AppendUvarint(v uint64) {
	bb.b = binary.AppendUvarint(bb.b, v)
}

// AppendVarint appends v as a zig-zag signed varint.
func (bb *Buffer) AppendVarint(v int64) {
	bb.b = binary.AppendVarint(bb.b, v)
}
