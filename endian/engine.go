// Package endian provides the byte order used by meshpack streams.
//
// Every multi-byte value in a stream (header fields, raw attribute values,
// quantization parameters) is little-endian regardless of the host. Packages obtain
// the engine once and use both its read and append forms:
//
//	var le = endian.GetLittleEndianEngine()
//
//	buf = le.AppendUint32(buf, v)
//	v = le.Uint32(buf)
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used for stream data.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
