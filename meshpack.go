// Package meshpack encodes point clouds and triangle meshes into compact binary
// streams.
//
// The encoder picks an algorithm for the geometry unless one is requested
// explicitly: a k-d tree or sequential layout for point clouds, edgebreaker or
// sequential connectivity for meshes. The speed tier trades compression ratio for
// latency and also selects the codec applied to the encoded body.
//
// # Core Features
//
//   - Geometry as a closed sum type: *geometry.PointCloud or *geometry.Mesh
//   - Per-attribute quantization and prediction options
//   - k-d tree position coding and edgebreaker-style connectivity traversal
//   - Body compression chosen by speed (Zstd, S2, LZ4 or none)
//   - Fixed 32-byte header with an xxHash64 body checksum
//
// # Basic Usage
//
// Encoding a mesh:
//
//	import "github.com/arloliu/meshpack"
//
//	pos, _ := geometry.NewAttribute(format.AttributePosition, 3, []float32{
//	    0, 0, 0,
//	    1, 0, 0,
//	    0, 1, 0,
//	})
//	m, _ := geometry.NewMesh(pos)
//	_ = m.AddFace(0, 1, 2)
//
//	data, err := meshpack.EncodeMesh(m,
//	    config.WithSpeed(3, 3),
//	    config.WithAttributeQuantization(0, 11),
//	)
//
// Inspecting an encoded stream:
//
//	info, err := meshpack.Inspect(data)
//	fmt.Println(info.Header.Method.Name(info.Header.Kind), info.BodySize)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the encoder package.
// For repeated encodes with changing options, or to substitute the concrete
// encoders, use the encoder package directly.
package meshpack

import (
	"fmt"

	"github.com/arloliu/meshpack/buffer"
	"github.com/arloliu/meshpack/compress"
	"github.com/arloliu/meshpack/config"
	"github.com/arloliu/meshpack/encoder"
	"github.com/arloliu/meshpack/geometry"
	"github.com/arloliu/meshpack/section"
)

// Encode encodes a point cloud or mesh with the given options.
func Encode(g geometry.Geometry, opts ...config.Option) ([]byte, error) {
	enc, err := encoder.New(g, opts...)
	if err != nil {
		return nil, err
	}

	buf := buffer.New(0)
	if err := enc.EncodeToBuffer(buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// EncodePointCloud encodes a point cloud with the given options.
func EncodePointCloud(pc *geometry.PointCloud, opts ...config.Option) ([]byte, error) {
	return Encode(pc, opts...)
}

// EncodeMesh encodes a mesh with the given options.
func EncodeMesh(m *geometry.Mesh, opts ...config.Option) ([]byte, error) {
	return Encode(m, opts...)
}

// Info describes an encoded stream.
type Info struct {
	Header section.Header
	// BodySize is the size of the body after decompression.
	BodySize int
}

// Inspect parses the header of an encoded stream, verifies the body checksum and
// decompresses the body.
func Inspect(data []byte) (Info, error) {
	h, err := section.ParseHeader(data)
	if err != nil {
		return Info{}, err
	}

	payload, err := h.Body(data)
	if err != nil {
		return Info{}, err
	}

	codec, err := compress.CreateCodec(h.Compression, "body")
	if err != nil {
		return Info{}, err
	}

	body, err := codec.Decompress(payload)
	if err != nil {
		return Info{}, fmt.Errorf("decompress %s body: %w", h.Compression, err)
	}

	return Info{Header: h, BodySize: len(body)}, nil
}
