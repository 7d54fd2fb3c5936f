package mesh

import (
	"fmt"

	"github.com/arloliu/meshpack/buffer"
	"github.com/arloliu/meshpack/config"
	"github.com/arloliu/meshpack/errs"
	"github.com/arloliu/meshpack/format"
	"github.com/arloliu/meshpack/geometry"
	"github.com/arloliu/meshpack/internal/attrcodec"
	"github.com/arloliu/meshpack/internal/pool"
	"github.com/arloliu/meshpack/internal/stream"
	"github.com/arloliu/meshpack/section"
)

// SequentialEncoder writes face indices verbatim followed by every attribute.
type SequentialEncoder struct {
	m *geometry.Mesh
}

// NewSequentialEncoder creates a sequential mesh encoder.
func NewSequentialEncoder() *SequentialEncoder {
	return &SequentialEncoder{}
}

// SetMesh binds the mesh to encode.
func (e *SequentialEncoder) SetMesh(m *geometry.Mesh) {
	e.m = m
}

// Method returns format.MeshSequential.
func (e *SequentialEncoder) Method() format.EncodingMethod {
	return format.MeshSequential
}

// Encode appends the encoded mesh to out.
//
// Body layout: every face corner as a zig-zag varint delta to the previous corner,
// then the attributes in point order.
func (e *SequentialEncoder) Encode(opts *config.Options, out *buffer.Buffer) error {
	if err := checkMesh(e.m); err != nil {
		return err
	}

	body := pool.GetBodyBuffer()
	defer pool.PutBodyBuffer(body)

	var prev int64
	for _, f := range e.m.Faces() {
		for _, v := range f {
			body.AppendVarint(int64(v) - prev)
			prev = int64(v)
		}
	}

	quantized, err := attrcodec.EncodeAll(body, e.m.PointCloud(), opts, nil)
	if err != nil {
		return err
	}

	h := newHeader(e.m, format.MeshSequential)
	h.SetFlag(section.FlagQuantized, quantized)

	return stream.Finish(out, h, body.Bytes(), opts)
}

func checkMesh(m *geometry.Mesh) error {
	if m == nil {
		return fmt.Errorf("%w: no mesh bound", errs.ErrInvalidInput)
	}
	if m.NumFaces() == 0 {
		return fmt.Errorf("%w: mesh has no faces", errs.ErrEmptyGeometry)
	}

	return nil
}

func newHeader(m *geometry.Mesh, method format.EncodingMethod) *section.Header {
	pc := m.PointCloud()
	h := section.NewHeader(format.KindMesh, method)
	h.NumPoints = uint32(pc.NumPoints())         //nolint:gosec
	h.NumFaces = uint32(m.NumFaces())            //nolint:gosec
	h.NumAttributes = uint16(pc.NumAttributes()) //nolint:gosec

	return h
}
