package pointcloud

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

// SequentialEncoder writes every attribute of a point cloud in point order.
type SequentialEncoder struct {
	pc *geometry.PointCloud
}

// NewSequentialEncoder creates a sequential point cloud encoder.
func NewSequentialEncoder() *SequentialEncoder {
	return &SequentialEncoder{}
}

// SetPointCloud binds the point cloud to encode.
func (e *SequentialEncoder) SetPointCloud(pc *geometry.PointCloud) {
	e.pc = pc
}

// Method returns format.PointCloudSequential.
func (e *SequentialEncoder) Method() format.EncodingMethod {
	return format.PointCloudSequential
}

// Encode appends the encoded point cloud to out.
func (e *SequentialEncoder) Encode(opts *config.Options, out *buffer.Buffer) error {
	if err := checkPointCloud(e.pc); err != nil {
		return err
	}

	body := pool.GetBodyBuffer()
	defer pool.PutBodyBuffer(body)

	quantized, err := attrcodec.EncodeAll(body, e.pc, opts, nil)
	if err != nil {
		return err
	}

	h := newHeader(e.pc, format.PointCloudSequential)
	h.SetFlag(section.FlagQuantized, quantized)

	return stream.Finish(out, h, body.Bytes(), opts)
}

func checkPointCloud(pc *geometry.PointCloud) error {
	if pc == nil {
		return fmt.Errorf("%w: no point cloud bound", errs.ErrInvalidInput)
	}
	if pc.NumAttributes() == 0 || pc.NumPoints() == 0 {
		return fmt.Errorf("%w: %d attributes, %d points", errs.ErrEmptyGeometry, pc.NumAttributes(), pc.NumPoints())
	}

	return nil
}

func newHeader(pc *geometry.PointCloud, method format.EncodingMethod) *section.Header {
	h := section.NewHeader(format.KindPointCloud, method)
	h.NumPoints = uint32(pc.NumPoints())         //nolint:gosec
	h.NumAttributes = uint16(pc.NumAttributes()) //nolint:gosec

	return h
}
