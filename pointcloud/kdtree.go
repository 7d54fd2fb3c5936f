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

// KdTreeEncoder compresses a point cloud holding a single 3-component position
// attribute by recursively splitting its bounding box.
//
// Body layout:
//
//	transform(1) [quantization params] leafSize(uvarint)
//	min[3](uvarint) max[3](uvarint)
//	tree
//
// Each inner node writes the number of points in its lower half as a uvarint and
// recurses into the lower then the upper half. A leaf writes every point as offsets
// from the node's lower corner.
type KdTreeEncoder struct {
	pc *geometry.PointCloud
}

// NewKdTreeEncoder creates a k-d tree point cloud encoder.
func NewKdTreeEncoder() *KdTreeEncoder {
	return &KdTreeEncoder{}
}

// SetPointCloud binds the point cloud to encode.
func (e *KdTreeEncoder) SetPointCloud(pc *geometry.PointCloud) {
	e.pc = pc
}

// Method returns format.PointCloudKdTree.
func (e *KdTreeEncoder) Method() format.EncodingMethod {
	return format.PointCloudKdTree
}

// Supports reports whether the k-d tree encoder can encode pc with opts.
// It requires a single position attribute with 3 components that is either uint32
// or float32 with quantization configured.
func Supports(pc *geometry.PointCloud, opts *config.Options) error {
	if pc.NumAttributes() != 1 {
		return fmt.Errorf("%w: k-d tree needs exactly one attribute, have %d",
			errs.ErrUnsupportedDataType, pc.NumAttributes())
	}

	att := pc.Attribute(0)
	if att.Type() != format.AttributePosition || att.NumComponents() != 3 {
		return fmt.Errorf("%w: k-d tree needs a 3-component position, have %d-component %s",
			errs.ErrUnsupportedDataType, att.NumComponents(), att.Type())
	}

	switch att.DataType() { //nolint:exhaustive
	case format.DataTypeUint32:
		return nil
	case format.DataTypeFloat32:
		if opts.QuantizationBits(0, -1) <= 0 {
			return fmt.Errorf("%w: position attribute", errs.ErrMissingQuantization)
		}

		return nil
	}

	return fmt.Errorf("%w: k-d tree position of type %s", errs.ErrUnsupportedDataType, att.DataType())
}

// Encode appends the encoded point cloud to out.
func (e *KdTreeEncoder) Encode(opts *config.Options, out *buffer.Buffer) error {
	if err := checkPointCloud(e.pc); err != nil {
		return err
	}
	if err := Supports(e.pc, opts); err != nil {
		return err
	}

	att := e.pc.Attribute(0)
	n := att.NumPoints()

	coords, cleanup := pool.GetUint32Slice(att.NumValues())
	defer cleanup()

	body := pool.GetBodyBuffer()
	defer pool.PutBodyBuffer(body)

	quantized := att.DataType() == format.DataTypeFloat32
	if quantized {
		q, err := attrcodec.NewQuantization(att, opts.QuantizationBits(0, -1))
		if err != nil {
			return fmt.Errorf("attribute 0: %w", err)
		}
		_ = body.WriteByte(uint8(attrcodec.TransformQuantized))
		q.AppendTo(body)
		q.QuantizeAll(att, coords)
	} else {
		_ = body.WriteByte(uint8(attrcodec.TransformInteger))
		for p := range n {
			for c := range 3 {
				coords[p*3+c] = uint32(att.Int64At(p, c)) //nolint:gosec
			}
		}
	}

	leaf := leafSize(opts.Speed())
	body.AppendUvarint(uint64(leaf)) //nolint:gosec

	t := kdTree{coords: coords, dst: body, leaf: leaf}
	t.encode(n)

	h := newHeader(e.pc, format.PointCloudKdTree)
	h.SetFlag(section.FlagQuantized, quantized)

	return stream.Finish(out, h, body.Bytes(), opts)
}

// leafSize maps the speed to the largest number of points stored in one leaf.
// Slower speeds split further.
func leafSize(speed int) int {
	return min(max(speed, 0), format.MaxSpeed) + 1
}

type kdTree struct {
	coords []uint32
	dst    *buffer.Buffer
	leaf   int
}

func (t *kdTree) point(i int) []uint32 {
	return t.coords[i*3 : i*3+3]
}

func (t *kdTree) encode(n int) {
	idx, cleanup := pool.GetInt64Slice(n)
	defer cleanup()

	var lo, hi [3]uint32
	for i := range n {
		idx[i] = int64(i)
		p := t.point(i)
		for c := range 3 {
			if i == 0 || p[c] < lo[c] {
				lo[c] = p[c]
			}
			if i == 0 || p[c] > hi[c] {
				hi[c] = p[c]
			}
		}
	}
	for c := range 3 {
		t.dst.AppendUvarint(uint64(lo[c]))
	}
	for c := range 3 {
		t.dst.AppendUvarint(uint64(hi[c]))
	}

	t.node(idx, lo, hi)
}

func (t *kdTree) node(idx []int64, lo, hi [3]uint32) {
	axis := 0
	for c := 1; c < 3; c++ {
		if hi[c]-lo[c] > hi[axis]-lo[axis] {
			axis = c
		}
	}
	extent := hi[axis] - lo[axis]

	if len(idx) <= t.leaf || extent == 0 {
		for _, i := range idx {
			p := t.point(int(i))
			for c := range 3 {
				t.dst.AppendUvarint(uint64(p[c] - lo[c]))
			}
		}

		return
	}

	mid := lo[axis] + extent/2

	// Partition so that points with coordinate <= mid come first.
	split := 0
	for j := range idx {
		if t.point(int(idx[j]))[axis] <= mid {
			idx[split], idx[j] = idx[j], idx[split]
			split++
		}
	}
	t.dst.AppendUvarint(uint64(split)) //nolint:gosec

	leftHi := hi
	leftHi[axis] = mid
	rightLo := lo
	rightLo[axis] = mid + 1

	t.node(idx[:split], lo, leftHi)
	t.node(idx[split:], rightLo, hi)
}
