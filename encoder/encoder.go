// Package encoder selects the encoding algorithm for a point cloud or mesh and drives
// it to produce an encoded stream.
//
// The selector infers a method from the geometry's shape and the configured speed,
// taking an explicitly requested method into account as follows:
//
//   - Point clouds use the k-d tree encoder when it was requested, or when the speed
//     is below the maximum tier and the cloud has a single attribute, provided that
//     attribute is a 3-component position of uint32 or quantized float32. A k-d tree
//     request the cloud cannot satisfy fails. An explicit sequential request does not
//     prevent automatic k-d tree selection. Everything else is encoded sequentially.
//   - Meshes use the requested method when one is set and reject unknown values.
//     Otherwise they use edgebreaker unless the speed is at the maximum tier, in
//     which case they are encoded sequentially.
//
// Example:
//
//	enc, err := encoder.New(mesh, config.WithSpeed(3, 3), config.WithAttributeQuantization(0, 11))
//	if err != nil {
//	    return err
//	}
//	buf := buffer.New(0)
//	if err := enc.EncodeToBuffer(buf); err != nil {
//	    return err
//	}
package encoder

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/meshpack/buffer"
	"github.com/arloliu/meshpack/config"
	"github.com/arloliu/meshpack/errs"
	"github.com/arloliu/meshpack/format"
	"github.com/arloliu/meshpack/geometry"
	"github.com/arloliu/meshpack/pointcloud"
)

// Encoder chooses and drives the concrete encoder for one geometry.
//
// The geometry is referenced, not copied, and must not change during EncodeToBuffer.
// An Encoder is not safe for concurrent use.
type Encoder struct {
	pc   *geometry.PointCloud
	mesh *geometry.Mesh

	opts      *config.Options
	factories Factories
}

// New creates an encoder over g configured with opts.
//
// g may be nil; EncodeToBuffer then fails with errs.ErrInvalidInput.
func New(g geometry.Geometry, opts ...config.Option) (*Encoder, error) {
	o, err := config.New(opts...)
	if err != nil {
		return nil, err
	}

	e := &Encoder{opts: o, factories: DefaultFactories()}
	switch v := g.(type) {
	case *geometry.Mesh:
		if v != nil {
			e.mesh = v
			e.pc = v.PointCloud()
		}
	case *geometry.PointCloud:
		e.pc = v
	}

	return e, nil
}

// NewForPointCloud creates an encoder with default options over a point cloud.
func NewForPointCloud(pc *geometry.PointCloud) *Encoder {
	return &Encoder{pc: pc, opts: config.NewDefault(), factories: DefaultFactories()}
}

// NewForMesh creates an encoder with default options over a mesh.
func NewForMesh(m *geometry.Mesh) *Encoder {
	e := &Encoder{opts: config.NewDefault(), factories: DefaultFactories()}
	if m != nil {
		e.mesh = m
		e.pc = m.PointCloud()
	}

	return e
}

// SetFactories replaces the constructors of the concrete encoders.
func (e *Encoder) SetFactories(f Factories) {
	e.factories = f.withDefaults()
}

// Options returns the options used by the next EncodeToBuffer call.
func (e *Encoder) Options() *config.Options {
	return e.opts
}

// Reset restores default options.
func (e *Encoder) Reset() {
	e.opts = config.NewDefault()
}

// SetOptions replaces the options with a copy of opts.
func (e *Encoder) SetOptions(opts *config.Options) {
	if opts == nil {
		e.Reset()
		return
	}
	e.opts = opts.Clone()
}

// SetSpeedOptions sets the encoding and decoding speed, each -1 or in [0, 10].
func (e *Encoder) SetSpeedOptions(encodingSpeed, decodingSpeed int) error {
	return e.opts.SetSpeed(encodingSpeed, decodingSpeed)
}

// SetEncodingMethod forces the encoding method. format.MethodUnset restores selection.
func (e *Encoder) SetEncodingMethod(m format.EncodingMethod) {
	e.opts.SetEncodingMethod(m)
}

// SetAttributeQuantization sets the quantization bits of attribute id.
func (e *Encoder) SetAttributeQuantization(id int32, bits int) error {
	return e.opts.SetQuantizationBits(id, bits)
}

// SetUseBuiltInAttributeCompression toggles compression of the encoded body.
func (e *Encoder) SetUseBuiltInAttributeCompression(enabled bool) {
	e.opts.SetBuiltInAttributeCompression(enabled)
}

// SetAttributePredictionScheme sets the prediction scheme of attribute id.
func (e *Encoder) SetAttributePredictionScheme(id int32, p format.PredictionScheme) error {
	return e.opts.SetPredictionScheme(id, p)
}

// EncodeToBuffer encodes the geometry and appends the stream to buf.
//
// Selection failures are reported before any encoder runs and leave buf untouched.
// Errors from the concrete encoder are returned unchanged.
//
// Returns:
//   - errs.ErrInvalidInput: no geometry is bound or buf is nil
//   - errs.ErrInvalidEncodingMethod: the requested method cannot encode the geometry
func (e *Encoder) EncodeToBuffer(buf *buffer.Buffer) error {
	if e.pc == nil {
		return fmt.Errorf("%w: no geometry bound", errs.ErrInvalidInput)
	}
	if buf == nil {
		return fmt.Errorf("%w: nil output buffer", errs.ErrInvalidInput)
	}

	if e.mesh == nil {
		return e.encodePointCloud(buf)
	}

	return e.encodeMesh(buf)
}

func (e *Encoder) encodePointCloud(buf *buffer.Buffer) error {
	method := e.opts.EncodingMethod()
	speed := e.opts.Speed()
	numAttrs := e.pc.NumAttributes()

	kdTree := false
	if method == format.PointCloudKdTree || (speed < format.MaxSpeed && numAttrs == 1) {
		if err := pointcloud.Supports(e.pc, e.opts); err != nil {
			if method == format.PointCloudKdTree {
				Logger().Debug("k-d tree encoding rejected",
					zap.Int("attributes", numAttrs),
					zap.Error(err))

				return fmt.Errorf("%w: %s: %w", errs.ErrInvalidEncodingMethod,
					format.PointCloudKdTree.Name(format.KindPointCloud), err)
			}
		} else {
			kdTree = true
		}
	}

	var enc PointCloudEncoder
	selected := format.PointCloudSequential
	if kdTree {
		selected = format.PointCloudKdTree
		enc = e.factories.PointCloudKdTree()
	} else {
		enc = e.factories.PointCloudSequential()
	}

	Logger().Debug("selected point cloud encoder",
		zap.String("method", selected.Name(format.KindPointCloud)),
		zap.Int("requested", int(method)),
		zap.Int("speed", speed),
		zap.Int("attributes", numAttrs))

	enc.SetPointCloud(e.pc)

	return enc.Encode(e.opts, buf)
}

func (e *Encoder) encodeMesh(buf *buffer.Buffer) error {
	method := e.opts.EncodingMethod()
	speed := e.opts.Speed()

	if method == format.MethodUnset {
		if speed == format.MaxSpeed {
			method = format.MeshSequential
		} else {
			method = format.MeshEdgebreaker
		}
	}

	var enc MeshEncoder
	switch method { //nolint:exhaustive
	case format.MeshEdgebreaker:
		enc = e.factories.MeshEdgebreaker()
	case format.MeshSequential:
		enc = e.factories.MeshSequential()
	default:
		Logger().Debug("unknown mesh encoding method", zap.Int("requested", int(method)))

		return fmt.Errorf("%w: mesh method %d", errs.ErrInvalidEncodingMethod, method)
	}

	Logger().Debug("selected mesh encoder",
		zap.String("method", method.Name(format.KindMesh)),
		zap.Int("requested", int(e.opts.EncodingMethod())),
		zap.Int("speed", speed),
		zap.Int("faces", e.mesh.NumFaces()))

	enc.SetMesh(e.mesh)

	return enc.Encode(e.opts, buf)
}
