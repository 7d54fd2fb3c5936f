// Package attrcodec encodes attribute values for the sequential and connectivity
// encoders.
//
// Each attribute is written as a descriptor followed by its values:
//
//	type(1) dataType(1) components(1) transform(1) prediction(1)
//	[quantization: bits(1) min(4*components) range(4)]
//	values
//
// Integer values, booleans and quantized floats are written per component as
// zig-zag varints, optionally as differences to the previous point. Unquantized
// floats are written raw.
package attrcodec

import (
	"fmt"

	"github.com/arloliu/meshpack/buffer"
	"github.com/arloliu/meshpack/config"
	"github.com/arloliu/meshpack/errs"
	"github.com/arloliu/meshpack/format"
	"github.com/arloliu/meshpack/geometry"
	"github.com/arloliu/meshpack/internal/pool"
)

// Transform identifies how attribute values were mapped before prediction.
type Transform uint8

const (
	TransformRaw       Transform = 0 // values copied as little-endian bytes
	TransformInteger   Transform = 1 // integer values as varints
	TransformQuantized Transform = 2 // floats quantized to integers
)

const (
	predictionNone       uint8 = 0
	predictionDifference uint8 = 1
)

// Result describes how an attribute was written.
type Result struct {
	Transform  Transform
	Prediction format.PredictionScheme
}

// ResolvePrediction returns the prediction scheme used for attribute id.
// An undefined scheme resolves to difference coding below the maximum speed tier.
func ResolvePrediction(opts *config.Options, id int32) format.PredictionScheme {
	p := opts.PredictionScheme(id, format.PredictionUndefined)
	if p != format.PredictionUndefined {
		return p
	}
	if opts.Speed() < format.MaxSpeed {
		return format.PredictionDifference
	}

	return format.PredictionNone
}

// Encode writes attribute id of a point cloud to dst.
//
// order lists the points in the sequence they are written; nil means natural order.
func Encode(dst *buffer.Buffer, att *geometry.Attribute, id int32, opts *config.Options, order []int) (Result, error) {
	dt := att.DataType()
	if dt == format.DataTypeInvalid || dt.Size() == 0 {
		return Result{}, fmt.Errorf("%w: attribute %d has type %s", errs.ErrUnsupportedDataType, id, dt)
	}

	res := Result{Transform: TransformRaw, Prediction: format.PredictionNone}
	bits := opts.QuantizationBits(id, -1)

	switch {
	case dt.IsFloat() && bits > 0:
		res.Transform = TransformQuantized
	case dt.IsFloat():
		res.Transform = TransformRaw
	default:
		res.Transform = TransformInteger
	}
	if res.Transform != TransformRaw {
		res.Prediction = ResolvePrediction(opts, id)
		if res.Prediction != format.PredictionNone && res.Prediction != format.PredictionDifference {
			return Result{}, fmt.Errorf("%w: attribute %d prediction scheme %d", errs.ErrInvalidOption, id, res.Prediction)
		}
	}

	_ = dst.WriteByte(uint8(att.Type())) //nolint:gosec
	_ = dst.WriteByte(uint8(dt))
	_ = dst.WriteByte(uint8(att.NumComponents())) //nolint:gosec
	_ = dst.WriteByte(uint8(res.Transform))
	if res.Prediction == format.PredictionDifference {
		_ = dst.WriteByte(predictionDifference)
	} else {
		_ = dst.WriteByte(predictionNone)
	}

	numPoints := att.NumPoints()
	comps := att.NumComponents()

	switch res.Transform {
	case TransformRaw:
		dst.Grow(len(att.Bytes()))
		for i := range numPoints {
			_, _ = dst.Write(att.ValueBytes(pointAt(order, i)))
		}

	case TransformQuantized:
		q, err := NewQuantization(att, bits)
		if err != nil {
			return Result{}, fmt.Errorf("attribute %d: %w", id, err)
		}
		q.AppendTo(dst)

		values, cleanup := pool.GetUint32Slice(att.NumValues())
		defer cleanup()
		q.QuantizeAll(att, values)

		writeInts(dst, numPoints, comps, order, res.Prediction, func(p, c int) int64 {
			return int64(values[p*comps+c])
		})

	case TransformInteger:
		writeInts(dst, numPoints, comps, order, res.Prediction, att.Int64At)
	}

	return res, nil
}

// EncodeAll writes every attribute of pc in id order and reports whether any of
// them was quantized.
func EncodeAll(dst *buffer.Buffer, pc *geometry.PointCloud, opts *config.Options, order []int) (bool, error) {
	quantized := false
	for i := range pc.NumAttributes() {
		res, err := Encode(dst, pc.Attribute(i), int32(i), opts, order) //nolint:gosec
		if err != nil {
			return false, err
		}
		quantized = quantized || res.Transform == TransformQuantized
	}

	return quantized, nil
}

func writeInts(dst *buffer.Buffer, numPoints, comps int, order []int, pred format.PredictionScheme, at func(p, c int) int64) {
	if pred != format.PredictionDifference {
		for i := range numPoints {
			p := pointAt(order, i)
			for c := range comps {
				dst.AppendVarint(at(p, c))
			}
		}

		return
	}

	prev, cleanup := pool.GetInt64Slice(comps)
	defer cleanup()
	clear(prev)

	for i := range numPoints {
		p := pointAt(order, i)
		for c := range comps {
			v := at(p, c)
			dst.AppendVarint(v - prev[c])
			prev[c] = v
		}
	}
}

func pointAt(order []int, i int) int {
	if order == nil {
		return i
	}

	return order[i]
}
