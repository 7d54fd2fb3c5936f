package attrcodec

import (
	"fmt"
	"math"

	"github.com/arloliu/meshpack/buffer"
	"github.com/arloliu/meshpack/errs"
	"github.com/arloliu/meshpack/geometry"
)

// Quantization maps floating point components onto [0, 2^Bits-1].
//
// All components share one range so the quantization grid is uniform in every
// dimension, which keeps positions isotropic.
type Quantization struct {
	Bits  int
	Min   []float32
	Range float32
}

// NewQuantization computes the quantization parameters of a float attribute.
func NewQuantization(att *geometry.Attribute, bits int) (Quantization, error) {
	if !att.DataType().IsFloat() {
		return Quantization{}, fmt.Errorf("%w: cannot quantize %s", errs.ErrUnsupportedDataType, att.DataType())
	}
	if bits < 1 || bits > 30 {
		return Quantization{}, fmt.Errorf("%w: quantization bits %d", errs.ErrInvalidOption, bits)
	}

	comps := att.NumComponents()
	minV := make([]float64, comps)
	maxV := make([]float64, comps)
	for c := range comps {
		minV[c] = math.Inf(1)
		maxV[c] = math.Inf(-1)
	}
	for p := range att.NumPoints() {
		for c := range comps {
			v := att.Float64At(p, c)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Quantization{}, fmt.Errorf("%w: non-finite value at point %d", errs.ErrInvalidAttribute, p)
			}
			minV[c] = min(minV[c], v)
			maxV[c] = max(maxV[c], v)
		}
	}

	q := Quantization{Bits: bits, Min: make([]float32, comps)}
	var r float64
	for c := range comps {
		if att.NumPoints() == 0 {
			minV[c], maxV[c] = 0, 0
		}
		q.Min[c] = float32(minV[c])
		r = max(r, maxV[c]-float64(q.Min[c]))
	}
	if r == 0 {
		r = 1
	}
	q.Range = float32(r)
	// float32 rounding may shrink the range below the true extent.
	if float64(q.Range) < r {
		q.Range = math.Nextafter32(q.Range, float32(math.Inf(1)))
	}

	return q, nil
}

// MaxValue returns the largest quantized value.
func (q Quantization) MaxValue() uint32 {
	return uint32(1)<<q.Bits - 1
}

// Quantize maps v of component c to its quantized value.
func (q Quantization) Quantize(v float64, c int) uint32 {
	norm := (v - float64(q.Min[c])) / float64(q.Range)
	norm = min(max(norm, 0), 1)

	return uint32(math.Floor(norm*float64(q.MaxValue()) + 0.5))
}

// Dequantize maps a quantized value of component c back to its approximate value.
func (q Quantization) Dequantize(v uint32, c int) float64 {
	return float64(q.Min[c]) + float64(v)/float64(q.MaxValue())*float64(q.Range)
}

// QuantizeAll quantizes every value of att into dst, which must hold NumValues entries.
func (q Quantization) QuantizeAll(att *geometry.Attribute, dst []uint32) {
	comps := att.NumComponents()
	for p := range att.NumPoints() {
		for c := range comps {
			dst[p*comps+c] = q.Quantize(att.Float64At(p, c), c)
		}
	}
}

// AppendTo writes the parameters: bits, per-component minimum, range.
func (q Quantization) AppendTo(dst *buffer.Buffer) {
	_ = dst.WriteByte(uint8(q.Bits)) //nolint:gosec
	for _, m := range q.Min {
		dst.AppendFloat32(m)
	}
	dst.AppendFloat32(q.Range)
}
