package geometry

import (
	"fmt"
	"math"

	"github.com/arloliu/meshpack/endian"
	"github.com/arloliu/meshpack/errs"
	"github.com/arloliu/meshpack/format"
)

var le = endian.GetLittleEndianEngine()

// Number is the set of element types an Attribute can be built from.
type Number interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// Attribute is one semantic channel of per-point data.
//
// Values are stored packed in little-endian order, NumComponents values per point.
// An Attribute is immutable after construction.
type Attribute struct {
	attType    format.AttributeType
	dataType   format.DataType
	components int
	numPoints  int
	data       []byte
}

// NewAttribute creates an attribute from a flat slice of values.
//
// The data type is inferred from T. len(values) must be a multiple of components.
//
// Example:
//
//	pos, err := geometry.NewAttribute(format.AttributePosition, 3, []float32{
//	    0, 0, 0,
//	    1, 0, 0,
//	})
func NewAttribute[T Number](attType format.AttributeType, components int, values []T) (*Attribute, error) {
	if attType < format.AttributePosition || attType > format.AttributeGeneric {
		return nil, fmt.Errorf("%w: attribute type %d", errs.ErrInvalidAttribute, attType)
	}
	if components < 1 || components > math.MaxUint8 {
		return nil, fmt.Errorf("%w: component count %d", errs.ErrInvalidAttribute, components)
	}
	if len(values)%components != 0 {
		return nil, fmt.Errorf("%w: %d values is not a multiple of %d components",
			errs.ErrInvalidAttribute, len(values), components)
	}

	dt := dataTypeOf[T]()
	data := make([]byte, 0, len(values)*dt.Size())
	for _, v := range values {
		data = appendValue(data, dt, v)
	}

	return &Attribute{
		attType:    attType,
		dataType:   dt,
		components: components,
		numPoints:  len(values) / components,
		data:       data,
	}, nil
}

// NewBoolAttribute creates a generic boolean attribute.
func NewBoolAttribute(components int, values []bool) (*Attribute, error) {
	raw := make([]uint8, len(values))
	for i, v := range values {
		if v {
			raw[i] = 1
		}
	}

	att, err := NewAttribute(format.AttributeGeneric, components, raw)
	if err != nil {
		return nil, err
	}
	att.dataType = format.DataTypeBool

	return att, nil
}

func dataTypeOf[T Number]() format.DataType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return format.DataTypeInt8
	case uint8:
		return format.DataTypeUint8
	case int16:
		return format.DataTypeInt16
	case uint16:
		return format.DataTypeUint16
	case int32:
		return format.DataTypeInt32
	case uint32:
		return format.DataTypeUint32
	case int64:
		return format.DataTypeInt64
	case uint64:
		return format.DataTypeUint64
	case float32:
		return format.DataTypeFloat32
	case float64:
		return format.DataTypeFloat64
	}

	return format.DataTypeInvalid
}

func appendValue[T Number](dst []byte, dt format.DataType, v T) []byte {
	switch dt { //nolint: exhaustive
	case format.DataTypeInt8, format.DataTypeUint8:
		return append(dst, byte(v))
	case format.DataTypeInt16, format.DataTypeUint16:
		return le.AppendUint16(dst, uint16(v))
	case format.DataTypeInt32, format.DataTypeUint32:
		return le.AppendUint32(dst, uint32(v))
	case format.DataTypeInt64, format.DataTypeUint64:
		return le.AppendUint64(dst, uint64(v))
	case format.DataTypeFloat32:
		return le.AppendUint32(dst, math.Float32bits(float32(v)))
	case format.DataTypeFloat64:
		return le.AppendUint64(dst, math.Float64bits(float64(v)))
	}

	return dst
}

// Type returns the semantic attribute type.
func (a *Attribute) Type() format.AttributeType { return a.attType }

// DataType returns the element data type.
func (a *Attribute) DataType() format.DataType { return a.dataType }

// NumComponents returns the number of components per point.
func (a *Attribute) NumComponents() int { return a.components }

// NumPoints returns the number of points the attribute covers.
func (a *Attribute) NumPoints() int { return a.numPoints }

// NumValues returns NumPoints * NumComponents.
func (a *Attribute) NumValues() int { return a.numPoints * a.components }

// Bytes returns the packed little-endian values. The caller must not modify them.
func (a *Attribute) Bytes() []byte { return a.data }

// Int64At returns component c of point p converted to int64.
// Floating point values are truncated.
func (a *Attribute) Int64At(p, c int) int64 {
	idx := p*a.components + c
	size := a.dataType.Size()
	b := a.data[idx*size : (idx+1)*size]

	switch a.dataType { //nolint: exhaustive
	case format.DataTypeInt8:
		return int64(int8(b[0]))
	case format.DataTypeUint8, format.DataTypeBool:
		return int64(b[0])
	case format.DataTypeInt16:
		return int64(int16(le.Uint16(b)))
	case format.DataTypeUint16:
		return int64(le.Uint16(b))
	case format.DataTypeInt32:
		return int64(int32(le.Uint32(b)))
	case format.DataTypeUint32:
		return int64(le.Uint32(b))
	case format.DataTypeInt64, format.DataTypeUint64:
		return int64(le.Uint64(b)) //nolint:gosec
	case format.DataTypeFloat32, format.DataTypeFloat64:
		return int64(a.Float64At(p, c))
	}

	return 0
}

// Float64At returns component c of point p converted to float64.
func (a *Attribute) Float64At(p, c int) float64 {
	idx := p*a.components + c
	size := a.dataType.Size()
	b := a.data[idx*size : (idx+1)*size]

	switch a.dataType { //nolint: exhaustive
	case format.DataTypeFloat32:
		return float64(math.Float32frombits(le.Uint32(b)))
	case format.DataTypeFloat64:
		return math.Float64frombits(le.Uint64(b))
	case format.DataTypeUint64:
		return float64(le.Uint64(b))
	}

	return float64(a.Int64At(p, c))
}

// ValueBytes returns the packed bytes of point p.
func (a *Attribute) ValueBytes(p int) []byte {
	stride := a.components * a.dataType.Size()
	return a.data[p*stride : (p+1)*stride]
}
