// Package config holds the options that steer encoder selection and the encoders
// themselves.
//
// Options has two scopes: global options that apply to a whole encode call, and
// per-attribute options keyed by attribute id. Well-known options are typed fields;
// any other key is kept in a generic integer/boolean store. Reads never fail: a
// missing key yields the caller's default.
package config

import (
	"fmt"
	"maps"

	"github.com/arloliu/meshpack/errs"
	"github.com/arloliu/meshpack/format"
	"github.com/arloliu/meshpack/internal/options"
)

// Well-known option keys understood by the keyed accessors.
const (
	KeyEncodingMethod              = "encoding_method"
	KeyEncodingSpeed               = "encoding_speed"
	KeyDecodingSpeed               = "decoding_speed"
	KeyBuiltInAttributeCompression = "use_built_in_attribute_compression"
	KeyQuantizationBits            = "quantization_bits"
	KeyPredictionScheme            = "prediction_scheme"
)

// MaxQuantizationBits is the largest supported quantization bit depth.
const MaxQuantizationBits = 30

const unsetSpeed = -1

// AttributeOptions are the options of a single attribute.
type AttributeOptions struct {
	// QuantizationBits enables quantization of floating point values when positive.
	QuantizationBits int
	// PredictionScheme selects value prediction. PredictionUndefined lets the encoder decide.
	PredictionScheme format.PredictionScheme

	ints map[string]int
}

func newAttributeOptions() *AttributeOptions {
	return &AttributeOptions{
		QuantizationBits: -1,
		PredictionScheme: format.PredictionUndefined,
	}
}

// Options is the option bag handed to encoders.
//
// The zero value is ready to use and is equivalent to NewDefault.
//
// Note: Options is NOT thread-safe. It is mutated by setters and read during encoding.
type Options struct {
	encodingMethod format.EncodingMethod
	methodSet      bool

	encodingSpeed    int
	encodingSpeedSet bool
	decodingSpeed    int
	decodingSpeedSet bool

	builtInCompress    bool
	builtInCompressSet bool

	attributes map[int32]*AttributeOptions
	ints       map[string]int
	bools      map[string]bool
}

// Option configures an Options value.
type Option = options.Option[*Options]

// NewDefault returns options with nothing set.
func NewDefault() *Options {
	return &Options{}
}

// New creates options and applies opts in order.
//
// Example:
//
//	opts, err := config.New(
//	    config.WithSpeed(7, 7),
//	    config.WithAttributeQuantization(0, 11),
//	)
func New(opts ...Option) (*Options, error) {
	o := NewDefault()
	if err := options.Apply(o, opts...); err != nil {
		return nil, err
	}

	return o, nil
}

// Clone returns a deep copy.
func (o *Options) Clone() *Options {
	c := *o
	c.attributes = make(map[int32]*AttributeOptions, len(o.attributes))
	for id, a := range o.attributes {
		ac := *a
		ac.ints = maps.Clone(a.ints)
		c.attributes[id] = &ac
	}
	c.ints = maps.Clone(o.ints)
	c.bools = maps.Clone(o.bools)

	return &c
}

// EncodingMethod returns the explicitly requested method, or MethodUnset.
func (o *Options) EncodingMethod() format.EncodingMethod {
	if !o.methodSet {
		return format.MethodUnset
	}

	return o.encodingMethod
}

// SetEncodingMethod forces an encoding method. MethodUnset clears it.
func (o *Options) SetEncodingMethod(m format.EncodingMethod) {
	o.encodingMethod = m
	o.methodSet = m != format.MethodUnset
}

// SetSpeed sets the encoding and decoding speed, each in [0, 10] or -1 to unset.
func (o *Options) SetSpeed(encodingSpeed, decodingSpeed int) error {
	if !validSpeed(encodingSpeed) || !validSpeed(decodingSpeed) {
		return fmt.Errorf("%w: speed (%d, %d) must be within [0, %d]",
			errs.ErrInvalidOption, encodingSpeed, decodingSpeed, format.MaxSpeed)
	}
	o.setEncodingSpeed(encodingSpeed)
	o.setDecodingSpeed(decodingSpeed)

	return nil
}

func validSpeed(s int) bool {
	return s == unsetSpeed || (s >= 0 && s <= format.MaxSpeed)
}

func (o *Options) setEncodingSpeed(s int) {
	o.encodingSpeed = s
	o.encodingSpeedSet = s != unsetSpeed
}

func (o *Options) setDecodingSpeed(s int) {
	o.decodingSpeed = s
	o.decodingSpeedSet = s != unsetSpeed
}

// EncodingSpeed returns the encoding speed or -1 if unset.
func (o *Options) EncodingSpeed() int {
	if !o.encodingSpeedSet {
		return unsetSpeed
	}

	return o.encodingSpeed
}

// DecodingSpeed returns the decoding speed or -1 if unset.
func (o *Options) DecodingSpeed() int {
	if !o.decodingSpeedSet {
		return unsetSpeed
	}

	return o.decodingSpeed
}

// Speed returns the effective speed tier: the larger of the encoding and decoding
// speeds, or format.DefaultSpeed when neither is set.
func (o *Options) Speed() int {
	s := max(o.EncodingSpeed(), o.DecodingSpeed())
	if s == unsetSpeed {
		return format.DefaultSpeed
	}

	return s
}

// BuiltInAttributeCompression reports whether encoders compress their body. Defaults to true.
func (o *Options) BuiltInAttributeCompression() bool {
	return !o.builtInCompressSet || o.builtInCompress
}

// SetBuiltInAttributeCompression toggles body compression.
func (o *Options) SetBuiltInAttributeCompression(enabled bool) {
	o.builtInCompress = enabled
	o.builtInCompressSet = true
}

// Attribute returns the options of attribute id, or nil if none were set.
func (o *Options) Attribute(id int32) *AttributeOptions {
	return o.attributes[id]
}

func (o *Options) attribute(id int32) *AttributeOptions {
	a, ok := o.attributes[id]
	if !ok {
		if o.attributes == nil {
			o.attributes = make(map[int32]*AttributeOptions)
		}
		a = newAttributeOptions()
		o.attributes[id] = a
	}

	return a
}

// QuantizationBits returns the quantization bits of attribute id, or def if unset.
func (o *Options) QuantizationBits(id int32, def int) int {
	a := o.attributes[id]
	if a == nil || a.QuantizationBits <= 0 {
		return def
	}

	return a.QuantizationBits
}

// SetQuantizationBits sets the quantization bit depth of attribute id.
// A value <= 0 disables quantization.
func (o *Options) SetQuantizationBits(id int32, bits int) error {
	if bits > MaxQuantizationBits {
		return fmt.Errorf("%w: quantization bits %d exceeds %d", errs.ErrInvalidOption, bits, MaxQuantizationBits)
	}
	if bits <= 0 {
		bits = -1
	}
	o.attribute(id).QuantizationBits = bits

	return nil
}

// PredictionScheme returns the prediction scheme of attribute id, or def if unset.
func (o *Options) PredictionScheme(id int32, def format.PredictionScheme) format.PredictionScheme {
	a := o.attributes[id]
	if a == nil || a.PredictionScheme == format.PredictionUndefined {
		return def
	}

	return a.PredictionScheme
}

// SetPredictionScheme sets the prediction scheme of attribute id.
func (o *Options) SetPredictionScheme(id int32, p format.PredictionScheme) error {
	switch p { //nolint: exhaustive
	case format.PredictionNone, format.PredictionUndefined, format.PredictionDifference:
		o.attribute(id).PredictionScheme = p
		return nil
	default:
		return fmt.Errorf("%w: prediction scheme %d", errs.ErrInvalidOption, p)
	}
}
