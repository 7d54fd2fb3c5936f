package config

import "github.com/arloliu/meshpack/format"

// GlobalInt returns the integer global option key, or def when it is not set.
func (o *Options) GlobalInt(key string, def int) int {
	switch key {
	case KeyEncodingMethod:
		if m := o.EncodingMethod(); m != format.MethodUnset {
			return int(m)
		}
		return def
	case KeyEncodingSpeed:
		if s := o.EncodingSpeed(); s != unsetSpeed {
			return s
		}
		return def
	case KeyDecodingSpeed:
		if s := o.DecodingSpeed(); s != unsetSpeed {
			return s
		}
		return def
	}

	if v, ok := o.ints[key]; ok {
		return v
	}

	return def
}

// SetGlobalInt sets an integer global option.
//
// Well-known keys are stored in their typed fields without range validation,
// matching a raw option store; use the typed setters to validate. Values are
// kept at full width, so an out-of-range method such as 256 is rejected by the
// selector instead of wrapping onto a valid one.
func (o *Options) SetGlobalInt(key string, v int) {
	switch key {
	case KeyEncodingMethod:
		o.SetEncodingMethod(format.EncodingMethod(v))
		return
	case KeyEncodingSpeed:
		o.setEncodingSpeed(v)
		return
	case KeyDecodingSpeed:
		o.setDecodingSpeed(v)
		return
	}

	if o.ints == nil {
		o.ints = make(map[string]int)
	}
	o.ints[key] = v
}

// GlobalBool returns the boolean global option key, or def when it is not set.
// This holds for KeyBuiltInAttributeCompression too, although the typed
// BuiltInAttributeCompression accessor treats an unset value as true.
func (o *Options) GlobalBool(key string, def bool) bool {
	if key == KeyBuiltInAttributeCompression {
		if !o.builtInCompressSet {
			return def
		}
		return o.builtInCompress
	}
	if v, ok := o.bools[key]; ok {
		return v
	}

	return def
}

// SetGlobalBool sets a boolean global option.
func (o *Options) SetGlobalBool(key string, v bool) {
	if key == KeyBuiltInAttributeCompression {
		o.SetBuiltInAttributeCompression(v)
		return
	}

	if o.bools == nil {
		o.bools = make(map[string]bool)
	}
	o.bools[key] = v
}

// AttributeInt returns the integer option key of attribute id, or def when it is not set.
func (o *Options) AttributeInt(id int32, key string, def int) int {
	a := o.attributes[id]
	if a == nil {
		return def
	}

	switch key {
	case KeyQuantizationBits:
		if a.QuantizationBits <= 0 {
			return def
		}
		return a.QuantizationBits
	case KeyPredictionScheme:
		if a.PredictionScheme == format.PredictionUndefined {
			return def
		}
		return int(a.PredictionScheme)
	}

	if v, ok := a.ints[key]; ok {
		return v
	}

	return def
}

// SetAttributeInt sets an integer option of attribute id.
func (o *Options) SetAttributeInt(id int32, key string, v int) {
	a := o.attribute(id)

	switch key {
	case KeyQuantizationBits:
		a.QuantizationBits = v
		return
	case KeyPredictionScheme:
		a.PredictionScheme = format.PredictionScheme(v)
		return
	}

	if a.ints == nil {
		a.ints = make(map[string]int)
	}
	a.ints[key] = v
}
