package config

import (
	"github.com/arloliu/meshpack/format"
	"github.com/arloliu/meshpack/internal/options"
)

// WithSpeed sets the encoding and decoding speed tiers, each in [0, 10].
// Higher is faster with less compression.
func WithSpeed(encodingSpeed, decodingSpeed int) Option {
	return options.New(func(o *Options) error {
		return o.SetSpeed(encodingSpeed, decodingSpeed)
	})
}

// WithEncodingMethod forces an encoding method instead of letting the selector infer one.
func WithEncodingMethod(m format.EncodingMethod) Option {
	return options.NoError(func(o *Options) {
		o.SetEncodingMethod(m)
	})
}

// WithAttributeQuantization quantizes attribute id to the given bit depth.
func WithAttributeQuantization(id int32, bits int) Option {
	return options.New(func(o *Options) error {
		return o.SetQuantizationBits(id, bits)
	})
}

// WithAttributePredictionScheme sets the prediction scheme of attribute id.
func WithAttributePredictionScheme(id int32, p format.PredictionScheme) Option {
	return options.New(func(o *Options) error {
		return o.SetPredictionScheme(id, p)
	})
}

// WithBuiltInAttributeCompression enables or disables body compression. Enabled by default.
func WithBuiltInAttributeCompression(enabled bool) Option {
	return options.NoError(func(o *Options) {
		o.SetBuiltInAttributeCompression(enabled)
	})
}
