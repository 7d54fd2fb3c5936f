// Package stream writes the header and compressed body of an encoded geometry.
package stream

import (
	"fmt"
	"math"

	"github.com/arloliu/meshpack/buffer"
	"github.com/arloliu/meshpack/compress"
	"github.com/arloliu/meshpack/config"
	"github.com/arloliu/meshpack/section"
)

// Finish compresses body with the codec picked for the configured speed, fills in
// the header's compression, flags, length and checksum, and appends header and body
// to out.
//
// out is only written once the body is complete, so a failure leaves it untouched.
func Finish(out *buffer.Buffer, h *section.Header, body []byte, opts *config.Options) error {
	builtIn := opts.BuiltInAttributeCompression()
	codec := compress.ForSpeed(opts.Speed(), builtIn)

	payload, err := codec.Compress(body)
	if err != nil {
		return fmt.Errorf("compress %s body: %w", codec.Type(), err)
	}
	if len(payload) > math.MaxUint32 {
		return fmt.Errorf("body of %d bytes exceeds stream limit", len(payload))
	}

	h.Compression = codec.Type()
	h.SetFlag(section.FlagBuiltInCompression, builtIn)
	h.SetBody(payload)

	out.Grow(section.HeaderSize + len(payload))
	_, _ = out.Write(h.Bytes())
	_, _ = out.Write(payload)

	return nil
}
