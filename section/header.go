package section

import (
	"fmt"

	"github.com/arloliu/meshpack/endian"
	"github.com/arloliu/meshpack/errs"
	"github.com/arloliu/meshpack/format"
	"github.com/arloliu/meshpack/internal/hash"
)

var le = endian.GetLittleEndianEngine()

// Header is the fixed-size header of an encoded stream.
type Header struct {
	Kind        format.GeometryKind
	Method      format.EncodingMethod
	Compression format.CompressionType
	Version     uint8
	Flags       uint16

	NumPoints     uint32
	NumFaces      uint32
	NumAttributes uint16

	// BodyLength is the size in bytes of the (compressed) body following the header.
	BodyLength uint32
	// Checksum is the xxHash64 of the body.
	Checksum uint64
}

// NewHeader creates a header for the given geometry kind and method.
// Counts, body length and checksum are filled in by the encoder.
func NewHeader(kind format.GeometryKind, method format.EncodingMethod) *Header {
	return &Header{
		Kind:    kind,
		Method:  method,
		Version: Version,
	}
}

// HasFlag reports whether all bits of flag are set.
func (h *Header) HasFlag(flag uint16) bool {
	return h.Flags&flag == flag
}

// SetFlag sets or clears flag.
func (h *Header) SetFlag(flag uint16, on bool) {
	if on {
		h.Flags |= flag
	} else {
		h.Flags &^= flag
	}
}

// SetBody records the length and checksum of body.
func (h *Header) SetBody(body []byte) {
	h.BodyLength = uint32(len(body)) //nolint:gosec
	h.Checksum = hash.Checksum(body)
}

// Bytes serializes the header into a new HeaderSize byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to dst.
func (h *Header) AppendTo(dst []byte) []byte {
	dst = append(dst, Magic...)
	dst = append(dst, h.Version, uint8(h.Kind), uint8(h.Method), uint8(h.Compression)) //nolint:gosec
	dst = le.AppendUint32(dst, h.NumPoints)
	dst = le.AppendUint32(dst, h.NumFaces)
	dst = le.AppendUint16(dst, h.NumAttributes)
	dst = le.AppendUint16(dst, h.Flags)
	dst = le.AppendUint32(dst, h.BodyLength)
	dst = le.AppendUint64(dst, h.Checksum)

	return dst
}

// Parse parses the header from data, which must hold at least HeaderSize bytes.
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrInvalidMagic, ErrUnsupportedVersion, or a
//     validation error for unknown kinds, compressions or flags
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}
	if string(data[offMagic:offMagic+len(Magic)]) != Magic {
		return errs.ErrInvalidMagic
	}

	h.Version = data[offVersion]
	h.Kind = format.GeometryKind(data[offKind])
	h.Method = format.EncodingMethod(int8(data[offMethod])) //nolint:gosec
	h.Compression = format.CompressionType(data[offCompression])
	h.NumPoints = le.Uint32(data[offNumPoints:])
	h.NumFaces = le.Uint32(data[offNumFaces:])
	h.NumAttributes = le.Uint16(data[offNumAttrs:])
	h.Flags = le.Uint16(data[offFlags:])
	h.BodyLength = le.Uint32(data[offBodyLength:])
	h.Checksum = le.Uint64(data[offChecksum:])

	return h.Validate()
}

// Validate checks that every field holds a known value.
func (h *Header) Validate() error {
	if h.Version != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}

	switch h.Kind {
	case format.KindPointCloud:
		if h.Method != format.PointCloudSequential && h.Method != format.PointCloudKdTree {
			return fmt.Errorf("invalid point cloud encoding method: %d", h.Method)
		}
		if h.NumFaces != 0 {
			return fmt.Errorf("point cloud header declares %d faces", h.NumFaces)
		}
	case format.KindMesh:
		if h.Method != format.MeshSequential && h.Method != format.MeshEdgebreaker {
			return fmt.Errorf("invalid mesh encoding method: %d", h.Method)
		}
	default:
		return fmt.Errorf("invalid geometry kind: %d", h.Kind)
	}

	switch h.Compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return fmt.Errorf("invalid body compression: %s", h.Compression)
	}

	if h.Flags&^flagKnownMask != 0 {
		return fmt.Errorf("unknown header flags: %#04x", h.Flags)
	}

	return nil
}

// ParseHeader parses a Header from data.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}

// Body returns the body that follows the header in data and verifies its checksum.
func (h *Header) Body(data []byte) ([]byte, error) {
	end := HeaderSize + int(h.BodyLength)
	if len(data) < end {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrTruncatedBody, end, len(data))
	}

	body := data[HeaderSize:end]
	if !hash.Verify(body, h.Checksum) {
		return nil, errs.ErrChecksumMismatch
	}

	return body, nil
}
