package format

type (
	GeometryKind     uint8
	EncodingMethod   int
	AttributeType    int8
	DataType         uint8
	PredictionScheme int
	CompressionType  uint8
)

const (
	KindPointCloud GeometryKind = 0x1 // KindPointCloud represents a bare point cloud.
	KindMesh       GeometryKind = 0x2 // KindMesh represents a triangle mesh.
)

// Encoding methods are interpreted relative to the geometry kind, so point cloud and
// mesh identifiers share numeric values.
const (
	MethodUnset EncodingMethod = -1 // MethodUnset means no method was requested explicitly.

	PointCloudSequential EncodingMethod = 0 // PointCloudSequential encodes attributes in point order.
	PointCloudKdTree     EncodingMethod = 1 // PointCloudKdTree encodes positions by spatial partitioning.

	MeshSequential  EncodingMethod = 0 // MeshSequential encodes raw face indices followed by attributes.
	MeshEdgebreaker EncodingMethod = 1 // MeshEdgebreaker encodes connectivity by face traversal.
)

const (
	AttributeInvalid  AttributeType = -1
	AttributePosition AttributeType = 0
	AttributeNormal   AttributeType = 1
	AttributeColor    AttributeType = 2
	AttributeTexCoord AttributeType = 3
	AttributeGeneric  AttributeType = 4
)

const (
	DataTypeInvalid DataType = iota
	DataTypeInt8
	DataTypeUint8
	DataTypeInt16
	DataTypeUint16
	DataTypeInt32
	DataTypeUint32
	DataTypeInt64
	DataTypeUint64
	DataTypeFloat32
	DataTypeFloat64
	DataTypeBool
)

const (
	PredictionNone       PredictionScheme = -2 // PredictionNone disables value prediction.
	PredictionUndefined  PredictionScheme = -1 // PredictionUndefined lets the encoder decide from the speed.
	PredictionDifference PredictionScheme = 0  // PredictionDifference stores per-component deltas.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// MaxSpeed is the fastest speed tier. Encoders trade compression ratio for latency
// as the speed approaches it.
const MaxSpeed = 10

// DefaultSpeed is used when neither encoding nor decoding speed was configured.
const DefaultSpeed = 5

func (k GeometryKind) String() string {
	switch k {
	case KindPointCloud:
		return "PointCloud"
	case KindMesh:
		return "Mesh"
	default:
		return "Unknown"
	}
}

// Name returns the method name as interpreted for the given geometry kind.
func (m EncodingMethod) Name(kind GeometryKind) string {
	if m == MethodUnset {
		return "Unset"
	}

	switch kind {
	case KindPointCloud:
		switch m { //nolint: exhaustive
		case PointCloudSequential:
			return "PointCloudSequential"
		case PointCloudKdTree:
			return "PointCloudKdTree"
		}
	case KindMesh:
		switch m { //nolint: exhaustive
		case MeshSequential:
			return "MeshSequential"
		case MeshEdgebreaker:
			return "MeshEdgebreaker"
		}
	}

	return "Unknown"
}

func (t AttributeType) String() string {
	switch t {
	case AttributePosition:
		return "Position"
	case AttributeNormal:
		return "Normal"
	case AttributeColor:
		return "Color"
	case AttributeTexCoord:
		return "TexCoord"
	case AttributeGeneric:
		return "Generic"
	default:
		return "Invalid"
	}
}

func (d DataType) String() string {
	switch d {
	case DataTypeInt8:
		return "Int8"
	case DataTypeUint8:
		return "Uint8"
	case DataTypeInt16:
		return "Int16"
	case DataTypeUint16:
		return "Uint16"
	case DataTypeInt32:
		return "Int32"
	case DataTypeUint32:
		return "Uint32"
	case DataTypeInt64:
		return "Int64"
	case DataTypeUint64:
		return "Uint64"
	case DataTypeFloat32:
		return "Float32"
	case DataTypeFloat64:
		return "Float64"
	case DataTypeBool:
		return "Bool"
	default:
		return "Invalid"
	}
}

// Size returns the size in bytes of one element of the data type, or 0 if invalid.
func (d DataType) Size() int {
	switch d {
	case DataTypeInt8, DataTypeUint8, DataTypeBool:
		return 1
	case DataTypeInt16, DataTypeUint16:
		return 2
	case DataTypeInt32, DataTypeUint32, DataTypeFloat32:
		return 4
	case DataTypeInt64, DataTypeUint64, DataTypeFloat64:
		return 8
	default:
		return 0
	}
}

// IsInteger reports whether the data type holds integer values.
func (d DataType) IsInteger() bool {
	switch d { //nolint: exhaustive
	case DataTypeInt8, DataTypeUint8, DataTypeInt16, DataTypeUint16,
		DataTypeInt32, DataTypeUint32, DataTypeInt64, DataTypeUint64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the data type holds floating point values.
func (d DataType) IsFloat() bool {
	return d == DataTypeFloat32 || d == DataTypeFloat64
}

func (p PredictionScheme) String() string {
	switch p {
	case PredictionNone:
		return "None"
	case PredictionUndefined:
		return "Undefined"
	case PredictionDifference:
		return "Difference"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
