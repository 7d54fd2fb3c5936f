package section

const (
	// Magic is the 4-byte signature at the start of every stream.
	Magic = "MPK\x00"
	// Version is the current stream version.
	Version uint8 = 1

	HeaderSize = 32 // fixed header size in bytes
)

// Header flag bits.
const (
	FlagBuiltInCompression uint16 = 0x0001 // body was produced with built-in attribute compression enabled
	FlagQuantized          uint16 = 0x0002 // at least one attribute was quantized

	flagKnownMask = FlagBuiltInCompression | FlagQuantized
)

// Field offsets inside the header.
const (
	offMagic       = 0
	offVersion     = 4
	offKind        = 5
	offMethod      = 6
	offCompression = 7
	offNumPoints   = 8
	offNumFaces    = 12
	offNumAttrs    = 16
	offFlags       = 18
	offBodyLength  = 20
	offChecksum    = 24
)
