// Package section defines the fixed-size header written in front of every encoded
// geometry stream.
//
// # Stream Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed, little-endian)                 │
//	│  - Magic (4 bytes): "MPK\x00"                           │
//	│  - Version (1), Kind (1), Method (1), Compression (1)   │
//	│  - NumPoints (4), NumFaces (4)                          │
//	│  - NumAttributes (2), Flags (2)                         │
//	│  - BodyLength (4)                                       │
//	│  - Checksum (8): xxHash64 of the body                   │
//	├─────────────────────────────────────────────────────────┤
//	│ Body (BodyLength bytes, compressed with Compression)    │
//	│  - layout owned by the encoder named in Method          │
//	└─────────────────────────────────────────────────────────┘
//
// The header is written after the body has been produced so it can carry the body
// length and checksum. Method is interpreted relative to Kind.
package section
