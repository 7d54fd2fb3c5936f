// Package compress provides the entropy stage applied to encoder bodies.
//
// Every geometry encoder builds its body (attribute values, connectivity, k-d tree
// partitions) into a scratch buffer and then runs it through one Codec before the
// body is written behind the stream header. The codec is picked from the speed tier:
//
//	speed  | codec                     | rationale
//	-------|---------------------------|--------------------------------
//	0-1    | Zstd (best compression)   | smallest output
//	2-3    | Zstd (default level)      | strong ratio, moderate cost
//	4-5    | S2 (better)               | balanced
//	6      | S2                        | fast with fair ratio
//	7-9    | LZ4                       | very fast decompression
//	10     | None                      | lowest latency
//
// When built-in attribute compression is disabled the None codec is always used.
//
// The zstd codec is backed by github.com/klauspost/compress/zstd. Building with
// both cgo and the gozstd tag switches it to github.com/valyala/gozstd.
//
// All codecs are safe for concurrent use and produce identical output for identical
// input, which keeps encoder output deterministic.
package compress
