// Package compress provides the codecs used for snapshot bodies.
//
// Supported algorithms:
//   - None: body stored as is
//   - Zstd: best ratio; pure Go by default, cgo gozstd with the
//     valstream_gozstd build tag
//   - S2: balanced speed and ratio
//   - LZ4: fastest decompression
//
// All codecs are safe for concurrent use.
package compress
