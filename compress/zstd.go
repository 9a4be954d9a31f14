package compress

// ZstdCompressor provides Zstandard compression. The implementation is pure
// Go unless the valstream_gozstd build tag is set together with cgo.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
