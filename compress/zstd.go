package compress

// ZstdCodec compresses streams as Zstandard frames.
//
// Row and column indices of sparse streams are small integers whose high
// bytes are almost always zero, which Zstd packs tighter than the block
// codecs. Containers use the same algorithm for their zip entries.
//
// The default build uses github.com/klauspost/compress/zstd; -tags gozstd
// selects the cgo binding github.com/valyala/gozstd. Frames are
// interchangeable between the two.
type ZstdCodec struct{}

var (
	_ Codec             = ZstdCodec{}
	_ SizedDecompressor = ZstdCodec{}
)

func NewZstdCodec() ZstdCodec { return ZstdCodec{} }

func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	return c.DecompressSized(data, 0)
}
