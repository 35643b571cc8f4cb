package compress

// RawCodec stores streams as they are. It backs format.CompressionNone, so an
// uncompressed envelope still gets a length and checksum.
type RawCodec struct{}

var _ Codec = RawCodec{}

func NewRawCodec() RawCodec { return RawCodec{} }

// Compress returns data without copying.
func (RawCodec) Compress(data []byte) ([]byte, error) { return data, nil }

// Decompress returns data without copying.
func (RawCodec) Decompress(data []byte) ([]byte, error) { return data, nil }
