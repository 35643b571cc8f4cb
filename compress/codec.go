package compress

import (
	"fmt"
	"math"
	"time"

	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
)

// Compressor compresses a complete serialized stream (SPCO or SPCS).
//
// The returned slice belongs to the caller, except that RawCodec returns its
// input. The input is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm. It fails on
// corrupt input and on input produced by another algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// SizedDecompressor is a Decompressor that can use the decoded length
// recorded alongside the payload, as the SPZ1 envelope does.
type SizedDecompressor interface {
	Decompressor
	DecompressSized(data []byte, rawLen int) ([]byte, error)
}

// Codec compresses and decompresses with one algorithm. All built-in codecs
// are stateless and safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// maxDecoded bounds a decode without a declared length. SPZ1 lengths are
// uint32, so no valid payload decodes past it.
const maxDecoded = 1 << 32

// maxSizeHint caps preallocation from a declared length, which comes from an
// unverified header.
const maxSizeHint = 64 << 20

func sizeHint(rawLen int) int {
	return max(0, min(rawLen, maxSizeHint))
}

// DecompressSized decompresses data that is expected to decode to rawLen
// bytes, letting d preallocate when it supports that. The caller still
// checks the decoded length.
func DecompressSized(d Decompressor, data []byte, rawLen int) ([]byte, error) {
	if sd, ok := d.(SizedDecompressor); ok && rawLen <= maxSizeHint {
		return sd.DecompressSized(data, rawLen)
	}

	return d.Decompress(data)
}

// CompressionStats describes one compress/decompress cycle of a stream.
type CompressionStats struct {
	Algorithm           format.CompressionType
	OriginalSize        int64
	CompressedSize      int64
	CompressionTimeNs   int64
	DecompressionTimeNs int64
}

// Ratio returns OriginalSize / CompressedSize; above 1.0 the stream shrank.
// An empty result of a non-empty stream gives +Inf.
func (s CompressionStats) Ratio() float64 {
	if s.CompressedSize == 0 {
		if s.OriginalSize == 0 {
			return 1.0
		}

		return math.Inf(1)
	}

	return float64(s.OriginalSize) / float64(s.CompressedSize)
}

// SpaceSavings is the share of the original size saved, in percent.
func (s CompressionStats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - float64(s.CompressedSize)/float64(s.OriginalSize)) * 100.0
}

// Measure compresses data with the given algorithm, decompresses the result
// and reports sizes and timings. The round trip must reproduce the length of
// data.
func Measure(compressionType format.CompressionType, data []byte) (CompressionStats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return CompressionStats{}, err
	}

	stats := CompressionStats{Algorithm: compressionType, OriginalSize: int64(len(data))}

	start := time.Now()
	packed, err := codec.Compress(data)
	if err != nil {
		return CompressionStats{}, fmt.Errorf("%s compress: %w", compressionType, err)
	}
	stats.CompressionTimeNs = time.Since(start).Nanoseconds()
	stats.CompressedSize = int64(len(packed))

	start = time.Now()
	restored, err := DecompressSized(codec, packed, len(data))
	if err != nil {
		return CompressionStats{}, fmt.Errorf("%s decompress: %w", compressionType, err)
	}
	stats.DecompressionTimeNs = time.Since(start).Nanoseconds()

	if len(restored) != len(data) {
		return CompressionStats{}, fmt.Errorf("%w: %s round trip returned %d bytes, want %d",
			errs.ErrTruncatedStream, compressionType, len(restored), len(data))
	}

	return stats, nil
}

// CreateCodec returns a new codec for compressionType. target names the
// caller in the error for an unknown type.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewRawCodec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionS2:
		return NewS2Codec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("%w: %s compression %s", errs.ErrInvalidCompression, target, compressionType)
	}
}

// GetCodec returns the built-in codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	return CreateCodec(compressionType, "stream")
}
