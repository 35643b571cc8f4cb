package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/pierrec/lz4/v4"
)

// S2 and LZ4 both emit single blocks with no framing of their own; the SPZ1
// envelope supplies the raw length and checksum.

// S2Codec compresses streams as S2 blocks in better-compression mode.
type S2Codec struct{}

var (
	_ Codec             = S2Codec{}
	_ SizedDecompressor = S2Codec{}
)

func NewS2Codec() S2Codec { return S2Codec{} }

func (S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

func (c S2Codec) Decompress(data []byte) ([]byte, error) {
	return c.DecompressSized(data, 0)
}

// DecompressSized decodes into a buffer of rawLen bytes. The block header
// carries its own length, which must agree with rawLen when rawLen > 0.
func (S2Codec) DecompressSized(data []byte, rawLen int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if rawLen > 0 && n != rawLen {
		return nil, fmt.Errorf("s2 block decodes to %d bytes, want %d", n, rawLen)
	}

	return s2.Decode(make([]byte, n), data)
}

// lz4GrowLimit bounds the buffer Decompress grows to when no size is known.
const lz4GrowLimit = 256 << 20

var lz4Compressors = sync.Pool{
	New: func() any { return new(lz4.Compressor) },
}

// LZ4Codec compresses streams as LZ4 blocks. It has the fastest decode of
// the built-in codecs and the weakest ratio.
type LZ4Codec struct{}

var (
	_ Codec             = LZ4Codec{}
	_ SizedDecompressor = LZ4Codec{}
)

func NewLZ4Codec() LZ4Codec { return LZ4Codec{} }

func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	lc, _ := lz4Compressors.Get().(*lz4.Compressor)
	defer lz4Compressors.Put(lc)

	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decodes a block of unknown size, doubling the output buffer
// from 4x the input until the block fits. Index streams of nearly empty
// images routinely expand past 4x.
func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	for size := len(data) * 4; ; size = min(size*2, lz4GrowLimit) {
		buf := make([]byte, size)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) || size >= lz4GrowLimit {
			return nil, err
		}
	}
}

// DecompressSized decodes a block known to hold exactly rawLen bytes.
func (c LZ4Codec) DecompressSized(data []byte, rawLen int) ([]byte, error) {
	if rawLen <= 0 {
		return c.Decompress(data)
	}
	if len(data) == 0 {
		return nil, nil
	}

	buf := make([]byte, rawLen)
	n, err := lz4.UncompressBlock(data, buf)
	if err != nil {
		return nil, err
	}
	if n != rawLen {
		return nil, fmt.Errorf("lz4 block decodes to %d bytes, want %d", n, rawLen)
	}

	return buf, nil
}
