//go:build !gozstd

package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var zstdEncoders = sync.Pool{
	New: func() any {
		// The envelope checksums the raw stream, so frames skip their own CRC.
		enc, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("zstd encoder: %v", err))
		}

		return enc
	},
}

var zstdDecoders = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(maxDecoded),
		)
		if err != nil {
			panic(fmt.Sprintf("zstd decoder: %v", err))
		}

		return dec
	},
}

func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	enc, _ := zstdEncoders.Get().(*zstd.Encoder)
	defer zstdEncoders.Put(enc)

	return enc.EncodeAll(data, make([]byte, 0, len(data)/4)), nil
}

// DecompressSized decodes a frame. With rawLen > 0 decoding stops after
// rawLen+1 bytes, so a payload that expands past its declared length costs
// at most one byte more than the caller expects.
func (ZstdCodec) DecompressSized(data []byte, rawLen int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dec, _ := zstdDecoders.Get().(*zstd.Decoder)
	defer zstdDecoders.Put(dec)

	if rawLen <= 0 {
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}

		return out, nil
	}

	if err := dec.Reset(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}

	out := bytes.NewBuffer(make([]byte, 0, sizeHint(rawLen)))
	if _, err := io.Copy(out, io.LimitReader(dec, int64(rawLen)+1)); err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}

	return out.Bytes(), nil
}
