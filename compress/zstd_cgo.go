//go:build gozstd

package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/valyala/gozstd"
)

// gozstdLevel sits close to klauspost's SpeedBetterCompression.
const gozstdLevel = 7

func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, gozstdLevel), nil
}

func (ZstdCodec) DecompressSized(data []byte, rawLen int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if rawLen <= 0 {
		out, err := gozstd.Decompress(nil, data)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}

		return out, nil
	}

	zr := gozstd.NewReader(bytes.NewReader(data))
	defer zr.Release()

	out := bytes.NewBuffer(make([]byte, 0, sizeHint(rawLen)))
	if _, err := io.Copy(out, io.LimitReader(zr, int64(rawLen)+1)); err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}

	return out.Bytes(), nil
}
