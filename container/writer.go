package container

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/sparsepix/endian"
	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/internal/fsutil"
	"github.com/arloliu/sparsepix/internal/logging"
	"github.com/arloliu/sparsepix/internal/options"
	"github.com/arloliu/sparsepix/internal/pool"
	"github.com/arloliu/sparsepix/sparse"
)

// arrayChunk is the number of uint32 values encoded per entry write.
const arrayChunk = pool.StreamBufferDefaultSize / 4

// channelEntries returns the entry names of channel i for a stored kind.
func channelEntries(kind format.Kind, i int) [3]string {
	if kind == format.KindCSR {
		return [3]string{fmt.Sprintf("indptr_%d", i), fmt.Sprintf("indices_%d", i), fmt.Sprintf("data_%d", i)}
	}

	return [3]string{fmt.Sprintf("row_%d", i), fmt.Sprintf("col_%d", i), fmt.Sprintf("data_%d", i)}
}

// storedArrays returns the three arrays persisted for one channel. DOK
// channels are stored as canonical COO.
func storedArrays(m sparse.Matrix) (format.Kind, [3][]uint32, error) {
	switch v := m.(type) {
	case *sparse.CSR:
		return format.KindCSR, [3][]uint32{v.RowPtr(), v.ColIdx(), v.Values()}, nil
	case *sparse.COO:
		return format.KindCOO, [3][]uint32{v.Rows(), v.Cols(), v.Values()}, nil
	case *sparse.DOK:
		coo := sparse.DOKToCOO(v)
		return format.KindCOO, [3][]uint32{coo.Rows(), coo.Cols(), coo.Values()}, nil
	default:
		return 0, [3][]uint32{}, fmt.Errorf("%w: %T", errs.ErrInvalidKind, m)
	}
}

// Write writes a as a zip archive to w.
func Write(w io.Writer, a *Archive, opts ...WriterOption) error {
	cfg := newWriterConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	if err := a.validate(); err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor(
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	))

	md := newMetadata(a, cfg.valueType)
	mdBytes, err := json.Marshal(&md)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	fw, err := zw.CreateHeader(&zip.FileHeader{Name: metadataEntry, Method: uint16(cfg.method)})
	if err != nil {
		return err
	}

	if _, err = fw.Write(mdBytes); err != nil {
		return err
	}

	buf := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(buf)

	for i, m := range a.Channels {
		kind, arrays, err := storedArrays(m)
		if err != nil {
			return err
		}

		for j, name := range channelEntries(kind, i) {
			if err := writeArray(zw, cfg.method, name, arrays[j], buf); err != nil {
				return err
			}
		}

		logging.Logger().Debug("wrote container channel",
			"channel", i,
			"stored_as", kind.String(),
			"nnz", m.NNZ(),
		)
	}

	return zw.Close()
}

func writeArray(zw *zip.Writer, method Method, name string, vals []uint32, buf *pool.ByteBuffer) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: uint16(method)})
	if err != nil {
		return err
	}

	engine := endian.GetLittleEndianEngine()
	for start := 0; start < len(vals); start += arrayChunk {
		end := min(start+arrayChunk, len(vals))

		buf.Reset()
		buf.B = endian.AppendUint32s(engine, buf.B, vals[start:end])
		if _, err := fw.Write(buf.B); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}

	return nil
}

// WriteFile writes a to path and returns the archive size. The file appears
// only once it is complete.
func WriteFile(path string, a *Archive, opts ...WriterOption) (int64, error) {
	var written int64
	err := fsutil.WriteFile(path, 0o644, func(w io.Writer) error {
		cw := &countingWriter{w: w}
		if err := Write(cw, a, opts...); err != nil {
			return err
		}
		written = cw.n

		return nil
	})
	if err != nil {
		return 0, err
	}

	logging.Logger().Debug("wrote container file", "path", path, "bytes", written, "channels", len(a.Channels))

	return written, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err
}
