package container

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/sparsepix/endian"
	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/internal/logging"
	"github.com/arloliu/sparsepix/internal/pool"
	"github.com/arloliu/sparsepix/sparse"
)

// zipMagic is the local file header signature every archive starts with.
var zipMagic = []byte("PK\x03\x04")

// HasMagic reports whether data starts like a zip archive.
func HasMagic(data []byte) bool {
	return bytes.HasPrefix(data, zipMagic)
}

// Read reads an archive of the given size from r.
//
// Returns:
//   - ErrBadMagic when r is not a zip archive or has no readable metadata
//   - ErrUnsupportedVersion for metadata newer than this reader
//   - ErrInvalidShape for a declared channel count other than 1 or 3
//   - ErrUnknownChannelData when a declared channel has neither COO nor CSR entries
//   - ErrTruncatedStream when an array entry is not a whole number of uint32s
//   - ErrChecksumMismatch when an entry fails its zip CRC
func Read(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrBadMagic, err)
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = f
	}

	mdFile, ok := entries[metadataEntry]
	if !ok {
		return nil, fmt.Errorf("%w: archive has no %s entry", errs.ErrBadMagic, metadataEntry)
	}

	mdBytes, err := readEntry(mdFile)
	if err != nil {
		return nil, err
	}

	md, err := parseMetadata(mdBytes)
	if err != nil {
		return nil, err
	}

	kind, err := md.Kind()
	if err != nil {
		return nil, err
	}

	shape, err := md.PlaneShape()
	if err != nil {
		return nil, err
	}

	chunk := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(chunk)
	chunk.Grow(pool.StreamBufferDefaultSize)
	buf := chunk.B[:pool.StreamBufferDefaultSize]

	channels := make([]sparse.Matrix, md.Channels)
	for i := range md.Channels {
		m, err := readChannel(entries, i, shape, buf)
		if err != nil {
			return nil, err
		}

		if channels[i], err = sparse.ToKind(m, kind); err != nil {
			return nil, err
		}

		logging.Logger().Debug("read container channel",
			"channel", i,
			"stored_as", m.Kind().String(),
			"restored_as", kind.String(),
			"nnz", m.NNZ(),
		)
	}

	return &Archive{Kind: kind, Channels: channels, ValueType: md.DType}, nil
}

// readChannel rebuilds channel i in the representation it was stored in.
func readChannel(entries map[string]*zip.File, i int, shape sparse.Shape, buf []byte) (sparse.Matrix, error) {
	for _, kind := range []format.Kind{format.KindCSR, format.KindCOO} {
		names := channelEntries(kind, i)
		if _, ok := entries[names[0]]; !ok {
			continue
		}

		var arrays [3][]uint32
		for j, name := range names {
			f, ok := entries[name]
			if !ok {
				return nil, fmt.Errorf("%w: channel %d has %s but no %s", errs.ErrUnknownChannelData, i, names[0], name)
			}

			vals, err := readArray(f, buf)
			if err != nil {
				return nil, err
			}
			arrays[j] = vals
		}

		var (
			m   sparse.Matrix
			err error
		)
		if kind == format.KindCSR {
			m, err = sparse.NewCSR(shape, arrays[0], arrays[1], arrays[2])
		} else {
			m, err = sparse.NewCOO(shape, arrays[0], arrays[1], arrays[2])
		}
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}

		return m, nil
	}

	return nil, fmt.Errorf("%w: no COO or CSR entries for channel %d", errs.ErrUnknownChannelData, i)
}

func openEntry(f *zip.File) (io.ReadCloser, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.Name, err)
	}

	return rc, nil
}

func entryError(f *zip.File, err error) error {
	if errors.Is(err, zip.ErrChecksum) {
		return fmt.Errorf("%w: %s: %w", errs.ErrChecksumMismatch, f.Name, err)
	}

	return fmt.Errorf("reading %s: %w", f.Name, err)
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := openEntry(f)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, entryError(f, err)
	}

	return data, nil
}

// readArray decodes a packed little-endian uint32 entry chunk by chunk.
// len(buf) must be a multiple of 4.
func readArray(f *zip.File, buf []byte) ([]uint32, error) {
	if f.UncompressedSize64%4 != 0 {
		return nil, fmt.Errorf("%w: %s holds %d bytes, not a whole number of uint32 values",
			errs.ErrTruncatedStream, f.Name, f.UncompressedSize64)
	}

	rc, err := openEntry(f)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	engine := endian.GetLittleEndianEngine()
	out := make([]uint32, 0, min(f.UncompressedSize64/4, uint64(len(buf))))
	for {
		n, err := io.ReadFull(rc, buf)
		if n%4 != 0 {
			return nil, fmt.Errorf("%w: %s ends inside a uint32 value", errs.ErrTruncatedStream, f.Name)
		}
		out = endian.Uint32s(engine, out, buf[:n])

		switch {
		case err == nil:
			continue
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return out, nil
		default:
			return nil, entryError(f, err)
		}
	}
}

// ReadFile reads the archive stored at path.
func ReadFile(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	return Read(f, info.Size())
}
