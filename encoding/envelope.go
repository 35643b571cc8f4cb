package encoding

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/sparsepix/compress"
	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/internal/hash"
	"github.com/arloliu/sparsepix/internal/logging"
	"github.com/arloliu/sparsepix/internal/pool"
	"github.com/arloliu/sparsepix/section"
	"github.com/arloliu/sparsepix/sparse"
)

// Seal encodes m with Encode, compresses the stream and writes it to w as an
// SPZ1 envelope. It returns the number of bytes written to w.
//
// CompressionNone is accepted and produces an envelope whose payload is the
// raw stream, which still adds the checksum.
func Seal(w io.Writer, m sparse.Matrix, compression format.CompressionType) (int64, error) {
	codec, err := compress.CreateCodec(compression, "envelope")
	if err != nil {
		return 0, err
	}

	inner := pool.GetArrayBuffer()
	defer pool.PutArrayBuffer(inner)

	digest := hash.NewDigest()
	if _, err := Encode(io.MultiWriter(inner, digest), m); err != nil {
		return 0, err
	}

	if uint64(inner.Len()) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: inner stream of %d bytes exceeds the envelope limit", errs.ErrInvalidShape, inner.Len())
	}

	payload, err := codec.Compress(inner.Bytes())
	if err != nil {
		return 0, fmt.Errorf("%s compress: %w", compression, err)
	}

	header := section.EnvelopeHeader{
		Compression: compression,
		RawLength:   uint32(inner.Len()), //nolint:gosec
		Checksum:    digest.Sum64(),
	}

	n, err := w.Write(header.Bytes())
	total := int64(n)
	if err != nil {
		return total, err
	}

	n, err = w.Write(payload)
	total += int64(n)
	if err != nil {
		return total, err
	}

	logging.Logger().Debug("sealed envelope",
		"kind", m.Kind().String(),
		"compression", compression.String(),
		"raw_bytes", inner.Len(),
		"sealed_bytes", total,
	)

	return total, nil
}

// Open reads an SPZ1 envelope from r, verifies it and decodes the inner
// stream. r is read to EOF.
//
// Returns:
//   - ErrBadMagic when r does not start with "SPZ1", or the inner stream is
//     neither SPCO nor SPCS
//   - ErrTruncatedStream when the header is short or the payload does not
//     decompress to the declared length
//   - ErrInvalidCompression for an unknown compression byte
//   - ErrChecksumMismatch when the payload is corrupt
func Open(r io.Reader) (sparse.Matrix, error) {
	var hdr [section.EnvelopeHeaderSize]byte
	if err := readMagic(r, hdr[:], section.MagicEnvelope); err != nil {
		return nil, err
	}

	if err := readFull(r, hdr[section.MagicSize:], "envelope header"); err != nil {
		return nil, err
	}

	var header section.EnvelopeHeader
	if err := header.Parse(hdr[:]); err != nil {
		return nil, err
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading envelope payload: %w", err)
	}

	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return nil, err
	}

	raw, err := compress.DecompressSized(codec, payload, int(header.RawLength))
	if err != nil {
		return nil, fmt.Errorf("%w: %s payload: %w", errs.ErrChecksumMismatch, header.Compression, err)
	}

	if uint64(len(raw)) != uint64(header.RawLength) {
		return nil, fmt.Errorf("%w: payload holds %d bytes, header declares %d",
			errs.ErrTruncatedStream, len(raw), header.RawLength)
	}

	if sum := hash.Checksum(raw); sum != header.Checksum {
		return nil, fmt.Errorf("%w: got %016x, want %016x", errs.ErrChecksumMismatch, sum, header.Checksum)
	}

	logging.Logger().Debug("opened envelope",
		"compression", header.Compression.String(),
		"sealed_bytes", len(payload)+section.EnvelopeHeaderSize,
		"raw_bytes", len(raw),
	)

	return decodeRaw(bytes.NewReader(raw), raw)
}
