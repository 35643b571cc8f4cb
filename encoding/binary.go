package encoding

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/section"
	"github.com/arloliu/sparsepix/sparse"
)

// Encode writes m in its binary stream format: CSR matrices as CSR-binary,
// COO and DOK matrices as COO-binary.
func Encode(w io.Writer, m sparse.Matrix) (int64, error) {
	switch v := m.(type) {
	case *sparse.CSR:
		return EncodeCSR(w, v)
	case *sparse.COO:
		return EncodeCOO(w, v)
	case *sparse.DOK:
		return EncodeCOO(w, sparse.DOKToCOO(v))
	default:
		return 0, fmt.Errorf("%w: %T", errs.ErrInvalidKind, m)
	}
}

// StreamKind returns the kind a binary stream holds: KindCOO for SPCO and
// KindCSR for SPCS.
func StreamKind(magic []byte) (format.Kind, error) {
	switch {
	case section.HasMagic(magic, section.MagicCOO):
		return format.KindCOO, nil
	case section.HasMagic(magic, section.MagicCSR):
		return format.KindCSR, nil
	case len(magic) < section.MagicSize:
		return 0, fmt.Errorf("%w: %d bytes", errs.ErrTruncatedStream, len(magic))
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrBadMagic, magic[:section.MagicSize])
	}
}

// Decode reads one binary stream from r, dispatching on its magic tag.
// SPCO yields a *sparse.COO, SPCS a *sparse.CSR, and an SPZ1 envelope
// whichever of the two it wraps.
func Decode(r io.Reader) (sparse.Matrix, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(section.MagicSize)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %d bytes, need a magic tag", errs.ErrTruncatedStream, len(magic))
		}

		return nil, err
	}

	if section.HasMagic(magic, section.MagicEnvelope) {
		return Open(br)
	}

	return decodeRaw(br, magic)
}

// decodeRaw decodes an SPCO or SPCS stream whose first bytes are magic.
func decodeRaw(r io.Reader, magic []byte) (sparse.Matrix, error) {
	kind, err := StreamKind(magic)
	if err != nil {
		return nil, err
	}

	if kind == format.KindCSR {
		csr, err := DecodeCSR(r)
		if err != nil {
			return nil, err
		}

		return csr, nil
	}

	coo, err := DecodeCOO(r)
	if err != nil {
		return nil, err
	}

	return coo, nil
}
