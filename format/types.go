package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/sparsepix/errs"
)

type (
	Kind            uint8
	CompressionType uint8
)

const (
	KindDOK Kind = 0x1 // KindDOK represents the dictionary-of-keys representation.
	KindCOO Kind = 0x2 // KindCOO represents the coordinate-list representation.
	KindCSR Kind = 0x3 // KindCSR represents the compressed-sparse-row representation.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// ValueTypeUint8 is the only element type stored by sparsepix: 8-bit channels.
const ValueTypeUint8 = "uint8"

// Kinds lists every sparse representation kind in declaration order.
var Kinds = []Kind{KindDOK, KindCOO, KindCSR}

func (k Kind) String() string {
	switch k {
	case KindDOK:
		return "DOK"
	case KindCOO:
		return "COO"
	case KindCSR:
		return "CSR"
	default:
		return "Unknown"
	}
}

// IsValid reports whether k names a known representation.
func (k Kind) IsValid() bool {
	return k >= KindDOK && k <= KindCSR
}

// ParseKind parses a case-insensitive kind name such as "csr".
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DOK":
		return KindDOK, nil
	case "COO":
		return KindCOO, nil
	case "CSR":
		return KindCSR, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidKind, s)
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c names a known compression type.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

// ParseCompression parses a case-insensitive compression name such as "zstd".
// The empty string parses as CompressionNone.
func ParseCompression(s string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCompression, s)
	}
}
