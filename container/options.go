package container

import (
	"fmt"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/internal/options"
)

// Method is the zip compression method applied to every archive entry.
type Method uint16

const (
	MethodStore   Method = Method(zip.Store)            // MethodStore writes entries uncompressed.
	MethodDeflate Method = Method(zip.Deflate)          // MethodDeflate compresses entries with Deflate at best compression.
	MethodZstd    Method = Method(zstd.ZipMethodWinZip) // MethodZstd compresses entries with Zstandard.
)

func (m Method) String() string {
	switch m {
	case MethodStore:
		return "store"
	case MethodDeflate:
		return "deflate"
	case MethodZstd:
		return "zstd"
	default:
		return fmt.Sprintf("method(%d)", uint16(m))
	}
}

// IsValid reports whether m is a method the writer can produce.
func (m Method) IsValid() bool {
	return m == MethodStore || m == MethodDeflate || m == MethodZstd
}

// ParseMethod parses "store", "deflate" or "zstd". An empty string selects
// MethodDeflate.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "deflate":
		return MethodDeflate, nil
	case "store", "none":
		return MethodStore, nil
	case "zstd":
		return MethodZstd, nil
	default:
		return 0, fmt.Errorf("unknown zip method %q", s)
	}
}

// WriterConfig holds the archive writer settings.
type WriterConfig struct {
	method    Method
	valueType string
}

func newWriterConfig() *WriterConfig {
	return &WriterConfig{
		method:    MethodDeflate,
		valueType: format.ValueTypeUint8,
	}
}

// WriterOption configures Write and WriteFile.
type WriterOption = options.Option[*WriterConfig]

// WithMethod sets the compression method of every entry.
func WithMethod(m Method) WriterOption {
	return options.New(func(c *WriterConfig) error {
		if !m.IsValid() {
			return fmt.Errorf("invalid zip method: %s", m)
		}
		c.method = m

		return nil
	})
}

// WithValueType overrides the element type recorded as "dtype" in the
// metadata. The default is "uint8".
func WithValueType(valueType string) WriterOption {
	return options.New(func(c *WriterConfig) error {
		if strings.TrimSpace(valueType) == "" {
			return fmt.Errorf("value type cannot be empty")
		}
		c.valueType = valueType

		return nil
	})
}
