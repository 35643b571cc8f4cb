// Package sparsepix stores images whose pixels are mostly empty as sparse
// matrices.
//
// An image is loaded into a dense array (see package imageio), converted to
// one of three sparse representations and written in a compact binary form:
//
//   - DOK, a dictionary of keys, the only representation that can be edited
//   - COO, parallel coordinate and value lists in row-major order
//   - CSR, compressed sparse rows with O(log n) point lookup
//
// RGB pixels are stored as one packed integer (r<<16 | g<<8 | b), so a color
// image is a single matrix with three channels in its shape. Package
// container stores the three planes separately instead.
//
// # Basic Usage
//
// Compressing an image:
//
//	d, _ := imageio.Load("scan.png", imageio.ModeAuto)
//	m, _ := sparsepix.Compress(d, format.KindCSR)
//	n, _ := sparsepix.WriteFile("scan.spc", m, sparsepix.WithCompression(format.CompressionZstd))
//
// Restoring it:
//
//	m, _ := sparsepix.ReadFile("scan.spc")
//	_ = imageio.Save("restored.png", sparsepix.Decompress(m))
//
// # Package Structure
//
// This package wraps the most common paths through the lower-level packages:
// sparse (representations and conversion), encoding (SPCO, SPCS, SPZ1 and
// JSON streams), container (zip archives of channel planes) and transform
// (crop, rotate, flip).
package sparsepix

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/arloliu/sparsepix/container"
	"github.com/arloliu/sparsepix/encoding"
	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/internal/fsutil"
	"github.com/arloliu/sparsepix/internal/logging"
	"github.com/arloliu/sparsepix/internal/options"
	"github.com/arloliu/sparsepix/section"
	"github.com/arloliu/sparsepix/sparse"
)

// sniffSize is the number of leading bytes DetectFileFormat inspects.
const sniffSize = 512

// FileFormat identifies the layout of a file written by sparsepix.
type FileFormat uint8

const (
	FileFormatUnknown   FileFormat = iota // FileFormatUnknown is anything not recognized.
	FileFormatCOO                         // FileFormatCOO is a raw SPCO stream.
	FileFormatCSR                         // FileFormatCSR is a raw SPCS stream.
	FileFormatEnvelope                    // FileFormatEnvelope is a compressed SPZ1 envelope.
	FileFormatJSON                        // FileFormatJSON is a JSON COO document.
	FileFormatContainer                   // FileFormatContainer is a zip archive of channel planes.
)

func (f FileFormat) String() string {
	switch f {
	case FileFormatCOO:
		return "COO-binary"
	case FileFormatCSR:
		return "CSR-binary"
	case FileFormatEnvelope:
		return "SPZ1"
	case FileFormatJSON:
		return "JSON-COO"
	case FileFormatContainer:
		return "container"
	default:
		return "unknown"
	}
}

// Config holds the settings shared by Compress and WriteFile.
type Config struct {
	compression format.CompressionType
	background  uint32
}

func newConfig() *Config {
	return &Config{compression: format.CompressionNone}
}

// Option configures Compress, Encode and WriteFile.
type Option = options.Option[*Config]

// WithCompression wraps written streams in an SPZ1 envelope compressed with
// c. The default, CompressionNone, writes the raw SPCO/SPCS stream.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *Config) error {
		if !c.IsValid() {
			return fmt.Errorf("%w: %s", errs.ErrInvalidCompression, c)
		}
		cfg.compression = c

		return nil
	})
}

// WithBackground sets the value Compress treats as empty. For RGB images it
// is a packed value. Zero cells are always empty.
func WithBackground(v uint32) Option {
	return options.NoError(func(cfg *Config) {
		cfg.background = v
	})
}

// SetLogger installs the logger used by every sparsepix package. Logging is
// off until a logger is set; nil turns it off again.
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the logger installed by SetLogger.
func Logger() *slog.Logger {
	return logging.Logger()
}

// Compress converts a dense image to the representation named by kind.
//
// Example:
//
//	m, err := sparsepix.Compress(d, format.KindCOO, sparsepix.WithBackground(255))
func Compress(d *sparse.Dense, kind format.Kind, opts ...Option) (sparse.Matrix, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	dok, err := sparse.DenseToDOK(d, cfg.background)
	if err != nil {
		return nil, err
	}

	return sparse.ToKind(dok, kind)
}

// Decompress scatters m into a new dense array.
func Decompress(m sparse.Matrix) *sparse.Dense {
	return m.ToDense()
}

// Encode writes m to w as SPCO/SPCS, or as an SPZ1 envelope when
// WithCompression selects an algorithm.
func Encode(w io.Writer, m sparse.Matrix, opts ...Option) (int64, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return 0, err
	}

	if cfg.compression == format.CompressionNone {
		return encoding.Encode(w, m)
	}

	return encoding.Seal(w, m, cfg.compression)
}

// WriteFile encodes m to path and returns the number of bytes written. The
// file is replaced atomically; on error no partial file is left behind.
func WriteFile(path string, m sparse.Matrix, opts ...Option) (int64, error) {
	var n int64
	err := fsutil.WriteFile(path, 0o644, func(w io.Writer) error {
		var err error
		n, err = Encode(w, m, opts...)

		return err
	})
	if err != nil {
		return 0, err
	}

	logging.Logger().Debug("wrote sparse file", "path", path, "kind", m.Kind().String(), "bytes", n)

	return n, nil
}

// WriteJSONFile writes m to path as a JSON COO document.
func WriteJSONFile(path string, m sparse.Matrix) error {
	return fsutil.WriteFile(path, 0o644, func(w io.Writer) error {
		return encoding.EncodeCOOJSON(w, m)
	})
}

// DetectFormat identifies a file from its leading bytes.
func DetectFormat(prefix []byte) FileFormat {
	switch {
	case section.HasMagic(prefix, section.MagicCOO):
		return FileFormatCOO
	case section.HasMagic(prefix, section.MagicCSR):
		return FileFormatCSR
	case section.HasMagic(prefix, section.MagicEnvelope):
		return FileFormatEnvelope
	case container.HasMagic(prefix):
		return FileFormatContainer
	case bytes.HasPrefix(bytes.TrimLeft(prefix, " \t\r\n"), []byte("{")):
		return FileFormatJSON
	default:
		return FileFormatUnknown
	}
}

// DetectFileFormat identifies the file at path from its leading bytes.
func DetectFileFormat(path string) (FileFormat, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileFormatUnknown, err
	}
	defer f.Close()

	buf := make([]byte, sniffSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FileFormatUnknown, err
	}

	return DetectFormat(buf[:n]), nil
}

// ReadFile reads a matrix written by WriteFile or WriteJSONFile, detecting
// the format from the file content.
//
// A container file holding a single plane yields that plane; use
// container.ReadFile for multi-plane archives.
func ReadFile(path string) (sparse.Matrix, error) {
	ff, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}

	switch ff {
	case FileFormatContainer:
		a, err := container.ReadFile(path)
		if err != nil {
			return nil, err
		}

		if len(a.Channels) != 1 {
			return nil, fmt.Errorf("%w: %s holds %d planes, read it with container.ReadFile",
				errs.ErrUnsupportedOperation, path, len(a.Channels))
		}

		return a.Channels[0], nil
	case FileFormatUnknown:
		return nil, fmt.Errorf("%w: %s is not a sparsepix file", errs.ErrBadMagic, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if ff == FileFormatJSON {
		coo, err := encoding.DecodeCOOJSON(f)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}

		return coo, nil
	}

	m, err := encoding.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	logging.Logger().Debug("read sparse file", "path", path, "format", ff.String(), "kind", m.Kind().String())

	return m, nil
}
