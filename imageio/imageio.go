package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // registers the WebP decoder

	"github.com/arloliu/sparsepix/internal/fsutil"
	"github.com/arloliu/sparsepix/internal/logging"
	"github.com/arloliu/sparsepix/sparse"
)

// JPEGQuality is the quality used when saving JPEG files.
const JPEGQuality = 95

// Mode selects the channel layout of decoded pixels.
type Mode uint8

const (
	ModeAuto Mode = iota // ModeAuto reads grayscale sources as gray and everything else as RGB.
	ModeGray             // ModeGray converts every source to one luminance channel.
	ModeRGB              // ModeRGB converts every source to three channels.
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeGray:
		return "gray"
	case ModeRGB:
		return "rgb"
	default:
		return "unknown"
	}
}

// ParseMode parses "auto", "gray" or "rgb".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "gray", "grey", "l":
		return ModeGray, nil
	case "rgb", "color":
		return ModeRGB, nil
	default:
		return 0, fmt.Errorf("invalid decode mode %q", s)
	}
}

// Decode reads an image in any supported format and returns its pixels and
// format.
func Decode(r io.Reader, mode Mode) (*sparse.Dense, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, 0, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}

		return nil, 0, err
	}

	f, err := ParseFormat(name)
	if err != nil {
		return nil, 0, err
	}

	d, err := FromImage(img, mode)
	if err != nil {
		return nil, 0, err
	}

	return d, f, nil
}

// Load decodes the image file at path.
func Load(path string, mode Mode) (*sparse.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, format, err := Decode(f, mode)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	logging.Logger().Debug("loaded image", "path", path, "format", format.String(), "shape", d.Shape.String())

	return d, nil
}

// Encode writes d in format f.
func Encode(w io.Writer, d *sparse.Dense, f Format) error {
	img, err := ToImage(d)
	if err != nil {
		return err
	}

	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case FormatGIF:
		return gif.Encode(w, img, nil)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, f)
	}
}

// Save writes d to path in the format named by its extension.
func Save(path string, d *sparse.Dense) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if !f.CanEncode() {
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, f)
	}

	return fsutil.WriteFile(path, 0o644, func(w io.Writer) error {
		return Encode(w, d, f)
	})
}

// FromImage copies the pixels of img into a dense array.
func FromImage(img image.Image, mode Mode) (*sparse.Dense, error) {
	bounds := img.Bounds()

	channels := 3
	switch mode {
	case ModeGray:
		channels = 1
	case ModeRGB:
	case ModeAuto:
		if isGray(img) {
			channels = 1
		}
	default:
		return nil, fmt.Errorf("invalid decode mode %d", mode)
	}

	d, err := sparse.NewDense(sparse.Shape{Height: bounds.Dy(), Width: bounds.Dx(), Channels: channels})
	if err != nil {
		return nil, err
	}

	if gray, ok := img.(*image.Gray); ok && channels == 1 {
		for y := range bounds.Dy() {
			start := gray.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(d.Pix[y*bounds.Dx():(y+1)*bounds.Dx()], gray.Pix[start:start+bounds.Dx()])
		}

		return d, nil
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.At(x, y)
			if channels == 1 {
				d.Pix[i] = color.GrayModel.Convert(c).(color.Gray).Y
				i++

				continue
			}

			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			d.Pix[i], d.Pix[i+1], d.Pix[i+2] = n.R, n.G, n.B
			i += 3
		}
	}

	return d, nil
}

// ToImage wraps the pixels of d in an image: *image.Gray for one channel,
// an opaque *image.NRGBA for three.
func ToImage(d *sparse.Dense) (image.Image, error) {
	if _, err := sparse.DenseFrom(d.Shape, d.Pix); err != nil {
		return nil, err
	}

	rect := image.Rect(0, 0, d.Shape.Width, d.Shape.Height)
	if d.Shape.Channels == 1 {
		img := image.NewGray(rect)
		copy(img.Pix, d.Pix)

		return img, nil
	}

	img := image.NewNRGBA(rect)
	for i := range d.Shape.Cells() {
		copy(img.Pix[i*4:i*4+3], d.Pix[i*3:i*3+3])
		img.Pix[i*4+3] = 0xFF
	}

	return img, nil
}

// isGray reports whether every color img can hold is a shade of gray.
func isGray(img image.Image) bool {
	switch m := img.ColorModel().(type) {
	case color.Palette:
		for _, c := range m {
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			if n.R != n.G || n.G != n.B {
				return false
			}
		}

		return true
	default:
		return m == color.GrayModel || m == color.Gray16Model
	}
}
