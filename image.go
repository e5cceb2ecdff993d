package halftone

import (
	"io"

	intImage "github.com/gogpu/halftone/internal/image"
)

// Image is an 8-bit grayscale or RGB raster.
type Image = intImage.ImageBuf

// ImageFormat is the channel layout of an Image.
type ImageFormat = intImage.Format

// Image formats.
const (
	// FormatGray8 has one channel per pixel.
	FormatGray8 = intImage.FormatGray8

	// FormatRGB8 has three interleaved channels per pixel.
	FormatRGB8 = intImage.FormatRGB8
)

// Mode selects the channel layout of a decoded image.
type Mode = intImage.Mode

// Decode modes.
const (
	ModeAuto  = intImage.ModeAuto
	ModeColor = intImage.ModeColor
	ModeGray  = intImage.ModeGray
)

// Image errors, re-exported for errors.Is.
var (
	ErrDecode            = intImage.ErrDecode
	ErrEncode            = intImage.ErrEncode
	ErrUnsupportedFormat = intImage.ErrUnsupportedFormat
	ErrInvalidDimensions = intImage.ErrInvalidDimensions
	ErrInvalidFormat     = intImage.ErrInvalidFormat
)

// NewImage creates a zeroed image.
func NewImage(width, height int, format ImageFormat) (*Image, error) {
	return intImage.NewImageBuf(width, height, format)
}

// ImageFromBytes wraps row-major interleaved samples without copying.
func ImageFromBytes(data []byte, width, height int, format ImageFormat) (*Image, error) {
	return intImage.FromRaw(data, width, height, format)
}

func imageFromChannels(width, height int, planes ...[]uint8) (*Image, error) {
	return intImage.FromChannels(width, height, planes...)
}

// Load reads an image file. PNG, JPEG, GIF, BMP, TIFF and WebP are
// recognized by content; zstd-compressed files are decompressed first.
func Load(path string, mode Mode) (*Image, error) {
	return intImage.Load(path, mode)
}

// Decode reads an image from r. See Load for the recognized formats.
func Decode(r io.Reader, mode Mode) (*Image, error) {
	return intImage.Decode(r, mode)
}

// Save writes img to path, choosing PNG, JPEG, BMP or TIFF from the
// extension. A trailing ".zst" compresses the file with zstd.
func Save(path string, img *Image) error {
	return intImage.Save(path, img)
}

// Encode writes img to w in the format named by ext, such as ".png".
func Encode(w io.Writer, ext string, img *Image) error {
	return intImage.Encode(w, ext, img)
}

// Resize scales img to width×height with Catmull-Rom interpolation.
func Resize(img *Image, width, height int) (*Image, error) {
	return intImage.Resize(img, width, height)
}

// Scale resizes img by factor.
func Scale(img *Image, factor float64) (*Image, error) {
	return intImage.Scale(img, factor)
}
