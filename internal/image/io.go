package image

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrDecode is returned when an image cannot be read or decoded.
	ErrDecode = errors.New("image: decode")

	// ErrEncode is returned when an image cannot be encoded or written.
	ErrEncode = errors.New("image: encode")

	// ErrUnsupportedFormat is returned when the file extension names no
	// known encoder.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// Mode selects the channel layout of a decoded image.
type Mode uint8

const (
	// ModeAuto keeps grayscale sources as Gray8 and converts the rest to RGB8.
	ModeAuto Mode = iota

	// ModeColor always produces RGB8. Alpha is dropped.
	ModeColor

	// ModeGray always produces Gray8 using luminance weights.
	ModeGray
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeColor:
		return "color"
	case ModeGray:
		return "gray"
	default:
		return "unknown"
	}
}

// CompressedExt is the suffix of zstd-compressed image files.
const CompressedExt = ".zst"

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// JPEGQuality is the quality used when saving JPEG files.
const JPEGQuality = 95

// Load reads and decodes the image file at path.
func Load(path string, mode Mode) (*ImageBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer func() { _ = f.Close() }()

	b, err := Decode(f, mode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// LoadFromBytes decodes an image held in memory.
func LoadFromBytes(data []byte, mode Mode) (*ImageBuf, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrDecode, ErrEmptyData)
	}
	return Decode(bytes.NewReader(data), mode)
}

// Decode decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image from r. A zstd
// frame is recognized by its magic number and decompressed first.
func Decode(r io.Reader, mode Mode) (*ImageBuf, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(len(zstdMagic)); err == nil && bytes.Equal(magic, zstdMagic) {
		dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrDecode, err)
		}
		defer dec.Close()
		return decode(dec, mode)
	}
	return decode(br, mode)
}

func decode(r io.Reader, mode Mode) (*ImageBuf, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	b := FromStdImage(img, mode)
	if b == nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, ErrInvalidDimensions)
	}
	return b, nil
}

// Save encodes b into the file at path. The encoder is chosen from the
// extension; a trailing ".zst" compresses the encoded file with zstd.
func Save(path string, b *ImageBuf) error {
	ext := strings.ToLower(filepath.Ext(path))
	compressed := ext == CompressedExt
	if compressed {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	if !encodable(ext) {
		return fmt.Errorf("%w: %w %q", ErrEncode, ErrUnsupportedFormat, ext)
	}

	path = filepath.Clean(path)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	// fail closes and removes the partly written file.
	fail := func(err error) error {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}

	var w io.Writer = f
	var enc *zstd.Encoder
	if compressed {
		enc, err = zstd.NewWriter(f,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		)
		if err != nil {
			return fail(fmt.Errorf("%w: zstd: %w", ErrEncode, err))
		}
		w = enc
	}

	if err := Encode(w, ext, b); err != nil {
		if enc != nil {
			_ = enc.Close()
		}
		return fail(err)
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return fail(fmt.Errorf("%w: zstd: %w", ErrEncode, err))
		}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

func encodable(ext string) bool {
	switch ext {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		return true
	default:
		return false
	}
}

// Encode writes b to w in the format named by ext (".png", ".jpg", ".jpeg",
// ".bmp", ".tif" or ".tiff"; the leading dot is optional).
func Encode(w io.Writer, ext string, b *ImageBuf) error {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	img := b.ToStdImage()
	var err error
	switch ext {
	case ".png":
		err = png.Encode(w, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case ".bmp":
		err = bmp.Encode(w, img)
	case ".tif", ".tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %w %q", ErrEncode, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrEncode, ext[1:], err)
	}
	return nil
}

// FromStdImage converts a standard library image. Returns nil for an empty
// image.
func FromStdImage(img image.Image, mode Mode) *ImageBuf {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	format := FormatRGB8
	switch mode {
	case ModeGray:
		format = FormatGray8
	case ModeAuto:
		if isGray(img) {
			format = FormatGray8
		}
	}

	buf, err := NewImageBuf(width, height, format)
	if err != nil {
		return nil
	}

	// Fast path for 8-bit gray sources
	if g, ok := img.(*image.Gray); ok && format == FormatGray8 {
		for y := range height {
			start := y * g.Stride
			copy(buf.RowBytes(y), g.Pix[start:start+width])
		}
		return buf
	}

	for y := range height {
		row := buf.RowBytes(y)
		for x := range width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			if format == FormatGray8 {
				row[x] = luminance(c.R, c.G, c.B)
				continue
			}
			row[x*3] = c.R
			row[x*3+1] = c.G
			row[x*3+2] = c.B
		}
	}
	return buf
}

func isGray(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	default:
		return false
	}
}

// luminance returns 0.299*R + 0.587*G + 0.114*B.
func luminance(r, g, b uint8) uint8 {
	return uint8((int(r)*299 + int(g)*587 + int(b)*114) / 1000)
}

// ToStdImage converts the ImageBuf to *image.Gray or an opaque *image.NRGBA.
func (b *ImageBuf) ToStdImage() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)

	if b.format == FormatGray8 {
		gray := image.NewGray(rect)
		copy(gray.Pix, b.data)
		return gray
	}

	nrgba := image.NewNRGBA(rect)
	for y := range b.height {
		row := b.RowBytes(y)
		dst := nrgba.Pix[y*nrgba.Stride:]
		for x := range b.width {
			dst[x*4] = row[x*3]
			dst[x*4+1] = row[x*3+1]
			dst[x*4+2] = row[x*3+2]
			dst[x*4+3] = 255
		}
	}
	return nrgba
}
