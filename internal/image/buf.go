package image

import (
	"errors"
	"fmt"
)

// Errors returned by ImageBuf constructors and accessors.
var (
	// ErrInvalidDimensions reports a zero or negative width or height.
	ErrInvalidDimensions = errors.New("image: width and height must be positive")

	// ErrInvalidFormat reports an unknown Format or an unusable channel count.
	ErrInvalidFormat = errors.New("image: unsupported pixel format")

	// ErrDataTooSmall reports a raw buffer shorter than width*height*channels.
	ErrDataTooSmall = errors.New("image: raw data too short")

	// ErrOutOfBounds is returned when pixel coordinates or a channel index
	// are outside the image.
	ErrOutOfBounds = errors.New("image: pixel or channel out of range")
)

// ImageBuf is an 8-bit image stored row-major with interleaved channels and
// no row padding: sample c of pixel (x, y) is at (y*width+x)*channels + c.
//
// Concurrent readers are fine; writers need their own synchronization.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	format Format
}

// NewImageBuf creates a zeroed image buffer with the given dimensions and
// format.
func NewImageBuf(width, height int, format Format) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	return &ImageBuf{
		data:   make([]byte, format.ImageBytes(width, height)),
		width:  width,
		height: height,
		format: format,
	}, nil
}

// FromRaw creates an ImageBuf over existing data without copying.
// Writes through the buffer are visible in data and vice versa.
func FromRaw(data []byte, width, height int, format Format) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	size := format.ImageBytes(width, height)
	if len(data) < size {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrDataTooSmall, len(data), size)
	}
	return &ImageBuf{
		data:   data[:size],
		width:  width,
		height: height,
		format: format,
	}, nil
}

// FromChannels interleaves equally sized planes into a new image. One plane
// gives Gray8, three give RGB8.
func FromChannels(width, height int, planes ...[]uint8) (*ImageBuf, error) {
	format, ok := FormatForChannels(len(planes))
	if !ok {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidFormat, len(planes))
	}
	b, err := NewImageBuf(width, height, format)
	if err != nil {
		return nil, err
	}
	for c, p := range planes {
		if err := b.SetChannel(c, p); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Clone returns a copy that shares no memory with b.
func (b *ImageBuf) Clone() *ImageBuf {
	return &ImageBuf{
		data:   append([]byte(nil), b.data...),
		width:  b.width,
		height: b.height,
		format: b.format,
	}
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Format returns the sample layout.
func (b *ImageBuf) Format() Format {
	return b.format
}

// Channels returns the number of channels per pixel.
func (b *ImageBuf) Channels() int {
	return b.format.Channels()
}

// Bounds returns width and height.
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the raw interleaved samples.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// RowBytes returns the samples of row y, or nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	n := b.width * b.format.Channels()
	return b.data[y*n : (y+1)*n]
}

// At returns sample c of pixel (x, y), or 0 if out of bounds.
func (b *ImageBuf) At(x, y, c int) uint8 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || c < 0 || c >= b.Channels() {
		return 0
	}
	return b.data[(y*b.width+x)*b.Channels()+c]
}

// Set writes sample c of pixel (x, y).
func (b *ImageBuf) Set(x, y, c int, v uint8) error {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || c < 0 || c >= b.Channels() {
		return ErrOutOfBounds
	}
	b.data[(y*b.width+x)*b.Channels()+c] = v
	return nil
}

// Channel copies channel c into a new width×height plane. For a single
// channel image the plane is a copy of Data.
func (b *ImageBuf) Channel(c int) ([]uint8, error) {
	n := b.Channels()
	if c < 0 || c >= n {
		return nil, fmt.Errorf("%w: channel %d of %d", ErrOutOfBounds, c, n)
	}
	plane := make([]uint8, b.width*b.height)
	if n == 1 {
		copy(plane, b.data)
		return plane, nil
	}
	for i := range plane {
		plane[i] = b.data[i*n+c]
	}
	return plane, nil
}

// SetChannel writes a width×height plane into channel c.
func (b *ImageBuf) SetChannel(c int, plane []uint8) error {
	n := b.Channels()
	if c < 0 || c >= n {
		return fmt.Errorf("%w: channel %d of %d", ErrOutOfBounds, c, n)
	}
	if len(plane) < b.width*b.height {
		return fmt.Errorf("%w: plane has %d samples, need %d", ErrDataTooSmall, len(plane), b.width*b.height)
	}
	if n == 1 {
		copy(b.data, plane)
		return nil
	}
	for i, v := range plane[:b.width*b.height] {
		b.data[i*n+c] = v
	}
	return nil
}

// Expand rewrites every nonzero sample as white, turning a 0/1 halftone
// into a viewable 0/white image.
func (b *ImageBuf) Expand(white uint8) {
	for i, v := range b.data {
		if v != 0 {
			b.data[i] = white
		}
	}
}

// Equal reports whether b and o have the same size, format and samples.
func (b *ImageBuf) Equal(o *ImageBuf) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.width != o.width || b.height != o.height || b.format != o.format {
		return false
	}
	return string(b.data) == string(o.data)
}

// String returns a short description such as "RGB8 640x480".
func (b *ImageBuf) String() string {
	return fmt.Sprintf("%s %dx%d", b.format, b.width, b.height)
}
