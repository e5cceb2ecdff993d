// Package image holds the 8-bit raster buffers that halftoning reads and
// writes, and converts them to and from encoded image files.
package image

// Format is the sample layout of an ImageBuf. Every format stores one byte
// per channel with channels interleaved.
type Format uint8

const (
	// FormatGray8 is a single luminance channel.
	FormatGray8 Format = iota

	// FormatRGB8 is interleaved R, G, B with no alpha.
	FormatRGB8

	formatCount
)

var formatTable = [formatCount]struct {
	name     string
	channels int
}{
	FormatGray8: {"Gray8", 1},
	FormatRGB8:  {"RGB8", 3},
}

// Channels returns the number of samples per pixel, or 0 for an unknown format.
func (f Format) Channels() int {
	if !f.IsValid() {
		return 0
	}
	return formatTable[f].channels
}

// IsGrayscale reports whether f has a single channel.
func (f Format) IsGrayscale() bool {
	return f == FormatGray8
}

func (f Format) String() string {
	if !f.IsValid() {
		return "Unknown"
	}
	return formatTable[f].name
}

// IsValid reports whether f is one of the declared formats.
func (f Format) IsValid() bool {
	return f < formatCount
}

// ImageBytes returns the buffer length of a width×height image.
func (f Format) ImageBytes(width, height int) int {
	return width * height * f.Channels()
}

// FormatForChannels maps a channel count back to its format.
func FormatForChannels(n int) (Format, bool) {
	for f := range formatCount {
		if formatTable[f].channels == n {
			return f, true
		}
	}
	return 0, false
}
