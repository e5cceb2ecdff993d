package image

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize returns b scaled to width×height with Catmull-Rom interpolation.
// The format is preserved.
func Resize(b *ImageBuf, width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if width == b.width && height == b.height {
		return b.Clone(), nil
	}

	rect := image.Rect(0, 0, width, height)
	src := b.ToStdImage()

	var dst draw.Image
	mode := ModeColor
	if b.format == FormatGray8 {
		dst = image.NewGray(rect)
		mode = ModeGray
	} else {
		dst = image.NewNRGBA(rect)
	}
	draw.CatmullRom.Scale(dst, rect, src, src.Bounds(), draw.Src, nil)

	return FromStdImage(dst, mode), nil
}

// Scale returns b resized by factor, keeping at least one pixel per side.
func Scale(b *ImageBuf, factor float64) (*ImageBuf, error) {
	if factor <= 0 {
		return nil, ErrInvalidDimensions
	}
	w := max(1, int(float64(b.width)*factor+0.5))
	h := max(1, int(float64(b.height)*factor+0.5))
	return Resize(b, w, h)
}
