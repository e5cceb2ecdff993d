package scan

import (
	"github.com/gogpu/halftone/internal/curve"
	"github.com/gogpu/halftone/kernel"
)

// Raster visits rows top to bottom and columns left to right, applying the
// base kernel at every pixel.
func Raster(src []uint8, w, h int, sh *Shared, dst []uint8) {
	if sh.Kernel == nil {
		ThresholdOnly(src, w, h, sh, dst)
		return
	}
	p := newPlane(src, w, h)
	white := sh.white()
	for y := range h {
		for x := range w {
			p.visit(y, x, sh.Kernel, dst, white)
		}
	}
}

// Serpentine visits even rows left to right with the base kernel and odd rows
// right to left with the mirrored kernel, so error always flows toward pixels
// not yet visited.
func Serpentine(src []uint8, w, h int, sh *Shared, dst []uint8) {
	if sh.Kernel == nil {
		ThresholdOnly(src, w, h, sh, dst)
		return
	}
	mirrored := sh.Mirrored
	if mirrored == nil {
		mirrored = sh.Kernel.Mirror()
	}

	p := newPlane(src, w, h)
	white := sh.white()
	for y := range h {
		if y%2 == 0 {
			for x := range w {
				p.visit(y, x, sh.Kernel, dst, white)
			}
		} else {
			for x := w - 1; x >= 0; x-- {
				p.visit(y, x, mirrored, dst, white)
			}
		}
	}
}

// Hilbert visits pixels along the Hilbert curve, applying at each step the
// kernel oriented for the step's direction. A nil sh.Order is computed on
// demand.
func Hilbert(src []uint8, w, h int, sh *Shared, dst []uint8) {
	if sh.Kernel == nil {
		ThresholdOnly(src, w, h, sh, dst)
		return
	}
	order := sh.Order
	if order == nil {
		order = curve.Hilbert(h, w)
	}
	set := oriented(sh)

	p := newPlane(src, w, h)
	white := sh.white()
	for _, s := range order {
		p.visit(s.Row, s.Col, set.For(s.Dir), dst, white)
	}
}

// Spiral visits pixels ring by ring from the border inward, applying the
// kernel oriented for the direction of the current edge.
func Spiral(src []uint8, w, h int, sh *Shared, dst []uint8) {
	if sh.Kernel == nil {
		ThresholdOnly(src, w, h, sh, dst)
		return
	}
	set := oriented(sh)

	p := newPlane(src, w, h)
	white := sh.white()
	for s := range curve.Spiral(h, w) {
		p.visit(s.Row, s.Col, set.For(s.Dir), dst, white)
	}
}

func oriented(sh *Shared) *kernel.OrientedSet {
	if sh.Oriented != nil {
		return sh.Oriented
	}
	return kernel.Rotate(sh.Kernel)
}
