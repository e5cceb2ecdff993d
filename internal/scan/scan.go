// Package scan implements error diffusion over a single image channel under
// four visiting orders: raster, serpentine, Hilbert curve and spiral.
//
// Every strategy shares the same quantization rule. A pixel whose current
// value v is below 128 becomes 0, otherwise 1, and the residual v - bit*255
// is spread over the pixel's neighbors with the kernel oriented for the local
// direction of travel. Kernel cells that fall outside the image are dropped,
// so some error mass is lost at the borders.
//
// Within one channel each pixel depends on error written by earlier pixels,
// so a channel is always processed sequentially. Different channels share
// nothing mutable and may run in parallel.
package scan

import (
	"github.com/gogpu/halftone/internal/curve"
	"github.com/gogpu/halftone/kernel"
)

// Threshold is the intensity at and above which a pixel quantizes to 1.
const Threshold = 128.0

// fullScale is the intensity represented by a 1 bit.
const fullScale = 255.0

// Shared holds the read-only inputs of one halftoning call. It is built once
// per call and handed to every channel.
type Shared struct {
	// Kernel is the base kernel. Nil selects plain thresholding.
	Kernel *kernel.Kernel

	// Mirrored is Kernel reflected left to right (serpentine only).
	Mirrored *kernel.Kernel

	// Oriented holds Kernel for each travel direction (Hilbert and spiral).
	Oriented *kernel.OrientedSet

	// Order is the precomputed Hilbert order for the image size.
	Order []curve.Step

	// White is the output value of a 1 bit. Zero means 1.
	White uint8
}

// white returns the output value for a 1 bit.
func (sh *Shared) white() uint8 {
	if sh.White == 0 {
		return 1
	}
	return sh.White
}

// Visitor halftones one channel. src holds h rows of w intensities and is
// not modified; the result is written to dst, which has the same length.
type Visitor func(src []uint8, w, h int, sh *Shared, dst []uint8)

// plane is the floating-point working buffer of one channel.
type plane struct {
	w, h int
	pix  []float32
}

func newPlane(src []uint8, w, h int) *plane {
	p := &plane{w: w, h: h, pix: make([]float32, w*h)}
	for i, v := range src[:w*h] {
		p.pix[i] = float32(v)
	}
	return p
}

// visit quantizes pixel (y, x) into dst and diffuses its residual with k,
// whose apply point is placed on the pixel.
func (p *plane) visit(y, x int, k *kernel.Kernel, dst []uint8, white uint8) {
	i := y*p.w + x
	v := p.pix[i]

	var q float32
	if v < Threshold {
		dst[i] = 0
	} else {
		dst[i] = white
		q = fullScale
	}

	if k != nil {
		p.diffuse(y, x, k, v-q)
	}
}

// diffuse adds k's weights times e around (y, x). The kernel window is
// clipped to the image once, so the inner loop carries no bounds checks of
// its own.
func (p *plane) diffuse(y, x int, k *kernel.Kernel, e float32) {
	if e == 0 {
		return
	}
	kr, kc := k.Size()
	or, oc := k.Origin()
	weights := k.Weights()

	// Kernel cell (i, j) lands on image cell (y+i-or, x+j-oc).
	iStart := max(0, or-y)
	iEnd := min(kr, p.h-y+or)
	jStart := max(0, oc-x)
	jEnd := min(kc, p.w-x+oc)
	if iStart >= iEnd || jStart >= jEnd {
		return
	}

	for i := iStart; i < iEnd; i++ {
		base := (y+i-or)*p.w + x - oc
		row := p.pix[base+jStart : base+jEnd]
		krow := weights[i*kc+jStart : i*kc+jEnd]
		for j, wt := range krow {
			row[j] += wt * e
		}
	}
}

// ThresholdOnly maps every sample to 0 or white without diffusing any error.
// No working buffer is allocated.
func ThresholdOnly(src []uint8, w, h int, sh *Shared, dst []uint8) {
	white := sh.white()
	for i, v := range src[:w*h] {
		if float32(v) < Threshold {
			dst[i] = 0
		} else {
			dst[i] = white
		}
	}
}
