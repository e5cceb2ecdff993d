package halftone

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/gogpu/halftone/internal/curve"
	"github.com/gogpu/halftone/internal/parallel"
	"github.com/gogpu/halftone/internal/scan"
	"github.com/gogpu/halftone/kernel"
)

// Halftoning errors.
var (
	// ErrUnknownStrategy is returned for a Strategy value or name that is not
	// defined.
	ErrUnknownStrategy = errors.New("halftone: unknown strategy")

	// ErrNilImage is returned when Halftone is called without an image.
	ErrNilImage = errors.New("halftone: nil image")
)

// Halftone converts every channel of img to 0 or the white level (1 unless
// WithWhite is given) by error diffusion with kernel k, visiting pixels in
// the order selected by s. A nil kernel thresholds each pixel without
// diffusing any error.
//
// Channels are independent: each one is halftoned as a single-channel image
// and the results are interleaved again. Channels of a color image run on
// separate goroutines unless WithWorkers(1) is given; the output does not
// depend on the worker count.
//
// img is not modified. The result has the same size and format.
func Halftone(img *Image, k *kernel.Kernel, s Strategy, opts ...Option) (*Image, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, uint8(s))
	}
	w, h := img.Bounds()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("halftone: %w: %dx%d", ErrInvalidDimensions, w, h)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	sh := newShared(k, s, w, h, o.white)
	visit := strategyTable[s].visit

	n := img.Channels()
	planes := make([][]uint8, n)
	for c := range n {
		p, err := img.Channel(c)
		if err != nil {
			return nil, fmt.Errorf("halftone: %w", err)
		}
		planes[c] = p
	}

	workers := o.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)

	results := make([][]uint8, n)
	parallel.For(n, workers, func(c int) {
		dst := make([]uint8, w*h)
		visit(planes[c], w, h, sh, dst)
		results[c] = dst
	})

	out, err := imageFromChannels(w, h, results...)
	if err != nil {
		return nil, fmt.Errorf("halftone: %w", err)
	}

	Logger().Debug("halftone",
		"strategy", s,
		"kernel", kernelName(k),
		"width", w,
		"height", h,
		"channels", n,
		"workers", workers,
		"elapsed", time.Since(start),
	)
	return out, nil
}

// newShared builds the read-only inputs shared by all channels of one call.
func newShared(k *kernel.Kernel, s Strategy, w, h int, white uint8) *scan.Shared {
	sh := &scan.Shared{Kernel: k, White: white}
	if k == nil {
		return sh
	}
	switch s {
	case Serpentine:
		sh.Mirrored = k.Mirror()
	case Hilbert:
		sh.Oriented = kernel.Rotate(k)
		sh.Order = curve.CachedHilbert(h, w)
	case Spiral:
		sh.Oriented = kernel.Rotate(k)
	}
	return sh
}

func kernelName(k *kernel.Kernel) string {
	if k == nil {
		return kernel.None
	}
	return k.Name()
}

// HalftoneFile loads the image at in, halftones it with the named kernel and
// strategy, and saves the result to out with 1 bits written as 255.
func HalftoneFile(in, out, kernelID string, s Strategy, mode Mode, opts ...Option) error {
	k, err := kernel.Lookup(kernelID)
	if err != nil {
		return err
	}
	img, err := Load(in, mode)
	if err != nil {
		return err
	}
	opts = append(opts[:len(opts):len(opts)], WithWhite(255))
	res, err := Halftone(img, k, s, opts...)
	if err != nil {
		return err
	}
	return Save(out, res)
}
