// Package halftone converts continuous-tone images to binary images by error
// diffusion.
//
// # Overview
//
// Each channel of an image is reduced to one bit per pixel. Pixels are
// visited one at a time; a pixel below 128 becomes 0, any other becomes 1,
// and the difference between the pixel's value and its output (0 or 255) is
// spread over nearby pixels with a diffusion kernel. What varies is the
// visiting order:
//
//   - [Raster]: rows top to bottom, each left to right
//   - [Serpentine]: like Raster, but odd rows run right to left
//   - [Hilbert]: along the Hilbert space-filling curve
//   - [Spiral]: clockwise rings from the border toward the center
//
// For Serpentine the kernel is mirrored on reversed rows; for Hilbert and
// Spiral it is rotated to follow the direction of travel, so that error
// always flows ahead of the walk.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/halftone"
//	    "github.com/gogpu/halftone/kernel"
//	)
//
//	img, err := halftone.Load("photo.jpg", halftone.ModeColor)
//	if err != nil {
//	    return err
//	}
//	k, _ := kernel.Lookup("FLOYD_STEINBERG")
//	out, err := halftone.Halftone(img, k, halftone.Hilbert, halftone.WithWhite(255))
//	if err != nil {
//	    return err
//	}
//	return halftone.Save("photo.png", out)
//
// # Kernels
//
// The kernel package registers the classic kernels (Floyd-Steinberg,
// Stevenson-Arce, Burkes, Sierra, Stucki, Jarvis-Judice-Ninke) under their
// names and aliases, and builds custom ones with [kernel.Normalize]. A nil
// kernel (the name NONE) thresholds without diffusion.
//
// # Edges
//
// Kernel taps that fall outside the image are dropped, so some error is
// lost at the borders. This is intended and is not reported as an error.
//
// # Concurrency
//
// A channel is processed sequentially because each pixel depends on error
// from earlier pixels. The channels of a color image share nothing mutable
// and are processed in parallel; see [WithWorkers].
//
// # Logging
//
// halftone is silent by default. Use [SetLogger] to receive a debug record
// per call.
package halftone
