package halftone

// Option configures a Halftone call.
//
// Example:
//
//	// Process the channels of a color image one after another
//	out, err := halftone.Halftone(img, k, halftone.Spiral, halftone.WithWorkers(1))
//
//	// Write 0/255 instead of 0/1
//	out, err := halftone.Halftone(img, k, halftone.Raster, halftone.WithWhite(255))
type Option func(*options)

type options struct {
	workers int
	white   uint8
}

func defaultOptions() options {
	return options{
		workers: 0, // one goroutine per channel, up to GOMAXPROCS
		white:   1,
	}
}

// WithWorkers caps the number of goroutines used for the channels of one
// image. 1 processes the channels sequentially on the calling goroutine;
// 0 or less uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithWhite sets the output value of a 1 bit. The default is 1; 255 gives an
// image that can be saved and viewed directly. 0 restores the default.
func WithWhite(v uint8) Option {
	return func(o *options) {
		if v == 0 {
			v = 1
		}
		o.white = v
	}
}
