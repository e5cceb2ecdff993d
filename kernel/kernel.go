// Package kernel provides error diffusion kernels for halftoning.
//
// A Kernel is an immutable matrix of non-negative weights that sum to 1.0,
// together with an apply point: the cell that sits on the pixel being
// quantized. Weights to the right of and below the apply point receive a
// share of that pixel's quantization error.
//
// The package holds a registry of the classic kernels (see [Lookup]) and the
// geometry needed by direction-aware scan orders (see [Rotate]).
package kernel

import (
	"errors"
	"fmt"
	"math"
)

// Kernel errors.
var (
	// ErrInvalidKernel is returned when a weight matrix cannot form a kernel:
	// it is empty or ragged, has negative weights, or does not sum to its
	// declared total.
	ErrInvalidKernel = errors.New("kernel: invalid kernel")

	// ErrUnknownKernel is returned by Lookup for names not in the registry.
	ErrUnknownKernel = errors.New("kernel: unknown kernel")
)

// sumTolerance is the relative slack allowed between the raw weight sum and
// the declared total.
const sumTolerance = 1e-9

// Kernel is an immutable error diffusion matrix.
//
// Thread safety: Kernel is never modified after construction and is safe for
// concurrent use.
type Kernel struct {
	name    string
	rows    int
	cols    int
	weights []float32 // row-major, len rows*cols

	// Apply point: the cell placed on the pixel being quantized.
	originRow int
	originCol int
}

// Normalize builds a Kernel from raw weights and their declared total. Each
// entry becomes raw/total. The apply point is the middle of the first row,
// using (cols-1)/2 for even widths.
func Normalize(name string, weights [][]float64, total float64) (*Kernel, error) {
	if len(weights) == 0 || len(weights[0]) == 0 {
		return nil, fmt.Errorf("%w: %s: empty weight matrix", ErrInvalidKernel, name)
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w: %s: total must be positive, got %v", ErrInvalidKernel, name, total)
	}

	rows, cols := len(weights), len(weights[0])
	var sum float64
	for i, row := range weights {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: %s: row %d has %d columns, want %d",
				ErrInvalidKernel, name, i, len(row), cols)
		}
		for j, w := range row {
			if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, fmt.Errorf("%w: %s: weight [%d][%d] = %v",
					ErrInvalidKernel, name, i, j, w)
			}
			sum += w
		}
	}
	if math.Abs(sum-total) > sumTolerance*total {
		return nil, fmt.Errorf("%w: %s: weights sum to %v, declared total %v",
			ErrInvalidKernel, name, sum, total)
	}

	k := &Kernel{
		name:    name,
		rows:    rows,
		cols:    cols,
		weights: make([]float32, 0, rows*cols),
	}
	for _, row := range weights {
		for _, w := range row {
			k.weights = append(k.weights, float32(w/total))
		}
	}
	k.originRow, k.originCol = ApplyOffset(Right, rows, cols)
	return k, nil
}

// MustNormalize is like Normalize but panics on error.
// It is intended for kernel tables fixed at compile time.
func MustNormalize(name string, weights [][]float64, total float64) *Kernel {
	k, err := Normalize(name, weights, total)
	if err != nil {
		panic(err)
	}
	return k
}

// Name returns the name the kernel was registered or built with.
func (k *Kernel) Name() string {
	return k.name
}

// Size returns the kernel dimensions.
func (k *Kernel) Size() (rows, cols int) {
	return k.rows, k.cols
}

// Origin returns the apply point as (row, col) within the matrix.
func (k *Kernel) Origin() (row, col int) {
	return k.originRow, k.originCol
}

// At returns the weight at (row, col). Out-of-range positions return 0.
func (k *Kernel) At(row, col int) float32 {
	if row < 0 || row >= k.rows || col < 0 || col >= k.cols {
		return 0
	}
	return k.weights[row*k.cols+col]
}

// Weights returns the row-major weights. The slice is shared with the kernel
// and must not be modified.
func (k *Kernel) Weights() []float32 {
	return k.weights
}

// Sum returns the total mass of the kernel, which is 1.0 up to rounding.
func (k *Kernel) Sum() float64 {
	var s float64
	for _, w := range k.weights {
		s += float64(w)
	}
	return s
}

// String returns a short description such as "FLOYD_STEINBERG 2x3".
func (k *Kernel) String() string {
	return fmt.Sprintf("%s %dx%d", k.name, k.rows, k.cols)
}

// remap builds a kernel of size rows×cols whose cell (i, j) takes the weight
// of k at src(i, j).
func (k *Kernel) remap(rows, cols int, src func(i, j int) (int, int)) *Kernel {
	out := &Kernel{
		name:    k.name,
		rows:    rows,
		cols:    cols,
		weights: make([]float32, rows*cols),
	}
	for i := range rows {
		for j := range cols {
			si, sj := src(i, j)
			out.weights[i*cols+j] = k.weights[si*k.cols+sj]
		}
	}
	return out
}
