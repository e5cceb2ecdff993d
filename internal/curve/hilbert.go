// Package curve generates the visiting orders of the space-filling scans:
// a Hilbert curve clipped to the image and a rectangular spiral.
//
// Every order is a Hamiltonian walk of an H×W grid: each coordinate appears
// exactly once, tagged with the local direction of travel.
package curve

import (
	"math/bits"

	"github.com/gogpu/halftone/kernel"
)

// Step is one visited coordinate of a scan order.
type Step struct {
	Row int
	Col int
	Dir kernel.Direction
}

// Hilbert returns the Hilbert curve order of an h×w grid.
//
// The curve is built on the smallest N×N square with N a power of two and
// N >= max(h, w); points outside the grid are dropped. The direction of each
// step is the move from the previous kept point. The first step has no
// predecessor and takes the direction of the second one.
//
// Curve indices that share all but their lowest 2k bits cover one aligned
// 2^k square, so squares lying wholly outside the grid are skipped without
// walking them. A 1×W grid costs O(W log W) instead of O(W²).
func Hilbert(h, w int) []Step {
	if h <= 0 || w <= 0 {
		return nil
	}

	order := ceilLog2(uint(max(h, w)))
	steps := make([]Step, 0, h*w)

	emit := func(idx int) {
		x, y := hilbertPoint(order, idx)
		s := Step{Row: y, Col: x}
		if k := len(steps); k > 0 {
			prev := steps[k-1]
			s.Dir = direction(prev.Col, prev.Row, x, y)
		}
		steps = append(steps, s)
	}

	// walk visits the 4^level indices starting at base.
	var walk func(level, base int)
	walk = func(level, base int) {
		side := 1 << level
		x, y := hilbertPoint(order, base)
		x0, y0 := x&^(side-1), y&^(side-1)
		switch {
		case x0 >= w || y0 >= h:
		case x0+side <= w && y0+side <= h:
			for idx := base; idx < base+side*side; idx++ {
				emit(idx)
			}
		default:
			quarter := side * side / 4
			for q := range 4 {
				walk(level-1, base+q*quarter)
			}
		}
	}
	walk(order, 0)

	switch {
	case len(steps) > 1:
		steps[0].Dir = steps[1].Dir
	case len(steps) == 1:
		steps[0].Dir = kernel.Right
	}
	return steps
}

// hilbertPoint returns the idx-th point of the Hilbert curve of the given
// order (side 2^order). Each level consumes two bits of idx and maps the
// point into one of four quadrants, transposing or reflecting it as needed.
func hilbertPoint(order, idx int) (x, y int) {
	if idx&3 > 1 {
		x = 1
	}
	if (idx+1)&3 > 1 {
		y = 1
	}
	idx >>= 2

	for i := 1; i < order; i++ {
		n := 1 << i
		switch idx & 3 {
		case 0:
			x, y = y, x
		case 1:
			y += n
		case 2:
			x += n
			y += n
		case 3:
			x, y = 2*n-1-y, n-1-x
		}
		idx >>= 2
	}
	return x, y
}

// direction classifies the move from (ox, oy) to (x, y). Horizontal movement
// wins over vertical; a move with no change is reported as Down.
func direction(ox, oy, x, y int) kernel.Direction {
	switch {
	case x > ox:
		return kernel.Right
	case x < ox:
		return kernel.Left
	case y < oy:
		return kernel.Up
	default:
		return kernel.Down
	}
}

// ceilLog2 returns the number of bits needed to index num values, that is
// ceil(log2(num)), with ceilLog2(0) = ceilLog2(1) = 0.
func ceilLog2(num uint) int {
	if num <= 1 {
		return 0
	}
	return bits.Len(num - 1)
}
