package curve

import (
	"iter"

	"github.com/gogpu/halftone/kernel"
)

// Spiral returns the rectangular spiral order of an h×w grid, from the
// outermost ring inward. Ring s walks its top edge left to right, its right
// edge top to bottom, its bottom edge right to left and its left edge bottom
// to top. The walk stops at the first ring with no width or height. Rings
// that collapse to a single row or column emit each cell once.
//
// The order is produced lazily; nothing is allocated per step.
func Spiral(h, w int) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		for s := 0; ; s++ {
			top, bottom := s, h-1-s
			left, right := s, w-1-s
			if top > bottom || left > right {
				return
			}

			for c := left; c <= right; c++ {
				if !yield(Step{Row: top, Col: c, Dir: kernel.Right}) {
					return
				}
			}
			for r := top + 1; r <= bottom; r++ {
				if !yield(Step{Row: r, Col: right, Dir: kernel.Down}) {
					return
				}
			}
			if top < bottom {
				for c := right - 1; c >= left; c-- {
					if !yield(Step{Row: bottom, Col: c, Dir: kernel.Left}) {
						return
					}
				}
			}
			if left < right {
				for r := bottom - 1; r > top; r-- {
					if !yield(Step{Row: r, Col: left, Dir: kernel.Up}) {
						return
					}
				}
			}
		}
	}
}
