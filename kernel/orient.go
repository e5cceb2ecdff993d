package kernel

// Direction is the local direction of travel of a scan at the pixel being
// quantized. A kernel oriented for a direction diffuses error toward pixels
// that the scan has not visited yet.
type Direction uint8

// Travel directions. The order matches the index of OrientedSet.
const (
	// Right is +x, the forward direction of a raster scan.
	Right Direction = iota

	// Left is -x, the backward direction.
	Left

	// Up is -y.
	Up

	// Down is +y.
	Down

	directionCount
)

var directionNames = [directionCount]string{
	Right: "right",
	Left:  "left",
	Up:    "up",
	Down:  "down",
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	if d >= directionCount {
		return "unknown"
	}
	return directionNames[d]
}

// Valid reports whether d is one of the four travel directions.
func (d Direction) Valid() bool {
	return d < directionCount
}

// OrientedSet holds a kernel rotated for each travel direction, indexed by
// Direction. All members carry the same weights at remapped positions.
//
// Thread safety: an OrientedSet is read-only after Rotate returns and may be
// shared across goroutines.
type OrientedSet [directionCount]*Kernel

// For returns the member oriented for d.
func (s *OrientedSet) For(d Direction) *Kernel {
	return s[d]
}

// Rotate builds the four orientations of k:
//   - Right: k itself
//   - Left: k rotated by 180°
//   - Down: k rotated 90° clockwise (rows reversed, then transposed)
//   - Up: k rotated 90° counter-clockwise (columns reversed, then transposed)
//
// Each member's apply point is given by ApplyOffset.
func Rotate(k *Kernel) *OrientedSet {
	r, c := k.rows, k.cols

	left := k.remap(r, c, func(i, j int) (int, int) {
		return r - 1 - i, c - 1 - j
	})
	down := k.remap(c, r, func(i, j int) (int, int) {
		return r - 1 - j, i
	})
	up := k.remap(c, r, func(i, j int) (int, int) {
		return j, c - 1 - i
	})

	set := &OrientedSet{Right: k, Left: left, Up: up, Down: down}
	for d := Left; d < directionCount; d++ {
		set[d].originRow, set[d].originCol = ApplyOffset(d, r, c)
	}
	return set
}

// ApplyOffset returns the position, inside the kernel oriented for d, of the
// pixel being quantized. rows and cols are the dimensions of the base
// (unrotated) kernel, whose apply point is (0, (cols-1)/2).
//
// The apply point sits on the kernel edge facing away from the direction of
// travel, at index (cols-1)/2 along that edge. For even widths this is the
// floor in every orientation, so Left and Up do not take the reflected
// (ceiling) position a pure rotation would give.
func ApplyOffset(d Direction, rows, cols int) (rowOffset, colOffset int) {
	mid := (cols - 1) / 2
	switch d {
	case Left:
		return rows - 1, mid
	case Down:
		return mid, rows - 1
	case Up:
		return mid, 0
	default:
		return 0, mid
	}
}

// Mirror returns k reflected left to right. The apply point stays at
// (0, (cols-1)/2), which for odd widths is the reflected point. Serpentine
// scans use it on right-to-left rows.
func (k *Kernel) Mirror() *Kernel {
	c := k.cols
	m := k.remap(k.rows, c, func(i, j int) (int, int) {
		return i, c - 1 - j
	})
	m.originRow, m.originCol = ApplyOffset(Right, k.rows, c)
	return m
}
