package projector

import "math"

// Bounds tracks the smallest rectangle enclosing every written output
// pixel. The min and max updates are independent so a pixel that sets a
// new minimum still counts toward the maximum.
type Bounds struct {
	minX, minY int
	maxX, maxY int
	any        bool
}

// NewBounds returns an empty tracker.
func NewBounds() Bounds {
	return Bounds{
		minX: math.MaxInt,
		minY: math.MaxInt,
		maxX: math.MinInt,
		maxY: math.MinInt,
	}
}

// Include grows the rectangle to contain (x, y).
func (b *Bounds) Include(x, y int) {
	if x < b.minX {
		b.minX = x
	}
	if x > b.maxX {
		b.maxX = x
	}
	if y < b.minY {
		b.minY = y
	}
	if y > b.maxY {
		b.maxY = y
	}
	b.any = true
}

// Union merges another tracker into this one. Min/max union is
// associative and commutative, so per-worker trackers merge in any order.
func (b *Bounds) Union(o Bounds) {
	if !o.any {
		return
	}
	b.Include(o.minX, o.minY)
	b.Include(o.maxX, o.maxY)
}

// Empty reports whether no pixel was ever included.
func (b *Bounds) Empty() bool {
	return !b.any
}

// Rect returns the tracked rectangle with an inclusive lower bound and an
// exclusive upper bound. Cropping an image with no visible pixels is an
// error, not a degenerate rectangle.
func (b *Bounds) Rect() (x0, y0, x1, y1 int, err error) {
	if !b.any {
		return 0, 0, 0, 0, &ValidationError{
			Message: "cannot crop: no visible pixels were written",
		}
	}
	return b.minX, b.minY, b.maxX + 1, b.maxY + 1, nil
}
