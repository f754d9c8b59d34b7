package common

// HitRegion represents a rectangular hit target in view-local coordinates.
type HitRegion struct {
	ID     string
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point is within the hit region bounds.
func (h HitRegion) Contains(x, y int) bool {
	return x >= h.X && x < h.X+h.Width && y >= h.Y && y < h.Y+h.Height
}

// Offset returns the region translated by dx, dy.
func (h HitRegion) Offset(dx, dy int) HitRegion {
	h.X += dx
	h.Y += dy
	return h
}

// HitTest returns the first region containing the point.
func HitTest(regions []HitRegion, x, y int) (HitRegion, bool) {
	for _, r := range regions {
		if r.Contains(x, y) {
			return r, true
		}
	}
	return HitRegion{}, false
}
