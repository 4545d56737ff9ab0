package platform

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

// Inflate grows the rectangle by n on all four sides.
func (r Rect) Inflate(n int) Rect {
	return Rect{
		Left:   r.Left - n,
		Top:    r.Top - n,
		Right:  r.Right + n,
		Bottom: r.Bottom + n,
	}
}

// Contains reports whether other lies entirely inside r.
func (r Rect) Contains(other Rect) bool {
	return other.Left >= r.Left && other.Top >= r.Top &&
		other.Right <= r.Right && other.Bottom <= r.Bottom
}

// ContainsPoint reports whether (x, y) lies inside r.
func (r Rect) ContainsPoint(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Intersect returns the overlapping region of r and other, or the zero Rect.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		Left:   max(r.Left, other.Left),
		Top:    max(r.Top, other.Top),
		Right:  min(r.Right, other.Right),
		Bottom: min(r.Bottom, other.Bottom),
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// RectFromXYWH builds a Rect from an origin and a size.
func RectFromXYWH(x, y, width, height int) Rect {
	return Rect{Left: x, Top: y, Right: x + width, Bottom: y + height}
}
