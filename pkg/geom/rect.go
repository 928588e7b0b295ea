package geom

import "fmt"

// Rect is an axis-aligned rectangle stored by its extents.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromOrigin returns a rectangle with the given size, extending to the
// right and down from origin. Width and height are ensured to be
// non-negative.
func NewRectFromOrigin(origin Point, size Size) Rect {
	return Rect{
		X0: origin.X,
		Y0: origin.Y,
		X1: origin.X + size.Width,
		Y1: origin.Y + size.Height,
	}.Abs()
}

// NewRectFromCenter returns a rectangle of the given size centered on center.
func NewRectFromCenter(center Point, size Size) Rect {
	return NewRectFromOrigin(Point{
		X: center.X - size.Width/2,
		Y: center.Y - size.Height/2,
	}, size)
}

// Abs returns a rectangle with the same extents as r, but with non-negative
// width and height.
func (r Rect) Abs() Rect {
	return Rect{
		X0: min(r.X0, r.X1),
		Y0: min(r.Y0, r.Y1),
		X1: max(r.X0, r.X1),
		Y1: max(r.Y0, r.Y1),
	}
}

func (r Rect) MinX() float64 { return min(r.X0, r.X1) }
func (r Rect) MaxX() float64 { return max(r.X0, r.X1) }
func (r Rect) MinY() float64 { return min(r.Y0, r.Y1) }
func (r Rect) MaxY() float64 { return max(r.Y0, r.Y1) }

// Origin returns the top left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X0, Y: r.Y0}
}

// Width returns X1 − X0. It may be negative for non-normalized rectangles.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns Y1 − Y0. It may be negative for non-normalized rectangles.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

func (r Rect) Center() Point {
	return Point{
		X: 0.5 * (r.X0 + r.X1),
		Y: 0.5 * (r.Y0 + r.Y1),
	}
}

// IsEmpty reports whether r covers no area.
func (r Rect) IsEmpty() bool {
	return !(r.X1 > r.X0 && r.Y1 > r.Y0)
}

// Intersect returns the overlap of r and o. The result is empty when the
// rectangles do not overlap.
//
// Results are valid only if width and height are non-negative.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X0, o.X0)
	y0 := max(r.Y0, o.Y0)
	x1 := min(r.X1, o.X1)
	y1 := min(r.Y1, o.Y1)
	if x1 < x0 || y1 < y0 {
		return Rect{}
	}
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Translate returns r moved by v.
func (r Rect) Translate(v Point) Rect {
	return Rect{X0: r.X0 + v.X, Y0: r.Y0 + v.Y, X1: r.X1 + v.X, Y1: r.Y1 + v.Y}
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect{%s %s}", r.Origin(), r.Size())
}
