package geom

import (
	"fmt"
	"strings"
)

// Axis is the direction a carousel scrolls along.
type Axis int

const (
	// Horizontal scrolls along X. It is the primary axis and the zero value.
	Horizontal Axis = iota
	// Vertical scrolls along Y.
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis converts a name ("horizontal", "vertical", or the short forms
// "h", "v", "x", "y") into an Axis.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "h", "x":
		return Horizontal, nil
	case "vertical", "v", "y":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown axis %q", s)
}

// Cross returns the perpendicular axis.
func (a Axis) Cross() Axis {
	if a == Vertical {
		return Horizontal
	}
	return Vertical
}

// Of returns the component of pt along a.
func (a Axis) Of(pt Point) float64 {
	if a == Vertical {
		return pt.Y
	}
	return pt.X
}

// Extent returns the dimension of sz along a.
func (a Axis) Extent(sz Size) float64 {
	if a == Vertical {
		return sz.Height
	}
	return sz.Width
}

// Min returns the lower edge of r along a.
func (a Axis) Min(r Rect) float64 {
	if a == Vertical {
		return r.MinY()
	}
	return r.MinX()
}

// Max returns the upper edge of r along a.
func (a Axis) Max(r Rect) float64 {
	if a == Vertical {
		return r.MaxY()
	}
	return r.MaxX()
}

// Point builds a point whose a-component is along and whose cross component
// is across.
func (a Axis) Point(along, across float64) Point {
	if a == Vertical {
		return Point{X: across, Y: along}
	}
	return Point{X: along, Y: across}
}

// Size builds a size whose a-dimension is along and whose cross dimension is
// across.
func (a Axis) Size(along, across float64) Size {
	if a == Vertical {
		return Size{Width: across, Height: along}
	}
	return Size{Width: along, Height: across}
}

// With returns pt with its a-component replaced by v.
func (a Axis) With(pt Point, v float64) Point {
	if a == Vertical {
		pt.Y = v
	} else {
		pt.X = v
	}
	return pt
}
