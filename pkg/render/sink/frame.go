package sink

import (
	"cmp"
	"slices"

	"github.com/matzehuels/carousel/pkg/geom"
	"github.com/matzehuels/carousel/pkg/layout"
)

// Frame is a snapshot of a carousel viewport.
type Frame struct {
	// Viewport is the visible rectangle in content coordinates.
	Viewport geom.Rect

	// Items are the attributes of every item intersecting Viewport.
	Items []layout.Attributes
}

// PaintOrder returns the visible items of f in drawing order, back to front.
func (f Frame) PaintOrder() []layout.Attributes {
	items := make([]layout.Attributes, 0, len(f.Items))
	for _, a := range f.Items {
		if !a.Hidden() {
			items = append(items, a)
		}
	}
	slices.SortStableFunc(items, func(a, b layout.Attributes) int {
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})
	return items
}

// local converts a content-space point to viewport coordinates.
func (f Frame) local(pt geom.Point) geom.Point {
	return pt.Sub(f.Viewport.Origin())
}

// Bounds returns the on-screen bounding box of a in viewport coordinates,
// ignoring Rotation.
func (f Frame) Bounds(a layout.Attributes) geom.Rect {
	sx, sy := projectedScale(a)
	c := f.local(a.Center.Add(a.Translation))
	return geom.NewRectFromCenter(c, geom.Sz(a.Size.Width*sx, a.Size.Height*sy))
}
