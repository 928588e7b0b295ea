package layout

import (
	"fmt"

	"github.com/matzehuels/carousel/pkg/geom"
)

// Attributes describes one item produced by a layout query. A fresh value is
// created for every query; the engine never retains it.
type Attributes struct {
	Section int // Virtual section index
	Item    int // Index within the section

	Center geom.Point // Center in content coordinates
	Size   geom.Size  // Actual item size
	Axis   geom.Axis  // Scroll axis the item was laid out on

	// Position is the signed distance of Center from the viewport center
	// along the scroll axis, in strides. Negative values lie before the
	// center.
	Position float64

	// ZIndex is the paint order; larger values paint on top.
	ZIndex int

	// Visual fields written by a Transformer. They are opaque to the engine.
	Alpha       float64    // Opacity in [0, 1]
	Scale       float64    // Uniform scale factor
	Rotation    float64    // Rotation about the view normal, radians
	RotationY   float64    // Perspective rotation about the cross axis, radians
	Translation geom.Point // Offset applied after positioning
	Depth       float64    // Translation toward (+) or away from (−) the viewer
}

// newAttributes returns attributes with identity visual fields.
func newAttributes(section, item int) Attributes {
	return Attributes{
		Section: section,
		Item:    item,
		Alpha:   1,
		Scale:   1,
	}
}

// Frame returns the untransformed rectangle occupied by the item.
func (a Attributes) Frame() geom.Rect {
	return geom.NewRectFromCenter(a.Center, a.Size)
}

// Hidden reports whether the item is fully transparent.
func (a Attributes) Hidden() bool {
	return a.Alpha <= 0
}

func (a Attributes) String() string {
	return fmt.Sprintf("[%d,%d] center=%s pos=%.3f z=%d", a.Section, a.Item, a.Center, a.Position, a.ZIndex)
}
