package transform

import (
	"math"

	"github.com/matzehuels/carousel/pkg/layout"
)

// shrink scales and fades a by its distance from center. It is shared by
// the overlapping variants.
func shrink(a *layout.Attributes, minScale, minAlpha float64) {
	d := math.Abs(a.Position)
	a.Scale = max(1-(1-minScale)*d, minScale)
	a.Alpha = max(minAlpha+(1-d)*(1-minAlpha), 0)
	a.ZIndex = int((1 - d) * 10)
}

// Overlap shrinks neighbours and tucks them behind the centered item. It
// only acts on horizontal carousels.
type Overlap struct{ base }

func NewOverlap(opts Options) *Overlap {
	return &Overlap{newBase(opts)}
}

func (t *Overlap) ProposedSpacing() float64 {
	if !t.horizontal() {
		return 0
	}
	return t.opts.ItemSize.Width * -t.minScale * 0.6
}

func (t *Overlap) Apply(a *layout.Attributes) {
	if !t.horizontal() {
		return
	}
	shrink(a, t.minScale, t.minAlpha)
}

// Linear is a gentler [Overlap] with a smaller negative spacing.
type Linear struct{ base }

func NewLinear(opts Options) *Linear {
	return &Linear{newBase(opts)}
}

func (t *Linear) ProposedSpacing() float64 {
	if !t.horizontal() {
		return 0
	}
	return t.opts.ItemSize.Width * -t.minScale * 0.2
}

func (t *Linear) Apply(a *layout.Attributes) {
	if !t.horizontal() {
		return
	}
	shrink(a, t.minScale, t.minAlpha)
}
