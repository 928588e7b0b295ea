package transform

import (
	"math"

	"github.com/matzehuels/carousel/pkg/layout"
)

// CrossFading pins every item to the viewport center and blends the two
// nearest items by opacity.
type CrossFading struct{ base }

func NewCrossFading(opts Options) *CrossFading {
	return &CrossFading{newBase(opts)}
}

func (t *CrossFading) Apply(a *layout.Attributes) {
	pos := a.Position
	s := stride(a, t.ProposedSpacing())
	a.Translation = a.Axis.Point(-s*pos, 0)
	if math.Abs(pos) < 1 {
		a.Alpha = 1 - math.Abs(pos)
		a.ZIndex = 1
		return
	}
	a.Alpha = 0
	a.ZIndex = math.MinInt
}

// ZoomOut shrinks and fades items as they leave the center, pulling them
// inward so neighbours stay visible.
type ZoomOut struct{ base }

func NewZoomOut(opts Options) *ZoomOut {
	return &ZoomOut{newBase(opts)}
}

func (t *ZoomOut) Apply(a *layout.Attributes) {
	pos := a.Position
	if pos < -1 || pos > 1 {
		a.Alpha = 0
		return
	}

	minScale, minAlpha := t.minScale, t.minAlpha
	scale := max(minScale, 1-math.Abs(pos))
	a.Scale = scale

	crossMargin := a.Axis.Cross().Extent(a.Size) * (1 - scale) / 2
	alongMargin := stride(a, t.ProposedSpacing()) * (1 - scale) / 2
	shift := alongMargin - crossMargin*2
	if pos > 0 {
		shift = -shift
	}
	a.Translation = a.Axis.Point(shift, 0)

	if minScale >= 1 {
		a.Alpha = 1
		return
	}
	a.Alpha = minAlpha + (scale-minScale)/(1-minScale)*(1-minAlpha)
}

// Depth keeps the outgoing item in place while the incoming item slides in
// from behind, growing as it arrives.
type Depth struct{ base }

func NewDepth(opts Options) *Depth {
	return &Depth{newBase(opts)}
}

func (t *Depth) Apply(a *layout.Attributes) {
	pos := a.Position
	switch {
	case pos >= -1 && pos <= 0:
		a.Alpha = 1
		a.Translation = a.Axis.Point(0, 0)
		a.ZIndex = 1
	case pos > 0 && pos < 1:
		a.Alpha = 1 - pos
		a.Translation = a.Axis.Point(-stride(a, t.ProposedSpacing())*pos, 0)
		minScale := t.minScale
		a.Scale = minScale + (1-minScale)*(1-math.Abs(pos))
		a.ZIndex = 0
	default:
		a.Alpha = 0
		a.ZIndex = math.MinInt
	}
}
