package transform

import (
	"math"

	"github.com/matzehuels/carousel/pkg/geom"
	"github.com/matzehuels/carousel/pkg/layout"
)

// CoverFlow rotates neighbours away from the viewer around the vertical
// axis. It only acts on horizontal carousels.
type CoverFlow struct{ base }

func NewCoverFlow(opts Options) *CoverFlow {
	return &CoverFlow{newBase(opts)}
}

func (t *CoverFlow) ProposedSpacing() float64 {
	if !t.horizontal() {
		return 0
	}
	return -t.opts.ItemSize.Width * math.Sin(math.Pi*0.25*0.25*3)
}

func (t *CoverFlow) Apply(a *layout.Attributes) {
	if !t.horizontal() {
		return
	}
	p := min(max(-a.Position, -1), 1)
	a.RotationY = math.Sin(p*math.Pi*0.5) * math.Pi * 0.25 * 1.5
	a.Depth = -stride(a, t.ProposedSpacing()) * 0.5 * math.Abs(p)
	a.ZIndex = 100 - int(math.Abs(p))
}

// ferrisSpokes is the number of item slots around a ferris wheel.
const ferrisSpokes = 14

// FerrisWheel hangs items from a wheel turning below the strip, or above it
// when inverted. It only acts on horizontal carousels.
type FerrisWheel struct {
	base
	inverted bool
}

func NewFerrisWheel(opts Options, inverted bool) *FerrisWheel {
	return &FerrisWheel{base: newBase(opts), inverted: inverted}
}

func (t *FerrisWheel) ProposedSpacing() float64 {
	if !t.horizontal() {
		return 0
	}
	return -t.opts.ItemSize.Width * 0.15
}

func (t *FerrisWheel) Apply(a *layout.Attributes) {
	if !t.horizontal() {
		return
	}
	pos := a.Position
	if pos >= -5 && pos <= 5 {
		dir := 1.0
		if t.inverted {
			dir = -1
		}
		s := a.Size.Width + t.ProposedSpacing()
		radius := s * ferrisSpokes / (2 * math.Pi)
		hub := radius * dir
		theta := pos * (2 * math.Pi / ferrisSpokes) * dir

		// Move onto the strip, swing around the hub, then hang back down.
		a.Rotation = theta
		a.Translation = geom.Pt(-pos*s+hub*math.Sin(theta), hub-hub*math.Cos(theta))
		a.ZIndex = int(4 - math.Abs(pos)*10)
	}
	if math.Abs(pos) < 0.5 {
		a.Alpha = 1
	} else {
		a.Alpha = t.minAlpha
	}
}

// Cubic renders neighbouring items as adjacent faces of a cube turning
// around the cross axis.
type Cubic struct{ base }

func NewCubic(opts Options) *Cubic {
	return &Cubic{newBase(opts)}
}

func (t *Cubic) ProposedSpacing() float64 {
	return 0
}

func (t *Cubic) Apply(a *layout.Attributes) {
	pos := a.Position
	if pos <= -1 || pos >= 1 {
		a.Alpha = 0
		return
	}
	a.Alpha = 1
	a.ZIndex = int((1 - pos) * 10)

	dir := -1.0
	if pos < 0 {
		dir = 1
	}
	sign := 1.0
	if a.Axis == geom.Vertical {
		sign = -1
	}
	edge := a.Axis.Extent(a.Size) * 0.5

	// Pivot on the shared cube edge: shift the center onto it, rotate, then
	// shift back by the foreshortened half extent.
	theta := pos * math.Pi * 0.5 * sign
	a.Center = a.Axis.With(a.Center, a.Axis.Of(a.Center)+dir*edge)
	a.RotationY = theta
	a.Translation = a.Axis.Point(-dir*edge*math.Cos(theta), 0)
}
