package layout

import "math"

const (
	// flickVelocity is the release speed, in strides per unit time, above
	// which a drag counts as a flick.
	flickVelocity = 0.3

	// flickBias shifts automatic rounding toward the direction of motion so
	// a moderate flick advances one page before crossing the midpoint.
	flickBias = 0.35
)

// SnapInput holds the numbers a snap decision depends on, all measured along
// the scroll axis.
type SnapInput struct {
	Proposed float64 // Where the scroll view would naturally come to rest
	Velocity float64 // Release velocity
	Current  float64 // Offset at the moment of release
	Stride   float64 // Item extent plus spacing
	Extent   float64 // Total content extent
	Policy   Deceleration
}

// Snap returns the page-aligned offset the viewport should rest at. The
// result is clamped to [0, Extent−Stride]. A non-positive stride leaves the
// proposed offset unchanged.
func Snap(in SnapInput) float64 {
	s := in.Stride
	if !(s > 0) {
		return in.Proposed
	}

	var target float64
	switch {
	case in.Policy.IsAutomatic():
		if math.Abs(in.Velocity) >= flickVelocity {
			dir := 1.0
			if in.Velocity < 0 {
				dir = -1
			}
			target = math.Round(in.Proposed/s+flickBias*dir) * s
		} else {
			target = math.Round(in.Proposed/s) * s
		}
	case in.Velocity >= flickVelocity:
		extra := float64(max(in.Policy.Distance()-1, 0))
		target = math.Ceil(in.Current/s+extra) * s
	case in.Velocity <= -flickVelocity:
		extra := float64(max(in.Policy.Distance()-1, 0))
		target = math.Floor(in.Current/s-extra) * s
	default:
		target = math.Round(in.Proposed/s) * s
	}

	return max(min(target, in.Extent-s), 0)
}
