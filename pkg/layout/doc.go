// Package layout computes geometry and scroll snapping for a looping,
// paginated carousel.
//
// # Overview
//
// A carousel is a strip of same-sized items arranged along one [geom.Axis].
// The strip can loop by virtually duplicating the item set across many
// sections; the engine addresses every item by a (section, item) pair and
// never materializes the whole strip. Given a viewport size and the host's
// configuration, the [Engine] answers:
//
//   - the total virtual content extent ([Engine.ContentExtent])
//   - the frame of any (section, item) pair ([Engine.Frame])
//   - the items intersecting a rectangle ([Engine.AttributesIntersecting])
//   - where a released drag should come to rest ([Engine.SnapTarget])
//
// # Derived State
//
// The engine caches the actual item size, spacing, leading inset, stride and
// content extent. They are rebuilt by [Engine.RecomputeIfNeeded] when the
// engine has been invalidated or the viewport size changed:
//
//	extent = 2×inset + (N−1)×spacing + N×itemExtent,  N = sections × items
//
// After each rebuild the engine re-centers the viewport on the host's current
// item, choosing the middle section when looping so that scrolling in either
// direction has headroom.
//
// # Transformers
//
// Every attribute produced by a query carries a signed Position: the distance
// of the item's center from the viewport center, measured in strides. A
// [Transformer] turns that position into visual fields (alpha, scale,
// rotation, translation). Concrete transformers live in package transform;
// the engine only depends on the interface.
//
// # Snapping
//
// [Engine.SnapTarget] applies the host's [Deceleration] policy to a proposed
// resting offset and a release velocity. The pure decision is available as
// [Snap] for callers holding their own numbers.
//
// # Hosts
//
// The engine reads configuration and viewport state through [Host] and writes
// back the re-centered content offset. Without a host every operation is a
// safe no-op returning zero values.
package layout
